package postgres

import (
	"context"

	"github.com/freightbook/freightbook/pkg/importer/model"
	"github.com/freightbook/freightbook/pkg/importer/storage"
)

// ResolvePort upserts a port by its natural key and returns its id. The key
// comparison is case-insensitive; the stored spelling is the first one seen.
func (s *_Storage) ResolvePort(ctx context.Context, tx storage.Tx, ts int64, name, country string) (int64, error) {
	if name == "" {
		return 0, model.ErrEmptyEntityName
	}

	query := `
INSERT INTO port ("name", country, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (LOWER("name"), LOWER(country)) DO UPDATE SET
	updated_at = excluded.updated_at
RETURNING id
`
	var id int64
	if err := tx.QueryRow(ctx, query, name, country, ts).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ResolveShippingLine upserts a company by its natural key, marks it as a
// shipping line and returns its id.
func (s *_Storage) ResolveShippingLine(ctx context.Context, tx storage.Tx, ts int64, name, country string) (int64, error) {
	if name == "" {
		return 0, model.ErrEmptyEntityName
	}

	query := `
INSERT INTO company ("name", country, is_shipping_line, created_at, updated_at)
VALUES ($1, $2, TRUE, $3, $3)
ON CONFLICT (LOWER("name"), LOWER(country)) DO UPDATE SET
	is_shipping_line = TRUE,
	updated_at = excluded.updated_at
RETURNING id
`
	var id int64
	if err := tx.QueryRow(ctx, query, name, country, ts).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
