package storage

import (
	"context"
	"database/sql"

	"github.com/freightbook/freightbook/pkg/importer/model"
)

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (Result, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	RowsAffected() (int64, error)
}

type CreateTxOption func(*sql.TxOptions)

func TxOptionWithWrite(write bool) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.ReadOnly = !write
	}
}

func TxOptionWithIsolationLevel(level sql.IsolationLevel) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.Isolation = level
	}
}

// ShipmentStorage is everything the import pipeline needs from the database.
// Resolve* perform idempotent get-or-create against the natural key
// (lowercased name, lowercased country); AddShipment is append-only.
type ShipmentStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, error)

	// ResolvePort returns the stable id of the port with the given natural
	// key, creating it when absent. Repeat resolution only bumps the
	// last-modified timestamp.
	ResolvePort(ctx context.Context, tx Tx, ts int64, name, country string) (int64, error)

	// ResolveShippingLine behaves like ResolvePort against the company table
	// and additionally marks the company as a shipping line.
	ResolveShippingLine(ctx context.Context, tx Tx, ts int64, name, country string) (int64, error)

	// AddShipment appends the record. Duplicate SNs are allowed; one
	// contract may yield several shipment rows.
	AddShipment(ctx context.Context, tx Tx, ts int64, record model.ShipmentRecord) error
}
