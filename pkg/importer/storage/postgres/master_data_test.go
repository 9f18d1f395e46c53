package postgres_test

import (
	"os"
	"testing"
	"time"

	"github.com/freightbook/freightbook/pkg/importer/model"
	"github.com/freightbook/freightbook/pkg/importer/storage"
	"github.com/freightbook/freightbook/pkg/importer/storage/postgres"
	"github.com/go-testfixtures/testfixtures/v3"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"
)

type MasterDataStorageTestSuite struct {
	BaseTestSuite
	storage storage.ShipmentStorage
}

func TestMasterDataStorage(t *testing.T) {
	if os.Getenv("DATABASE_HOST") == "" {
		t.Skip("DATABASE_HOST not set")
	}
	suite.Run(t, new(MasterDataStorageTestSuite))
}

func (s *MasterDataStorageTestSuite) SetupTest() {
	s.BaseTestSuite.SetupTest()
	s.storage = postgres.NewStorageWithPool(s.pgPool)

	db := stdlib.OpenDBFromPool(s.pgPool)
	fixtures, err := testfixtures.New(
		testfixtures.Database(db),
		testfixtures.Dialect("postgres"),
		testfixtures.Directory("testdata/master_data"),
	)
	s.Require().NoError(err)
	s.Require().NoError(fixtures.Load())
}

func (s *MasterDataStorageTestSuite) TearDownTest() {
	s.BaseTestSuite.TearDownTest()
}

func (s *MasterDataStorageTestSuite) resolvePort(name, country string) (int64, error) {
	ts := time.Now().Unix()
	tx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer tx.Rollback(s.ctx)

	id, err := s.storage.ResolvePort(s.ctx, tx, ts, name, country)
	if err != nil {
		return 0, err
	}
	s.Require().NoError(tx.Commit(s.ctx))
	return id, nil
}

func (s *MasterDataStorageTestSuite) TestResolvePortIdempotent() {
	first, err := s.resolvePort("Jebel Ali", "")
	s.Require().NoError(err)

	second, err := s.resolvePort("JEBEL ALI", "")
	s.Require().NoError(err)
	s.Assert().Equal(first, second)

	var count int
	err = s.pgPool.QueryRow(s.ctx, `SELECT COUNT(*) FROM port WHERE LOWER("name") = 'jebel ali'`).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *MasterDataStorageTestSuite) TestResolvePortExistingBumpsTimestamp() {
	// Aden/YE is seeded by the fixture with updated_at = 1700000000.
	id, err := s.resolvePort("aden", "ye")
	s.Require().NoError(err)

	var updatedAt int64
	err = s.pgPool.QueryRow(s.ctx, `SELECT updated_at FROM port WHERE id = $1`, id).Scan(&updatedAt)
	s.Require().NoError(err)
	s.Assert().Greater(updatedAt, int64(1700000000))
}

func (s *MasterDataStorageTestSuite) TestResolvePortCountryMakesDistinctEntity() {
	withCountry, err := s.resolvePort("Aden", "YE")
	s.Require().NoError(err)

	withoutCountry, err := s.resolvePort("Aden", "")
	s.Require().NoError(err)
	s.Assert().NotEqual(withCountry, withoutCountry)
}

func (s *MasterDataStorageTestSuite) TestResolvePortEmptyName() {
	_, err := s.resolvePort("", "")
	s.Require().ErrorIs(err, model.ErrMasterDataError)
}

func (s *MasterDataStorageTestSuite) TestResolveShippingLineSetsFlag() {
	ts := time.Now().Unix()
	tx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer tx.Rollback(s.ctx)

	// Maersk is seeded with is_shipping_line = false.
	id, err := s.storage.ResolveShippingLine(s.ctx, tx, ts, "Maersk", "")
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit(s.ctx))

	var isShippingLine bool
	err = s.pgPool.QueryRow(s.ctx, `SELECT is_shipping_line FROM company WHERE id = $1`, id).Scan(&isShippingLine)
	s.Require().NoError(err)
	s.Assert().True(isShippingLine)

	var count int
	err = s.pgPool.QueryRow(s.ctx, `SELECT COUNT(*) FROM company`).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}
