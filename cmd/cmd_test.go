package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmehdipour/invoice-dashboard/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "mysql"), mock
}

func TestSeedInvoiceID_StableAndUnique(t *testing.T) {
	d := day("2023-06-07")

	a := seedInvoiceID(3, d)
	assert.Equal(t, a, seedInvoiceID(3, d))
	assert.NotEqual(t, a, seedInvoiceID(4, d))

	parsed, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, d.UnixMilli(), ulid.Time(parsed.Time()).UnixMilli())
}

func TestSeedMySQL_UpsertsEverythingInOneTx(t *testing.T) {
	dbx, mock := newMockDB(t)

	mock.ExpectBegin()
	for range demoCustomers {
		mock.ExpectExec("INSERT INTO customers").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for range demoInvoices {
		mock.ExpectExec("INSERT INTO invoices").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for range demoRevenue {
		mock.ExpectExec("INSERT INTO revenue").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, seedMySQL(context.Background(), dbx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoInvoicesReferenceDemoCustomers(t *testing.T) {
	known := map[string]bool{}
	for _, c := range demoCustomers {
		known[c.ID] = true
	}
	for _, inv := range demoInvoices {
		assert.True(t, known[inv.CustomerID], "unknown customer %s", inv.CustomerID)
		assert.True(t, inv.Status.Valid())
	}
}

func TestNewDashboardService_RevenueSource(t *testing.T) {
	primary, _ := newMockDB(t)
	ch, _ := newMockDB(t)

	cfg := config.Config{
		Dashboard: config.DashboardConfig{RevenueDelay: time.Millisecond},
		Breaker:   config.BreakerConfig{FailThreshold: 3, OpenFor: time.Second},
	}

	svc, err := newDashboardService(cfg, primary, nil, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg.Dashboard.RevenueSource = "clickhouse"
	_, err = newDashboardService(cfg, primary, nil, zap.NewNop())
	require.Error(t, err)

	svc, err = newDashboardService(cfg, primary, ch, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg.Dashboard.RevenueSource = "postgres"
	_, err = newDashboardService(cfg, primary, nil, zap.NewNop())
	require.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x Int8);\n\n CREATE VIEW b AS SELECT 1;\n")
	assert.Equal(t, []string{"CREATE TABLE a (x Int8)", "CREATE VIEW b AS SELECT 1"}, got)
}
