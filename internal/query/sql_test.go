package query

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockClient(t *testing.T) (*SQLClient, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewSQLClient(sqlx.NewDb(mockDB, "mysql"), MySQL), mock
}

func TestSQLClient_SelectNestsJoinedColumns(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM `invoices` LEFT JOIN `customers` AS `customers`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "customers.name", "customers.email"}).
			AddRow("inv-1", int64(100), []byte("Alice"), "alice@example.com").
			AddRow("inv-2", int64(200), nil, nil))

	q := From("invoices").Select("id", "amount").Join(Join{
		Relation:   "customers",
		Table:      "customers",
		LocalKey:   "customer_id",
		ForeignKey: "id",
		Columns:    []string{"name", "email"},
	})
	rows, err := c.Select(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	cust, ok := rows[0].One("customers")
	require.True(t, ok)
	assert.Equal(t, "Alice", cust["name"])
	assert.Equal(t, "alice@example.com", cust["email"])
	assert.Equal(t, "inv-1", rows[0]["id"])

	_, ok = rows[1].One("customers")
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLClient_SelectExpandsIn(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE `invoices`.`customer_id` IN (?, ?)")).
		WithArgs("c1", "c2").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}).AddRow("c1"))

	rows, err := c.Select(context.Background(),
		From("invoices").Select("customer_id").Where(In("customer_id", []string{"c1", "c2"})))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLClient_Count(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM `customers`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := c.Count(context.Background(), From("customers"))
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, int64(7), *n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLClient_ErrorsReturnNoPayload(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectQuery("FROM `revenue`").WillReturnError(errors.New("connection reset"))
	mock.ExpectQuery("COUNT").WillReturnError(errors.New("connection reset"))

	rows, err := c.Select(context.Background(), From("revenue"))
	assert.Error(t, err)
	assert.Nil(t, rows)

	n, err := c.Count(context.Background(), From("revenue"))
	assert.Error(t, err)
	assert.Nil(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
