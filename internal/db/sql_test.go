package db

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN_ForcesParseTime(t *testing.T) {
	dsn, err := normalizeMySQLDSN("dashboard:secret@tcp(127.0.0.1:3306)/dashboard?multiStatements=true")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.True(t, cfg.MultiStatements)
	assert.Equal(t, "dashboard", cfg.DBName)
}

func TestConnections_RejectEmptyDSN(t *testing.T) {
	_, err := NewMySQLConnection(SQLOpts{})
	assert.ErrorIs(t, err, ErrEmptyDSN)

	_, err = NewClickHouseConnection(SQLOpts{})
	assert.ErrorIs(t, err, ErrEmptyDSN)
}

func TestNormalizeMySQLDSN_Invalid(t *testing.T) {
	_, err := normalizeMySQLDSN("not a dsn")
	assert.Error(t, err)
}
