package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.Dashboard.RevenueDelay)
	assert.Equal(t, "mysql", cfg.Dashboard.RevenueSource)
	assert.Equal(t, "billing.events", cfg.Kafka.Topic)
	assert.Equal(t, 5, cfg.Breaker.FailThreshold)
	assert.True(t, cfg.MySQL.Enabled)
	assert.False(t, cfg.ClickHouse.Enabled)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  addr: \":9000\"\ndashboard:\n  revenue_source: clickhouse\n"), 0o600))

	t.Setenv("DASHBOARD_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "clickhouse", cfg.Dashboard.RevenueSource)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 20, cfg.RateLimit.RPS)
}
