// Package migrations embeds the schema applied by the migrate command.
package migrations

import "embed"

//go:embed *.sql clickhouse/*.sql
var FS embed.FS

const (
	MySQLInit      = "001_init.sql"
	ClickHouseInit = "clickhouse/001_revenue.sql"
)
