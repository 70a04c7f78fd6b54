package cmd

import (
	"fmt"
	"strings"

	"github.com/jmehdipour/invoice-dashboard/internal/config"
	"github.com/jmehdipour/invoice-dashboard/internal/db"
	"github.com/jmehdipour/invoice-dashboard/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations (dev: DROP & CREATE tables)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQLConnection(db.OptsFrom(cfg.MySQL))
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer sqlDB.Close()

		sqlBytes, err := migrations.FS.ReadFile(migrations.MySQLInit)
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", migrations.MySQLInit, err)
		}

		if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
			return fmt.Errorf("disable fk checks: %w", err)
		}
		if _, err := sqlDB.Exec(string(sqlBytes)); err != nil {
			_, _ = sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")
			return fmt.Errorf("exec migration: %w", err)
		}
		if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1"); err != nil {
			return fmt.Errorf("enable fk checks: %w", err)
		}

		if cfg.ClickHouse.Enabled {
			chDB, err := db.NewClickHouseConnection(db.OptsFrom(cfg.ClickHouse))
			if err != nil {
				return fmt.Errorf("clickhouse connect: %w", err)
			}
			defer chDB.Close()

			chBytes, err := migrations.FS.ReadFile(migrations.ClickHouseInit)
			if err != nil {
				return fmt.Errorf("read migration file %s: %w", migrations.ClickHouseInit, err)
			}
			// clickhouse runs one statement per call
			for _, stmt := range splitStatements(string(chBytes)) {
				if _, err := chDB.Exec(stmt); err != nil {
					return fmt.Errorf("exec clickhouse migration: %w", err)
				}
			}
		}

		fmt.Println(">> Migration complete")
		return nil
	},
}

func splitStatements(script string) []string {
	var out []string
	for _, s := range strings.Split(script, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
