package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/config"
	"github.com/jmehdipour/invoice-dashboard/internal/dashboard"
	"github.com/jmehdipour/invoice-dashboard/internal/db"
	httpSrv "github.com/jmehdipour/invoice-dashboard/internal/http"
	"github.com/jmehdipour/invoice-dashboard/internal/logger"
	"github.com/jmehdipour/invoice-dashboard/internal/query"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Init(cfg.Log.Level)
		defer func() { _ = log.Sync() }()

		mysqlDB, err := db.NewMySQLConnection(db.OptsFrom(cfg.MySQL))
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer mysqlDB.Close()

		var chDB *sqlx.DB
		if cfg.ClickHouse.Enabled {
			chDB, err = db.NewClickHouseConnection(db.OptsFrom(cfg.ClickHouse))
			if err != nil {
				return fmt.Errorf("clickhouse connect: %w", err)
			}
			defer func() { _ = chDB.Close() }()
		}

		var redisClient *redis.Client
		if cfg.Redis.Enabled {
			redisClient, err = db.NewRedisClient(cmd.Context(), db.RedisOptsFrom(cfg.Redis))
			if err != nil {
				return fmt.Errorf("redis connect: %w", err)
			}
			defer func() { _ = redisClient.Close() }()
		}

		svc, err := newDashboardService(cfg, mysqlDB, chDB, log)
		if err != nil {
			return err
		}
		server := httpSrv.NewServer(cfg, svc, redisClient, log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		select {
		case <-cmd.Context().Done():
			log.Info("signal received, shutting down")
		case err := <-errCh:
			if err != nil {
				log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}

// newDashboardService wires the query clients. Revenue is read from
// ClickHouse when configured; every client fails fast behind a breaker.
func newDashboardService(cfg config.Config, mysqlDB, chDB *sqlx.DB, log *zap.Logger) (*dashboard.Service, error) {
	guard := func(c query.Client) query.Client {
		return query.NewBreakerClient(c, cfg.Breaker.FailThreshold, cfg.Breaker.OpenFor)
	}

	primary := guard(query.NewSQLClient(mysqlDB, query.MySQL))
	opts := []dashboard.Option{dashboard.WithRevenueDelay(cfg.Dashboard.RevenueDelay)}

	switch cfg.Dashboard.RevenueSource {
	case "", "mysql":
	case "clickhouse":
		if chDB == nil {
			return nil, fmt.Errorf("revenue_source clickhouse requires clickhouse.enabled")
		}
		opts = append(opts, dashboard.WithRevenueClient(guard(query.NewSQLClient(chDB, query.ClickHouse))))
	default:
		return nil, fmt.Errorf("unknown revenue_source %q", cfg.Dashboard.RevenueSource)
	}

	return dashboard.New(primary, log.Named("dashboard"), opts...), nil
}
