package worker

import (
	"fmt"

	"github.com/jmehdipour/invoice-dashboard/internal/db"
	"github.com/jmehdipour/invoice-dashboard/internal/ingest"
	"github.com/jmehdipour/invoice-dashboard/internal/kafka"
	"github.com/jmehdipour/invoice-dashboard/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultGroupID = "invoice-dashboard-ingest"

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Consume billing events and upsert them into the dashboard store",
	RunE:  runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	// 1) config, logger, metrics
	cfg, log, err := setup(cmd, "ingest")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" {
		return fmt.Errorf("kafka brokers and topic are required")
	}

	// 2) stores
	dbx, err := db.NewMySQLConnection(db.OptsFrom(cfg.MySQL))
	if err != nil {
		return fmt.Errorf("mysql connect: %w", err)
	}
	defer dbx.Close()

	// 3) kafka consumer
	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = defaultGroupID
	}
	consumer := kafka.NewConsumer(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.Topic,
		GroupID:        groupID,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		CommitInterval: cfg.Kafka.CommitInterval,
	})
	defer consumer.Close()

	w := ingest.NewWorker(
		consumer,
		repository.NewCustomersRepository(dbx),
		repository.NewInvoicesRepository(dbx),
		repository.NewRevenueRepository(dbx),
		log,
	)

	if cfg.ClickHouse.Enabled {
		chDB, err := db.NewClickHouseConnection(db.OptsFrom(cfg.ClickHouse))
		if err != nil {
			return fmt.Errorf("clickhouse connect: %w", err)
		}
		defer chDB.Close()
		w.CHRevenue = repository.NewCHRevenueRepository(chDB)
	}

	log.Info("ingest worker started",
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", groupID),
		zap.Bool("clickhouse", w.CHRevenue != nil),
	)

	return w.Run(cmd.Context())
}
