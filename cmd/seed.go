package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/config"
	"github.com/jmehdipour/invoice-dashboard/internal/db"
	"github.com/jmehdipour/invoice-dashboard/internal/logger"
	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmehdipour/invoice-dashboard/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers, invoices and revenue",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Init(cfg.Log.Level)
		defer func() { _ = log.Sync() }()

		// 2) connect MySQL
		sqlDB, err := db.NewMySQLConnection(db.OptsFrom(cfg.MySQL))
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		ctx := cmd.Context()

		log.Info("seeding demo data",
			zap.Int("customers", len(demoCustomers)),
			zap.Int("invoices", len(demoInvoices)),
			zap.Int("months", len(demoRevenue)),
		)
		if err := seedMySQL(ctx, sqlDB); err != nil {
			return err
		}

		if cfg.ClickHouse.Enabled {
			chDB, err := db.NewClickHouseConnection(db.OptsFrom(cfg.ClickHouse))
			if err != nil {
				return fmt.Errorf("clickhouse connect: %w", err)
			}
			defer chDB.Close()

			chRevenue := repository.NewCHRevenueRepository(chDB)
			for _, rev := range demoRevenue {
				if err := chRevenue.Insert(ctx, rev); err != nil {
					return fmt.Errorf("seed clickhouse revenue %s: %w", rev.Month, err)
				}
			}
		}

		log.Info("seed completed")
		return nil
	},
}

// seedMySQL upserts every demo row in one transaction (idempotent).
func seedMySQL(ctx context.Context, dbx *sqlx.DB) error {
	customers := repository.NewCustomersRepository(dbx)
	invoices := repository.NewInvoicesRepository(dbx)
	revenue := repository.NewRevenueRepository(dbx)

	tx, err := dbx.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range demoCustomers {
		if err := customers.Upsert(ctx, tx, c); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
	}
	for i, inv := range demoInvoices {
		inv.ID = seedInvoiceID(i, inv.Date)
		if err := invoices.Upsert(ctx, tx, inv); err != nil {
			return fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
	}
	for _, rev := range demoRevenue {
		if err := revenue.Upsert(ctx, tx, rev); err != nil {
			return fmt.Errorf("seed revenue %s: %w", rev.Month, err)
		}
	}

	return tx.Commit()
}

// seedInvoiceID derives a stable ULID from the invoice date and its position,
// so re-running seed updates rows instead of duplicating them.
func seedInvoiceID(i int, date time.Time) string {
	var entropy [10]byte
	binary.BigEndian.PutUint64(entropy[2:], uint64(i))
	id, err := ulid.New(ulid.Timestamp(date), bytes.NewReader(entropy[:]))
	if err != nil {
		panic(err)
	}
	return id.String()
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

const (
	custEvilRabbit = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
	custDelba      = "3958dc9e-712f-4377-85e9-fec4b6a6442a"
	custLee        = "3958dc9e-742f-4377-85e9-fec4b6a6442a"
	custMichael    = "76d65c26-f784-44a2-ac19-586678f7c2f2"
	custAmy        = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
	custBalazs     = "13d07535-c59e-4157-a011-f8d2ef4e0cbb"
)

var demoCustomers = []model.Customer{
	{ID: custEvilRabbit, Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: custDelba, Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: custLee, Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: custMichael, Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: custAmy, Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: custBalazs, Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

// amounts are in cents
var demoInvoices = []model.Invoice{
	{CustomerID: custEvilRabbit, Amount: 15795, Status: model.InvoicePending, Date: day("2022-12-06")},
	{CustomerID: custDelba, Amount: 20348, Status: model.InvoicePending, Date: day("2022-11-14")},
	{CustomerID: custAmy, Amount: 3040, Status: model.InvoicePaid, Date: day("2022-10-29")},
	{CustomerID: custMichael, Amount: 44800, Status: model.InvoicePaid, Date: day("2023-09-10")},
	{CustomerID: custBalazs, Amount: 34577, Status: model.InvoicePending, Date: day("2023-08-05")},
	{CustomerID: custLee, Amount: 54246, Status: model.InvoicePending, Date: day("2023-07-16")},
	{CustomerID: custEvilRabbit, Amount: 666, Status: model.InvoicePending, Date: day("2023-06-27")},
	{CustomerID: custMichael, Amount: 32545, Status: model.InvoicePaid, Date: day("2023-06-09")},
	{CustomerID: custAmy, Amount: 1250, Status: model.InvoicePaid, Date: day("2023-06-17")},
	{CustomerID: custBalazs, Amount: 8546, Status: model.InvoicePaid, Date: day("2023-06-07")},
	{CustomerID: custDelba, Amount: 500, Status: model.InvoicePaid, Date: day("2023-08-19")},
	{CustomerID: custBalazs, Amount: 8945, Status: model.InvoicePaid, Date: day("2023-06-03")},
	{CustomerID: custLee, Amount: 1000, Status: model.InvoicePaid, Date: day("2022-06-05")},
}

var demoRevenue = []model.Revenue{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}
