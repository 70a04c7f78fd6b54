// Package dashboard holds the read operations behind the invoicing dashboard.
// Every operation issues its reads sequentially through the injected
// query.Client and shapes the rows into display records from package model.
package dashboard

import (
	"context"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/metrics"
	"github.com/jmehdipour/invoice-dashboard/internal/query"
	"go.uber.org/zap"
)

const (
	tableInvoices  = "invoices"
	tableCustomers = "customers"
	tableRevenue   = "revenue"

	// ItemsPerPage is the page size of the invoices table.
	ItemsPerPage = 6

	latestInvoicesLimit = 100
)

// Service runs the dashboard reads. It keeps no state between calls and is
// safe for concurrent use.
type Service struct {
	client       query.Client
	revenue      query.Client
	log          *zap.Logger
	revenueDelay time.Duration
}

type Option func(*Service)

// WithRevenueClient serves FetchRevenue from a separate store.
func WithRevenueClient(c query.Client) Option {
	return func(s *Service) { s.revenue = c }
}

// WithRevenueDelay sets the artificial delay before reading revenue.
func WithRevenueDelay(d time.Duration) Option {
	return func(s *Service) { s.revenueDelay = d }
}

func New(client query.Client, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		client:       client,
		revenue:      client,
		log:          log,
		revenueDelay: 3 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func customersJoin(inner bool, cols ...string) query.Join {
	return query.Join{
		Relation:   tableCustomers,
		Table:      tableCustomers,
		LocalKey:   "customer_id",
		ForeignKey: "id",
		Columns:    cols,
		Inner:      inner,
	}
}

// fail logs the cause and returns the generic error for op.
func (s *Service) fail(op string, start time.Time, cause error) error {
	s.log.Error("dashboard read failed",
		zap.String("op", op),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(cause),
	)
	metrics.QueriesTotal.WithLabelValues(op, "error").Inc()
	metrics.QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return newDataAccessError(op)
}

func (s *Service) done(op string, start time.Time) {
	metrics.QueriesTotal.WithLabelValues(op, "ok").Inc()
	metrics.QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
