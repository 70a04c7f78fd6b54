// Package ingest keeps the dashboard tables in sync with the billing event
// stream.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmehdipour/invoice-dashboard/internal/kafka"
	"github.com/jmehdipour/invoice-dashboard/internal/metrics"
	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmehdipour/invoice-dashboard/internal/repository"
	"go.uber.org/zap"
)

var ErrInvalidEvent = errors.New("invalid event")

// Source is the subset of *kafka.Consumer the worker needs.
type Source interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, m kafka.Message) error
}

// Worker:
// - fetches envelopes from Kafka,
// - upserts the carried customer, invoice or revenue row,
// - commits the offset only after the row is stored.
//
// Malformed events, and events MySQL rejects for their data (unknown
// customer, bad values), are logged and committed. Any other store failure
// stops the worker without committing so the event is redelivered on restart.
type Worker struct {
	Source    Source
	Customers repository.CustomersRepository
	Invoices  repository.InvoicesRepository
	Revenue   repository.RevenueRepository
	CHRevenue repository.CHRevenueRepository // optional
	Log       *zap.Logger
	FetchWait time.Duration // pause after a failed fetch
}

func NewWorker(
	src Source,
	customers repository.CustomersRepository,
	invoices repository.InvoicesRepository,
	revenue repository.RevenueRepository,
	log *zap.Logger,
) *Worker {
	return &Worker{
		Source:    src,
		Customers: customers,
		Invoices:  invoices,
		Revenue:   revenue,
		Log:       log,
		FetchWait: 200 * time.Millisecond,
	}
}

// Run blocks until ctx is cancelled or an event cannot be stored.
func (w *Worker) Run(ctx context.Context) error {
	if w.Log == nil {
		w.Log = zap.NewNop()
	}
	for {
		m, err := w.Source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.Log.Warn("kafka fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.FetchWait):
			}
			continue
		}

		kind, err := w.Handle(ctx, m.Value)
		switch {
		case errors.Is(err, ErrInvalidEvent):
			metrics.IngestEventsTotal.WithLabelValues(string(kind), "invalid").Inc()
			w.Log.Warn("skipping invalid event",
				zap.Int64("offset", m.Offset),
				zap.Int("partition", m.Partition),
				zap.Error(err),
			)
		case err != nil:
			metrics.IngestEventsTotal.WithLabelValues(string(kind), "failed").Inc()
			w.Log.Error("store event failed",
				zap.Int64("offset", m.Offset),
				zap.Int("partition", m.Partition),
				zap.Error(err),
			)
			return fmt.Errorf("store %s event: %w", kind, err)
		default:
			metrics.IngestEventsTotal.WithLabelValues(string(kind), "stored").Inc()
		}

		if err := w.Source.Commit(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset %d: %w", m.Offset, err)
		}
	}
}

// Handle decodes one envelope and stores its payload.
func (w *Worker) Handle(ctx context.Context, payload []byte) (model.EventKind, error) {
	var env model.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return "unknown", fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	switch env.Kind {
	case model.EventCustomer:
		if env.Customer == nil || env.Customer.ID == "" {
			return env.Kind, fmt.Errorf("%w: customer payload missing", ErrInvalidEvent)
		}
		return env.Kind, classify(w.Customers.Upsert(ctx, nil, *env.Customer))

	case model.EventInvoice:
		if env.Invoice == nil || env.Invoice.ID == "" || env.Invoice.CustomerID == "" {
			return env.Kind, fmt.Errorf("%w: invoice payload missing", ErrInvalidEvent)
		}
		if !env.Invoice.Status.Valid() {
			return env.Kind, fmt.Errorf("%w: invoice status %q", ErrInvalidEvent, env.Invoice.Status)
		}
		if env.Invoice.Date.IsZero() {
			return env.Kind, fmt.Errorf("%w: invoice date missing", ErrInvalidEvent)
		}
		return env.Kind, classify(w.Invoices.Upsert(ctx, nil, *env.Invoice))

	case model.EventRevenue:
		if env.Revenue == nil || env.Revenue.Month == "" {
			return env.Kind, fmt.Errorf("%w: revenue payload missing", ErrInvalidEvent)
		}
		if err := w.Revenue.Upsert(ctx, nil, *env.Revenue); err != nil {
			return env.Kind, classify(err)
		}
		if w.CHRevenue != nil {
			return env.Kind, w.CHRevenue.Insert(ctx, *env.Revenue)
		}
		return env.Kind, nil
	}

	return "unknown", fmt.Errorf("%w: kind %q", ErrInvalidEvent, env.Kind)
}

// MySQL errors caused by the event's data rather than the server. Retrying
// such an event fails the same way, so it is skipped like a malformed one.
var rejectedByData = map[uint16]string{
	1048: "column cannot be null",
	1264: "value out of range",
	1292: "incorrect date value",
	1366: "incorrect value",
	1406: "data too long",
	1452: "foreign key violation",
}

// classify marks permanent data errors as ErrInvalidEvent. Everything else
// (connection loss, deadlocks, tx failures) is returned unchanged.
func classify(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if reason, ok := rejectedByData[myErr.Number]; ok {
			return fmt.Errorf("%w: %s: %v", ErrInvalidEvent, reason, err)
		}
	}
	return err
}
