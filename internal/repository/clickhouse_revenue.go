package repository

import (
	"context"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmoiron/sqlx"
)

// CHRevenueRepository appends revenue figures to ClickHouse. revenue_log is a
// ReplacingMergeTree keyed by month; the revenue view keeps the latest write.
type CHRevenueRepository interface {
	Insert(ctx context.Context, rev model.Revenue) error
}

type chRevenueRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewCHRevenueRepository(ch *sqlx.DB) CHRevenueRepository {
	return &chRevenueRepository{ch: ch}
}

func (r *chRevenueRepository) Insert(ctx context.Context, rev model.Revenue) error {
	_, err := r.ch.ExecContext(ctx,
		`INSERT INTO revenue_log (month, revenue, updated_at) VALUES (?, ?, now())`,
		rev.Month, rev.Revenue,
	)
	return err
}
