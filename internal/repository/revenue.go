package repository

import (
	"context"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmoiron/sqlx"
)

type RevenueRepository interface {
	Upsert(ctx context.Context, tx *sqlx.Tx, rev model.Revenue) error
}

type RevenueRepositoryImpl struct {
	db *sqlx.DB
}

func NewRevenueRepository(db *sqlx.DB) *RevenueRepositoryImpl {
	return &RevenueRepositoryImpl{db: db}
}

var _ RevenueRepository = (*RevenueRepositoryImpl)(nil)

func (r *RevenueRepositoryImpl) Upsert(ctx context.Context, tx *sqlx.Tx, rev model.Revenue) error {
	const q = `
		INSERT INTO revenue (month, revenue)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE revenue = VALUES(revenue)
	`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q, rev.Month, rev.Revenue)
		return err
	})
}
