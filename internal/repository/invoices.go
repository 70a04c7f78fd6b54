package repository

import (
	"context"
	"fmt"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmoiron/sqlx"
)

type InvoicesRepository interface {
	Upsert(ctx context.Context, tx *sqlx.Tx, inv model.Invoice) error
}

type InvoicesRepositoryImpl struct {
	db *sqlx.DB
}

func NewInvoicesRepository(db *sqlx.DB) *InvoicesRepositoryImpl {
	return &InvoicesRepositoryImpl{db: db}
}

var _ InvoicesRepository = (*InvoicesRepositoryImpl)(nil)

// Upsert inserts the invoice or refreshes it when the id exists.
func (r *InvoicesRepositoryImpl) Upsert(ctx context.Context, tx *sqlx.Tx, inv model.Invoice) error {
	if !inv.Status.Valid() {
		return fmt.Errorf("invoice %s: invalid status %q", inv.ID, inv.Status)
	}
	const q = `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		    customer_id = VALUES(customer_id),
		    amount      = VALUES(amount),
		    status      = VALUES(status),
		    date        = VALUES(date)
	`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			inv.ID, inv.CustomerID, inv.Amount, inv.Status.String(), inv.Date.Format("2006-01-02"),
		)
		return err
	})
}
