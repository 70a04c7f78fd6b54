package repository

import (
	"context"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmoiron/sqlx"
)

type CustomersRepository interface {
	Upsert(ctx context.Context, tx *sqlx.Tx, c model.Customer) error
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

// Upsert inserts the customer or refreshes it when the id exists.
func (r *CustomersRepositoryImpl) Upsert(ctx context.Context, tx *sqlx.Tx, c model.Customer) error {
	const q = `
		INSERT INTO customers (id, name, email, image_url)
		VALUES (:id, :name, :email, :image_url)
		ON DUPLICATE KEY UPDATE
		    name      = VALUES(name),
		    email     = VALUES(email),
		    image_url = VALUES(image_url)
	`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, q, c)
		return err
	})
}
