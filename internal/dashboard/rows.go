package dashboard

import (
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmehdipour/invoice-dashboard/internal/query"
)

type invoiceRow struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	Amount     int64     `db:"amount"`
	Date       time.Time `db:"date"`
	Status     string    `db:"status"`
}

// decodeInvoice decodes an invoice row and its joined customer, if any.
// A missing customer decodes to the zero Customer.
func decodeInvoice(r query.Row) (invoiceRow, model.Customer, error) {
	var inv invoiceRow
	if err := query.Decode(r, &inv); err != nil {
		return inv, model.Customer{}, err
	}

	var cust model.Customer
	if rel, ok := r.One(tableCustomers); ok {
		if err := query.Decode(rel, &cust); err != nil {
			return inv, model.Customer{}, err
		}
	}
	return inv, cust, nil
}
