package dashboard

import "errors"

// ErrDataAccess matches every DataAccessError via errors.Is.
var ErrDataAccess = errors.New("data access error")

const (
	opRevenue           = "revenue"
	opLatestInvoices    = "latest_invoices"
	opCardData          = "card_data"
	opFilteredInvoices  = "filtered_invoices"
	opInvoicesPages     = "invoices_pages"
	opInvoiceByID       = "invoice_by_id"
	opCustomers         = "customers"
	opFilteredCustomers = "filtered_customers"
)

var messages = map[string]string{
	opRevenue:           "failed to fetch revenue data",
	opLatestInvoices:    "failed to fetch the latest invoices",
	opCardData:          "failed to fetch card data",
	opFilteredInvoices:  "failed to fetch invoices",
	opInvoicesPages:     "failed to fetch total number of invoices",
	opInvoiceByID:       "failed to fetch invoice",
	opCustomers:         "failed to fetch all customers",
	opFilteredCustomers: "failed to fetch customer table",
}

// DataAccessError is the user-safe error returned when a read fails. It
// carries no backend detail; the cause is logged where it happened.
type DataAccessError struct {
	Op      string
	Message string
}

func newDataAccessError(op string) *DataAccessError {
	msg, ok := messages[op]
	if !ok {
		msg = "failed to fetch data"
	}
	return &DataAccessError{Op: op, Message: msg}
}

func (e *DataAccessError) Error() string { return e.Message }

func (e *DataAccessError) Is(target error) bool { return target == ErrDataAccess }
