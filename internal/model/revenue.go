package model

// Revenue is a read-only monthly revenue figure.
type Revenue struct {
	Month   string `db:"month" json:"month"`
	Revenue int64  `db:"revenue" json:"revenue"`
}

// CardData holds the dashboard summary cards.
type CardData struct {
	NumberOfCustomers    int64  `json:"number_of_customers"`
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`

	PaidMinor    int64 `json:"-"`
	PendingMinor int64 `json:"-"`
}
