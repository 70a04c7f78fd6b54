package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string { return string(s) }

func (s InvoiceStatus) Valid() bool {
	return s == InvoicePending || s == InvoicePaid
}

// ParseInvoiceStatus normalizes input; returns (pending, false) on unknown values.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return InvoicePaid, true
	case "pending":
		return InvoicePending, true
	default:
		return InvoicePending, false
	}
}

// Invoice is the DB entity persisted in the invoices table.
type Invoice struct {
	ID         string        `db:"id" json:"id"`
	CustomerID string        `db:"customer_id" json:"customer_id"`
	Amount     int64         `db:"amount" json:"amount"` // minor units (cents)
	Date       time.Time     `db:"date" json:"date"`
	Status     InvoiceStatus `db:"status" json:"status"` // pending|paid
}

// LatestInvoice is a display row for the "latest invoices" card.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Email    string `json:"email"`
	Amount   string `json:"amount"`
}

// InvoicesTableRow is a flattened invoice joined with its customer.
type InvoicesTableRow struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	ImageURL   string        `json:"image_url"`
	Date       time.Time     `json:"date"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// InvoiceForm carries an invoice for editing, amount in major units.
type InvoiceForm struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
}
