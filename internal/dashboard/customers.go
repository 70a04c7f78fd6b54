package dashboard

import (
	"context"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmehdipour/invoice-dashboard/internal/money"
	"github.com/jmehdipour/invoice-dashboard/internal/query"
)

// FetchCustomers returns id and name of every customer, ordered by name.
func (s *Service) FetchCustomers(ctx context.Context) ([]model.CustomerField, error) {
	start := time.Now()

	rows, err := s.client.Select(ctx, query.From(tableCustomers).Select("id", "name").Order("name", query.Asc))
	if err != nil {
		return nil, s.fail(opCustomers, start, err)
	}

	out := make([]model.CustomerField, 0, len(rows))
	for _, r := range rows {
		var c model.CustomerField
		if err := query.Decode(r, &c); err != nil {
			return nil, s.fail(opCustomers, start, err)
		}
		out = append(out, c)
	}

	s.done(opCustomers, start)
	return out, nil
}

type invoiceTotals struct {
	count   int64
	paid    int64
	pending int64
}

// FetchFilteredCustomers returns customers whose name or email contains
// text, each with its invoice count and paid/pending totals.
func (s *Service) FetchFilteredCustomers(ctx context.Context, text string) ([]model.CustomersTableRow, error) {
	start := time.Now()

	q := query.From(tableCustomers).
		Select("id", "name", "email", "image_url").
		Where(query.AnyOf(
			query.ILike("name", text),
			query.ILike("email", text),
		)).
		Order("name", query.Asc)

	rows, err := s.client.Select(ctx, q)
	if err != nil {
		return nil, s.fail(opFilteredCustomers, start, err)
	}

	customers := make([]model.Customer, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		var c model.Customer
		if err := query.Decode(r, &c); err != nil {
			return nil, s.fail(opFilteredCustomers, start, err)
		}
		customers = append(customers, c)
		ids = append(ids, c.ID)
	}
	if len(customers) == 0 {
		s.done(opFilteredCustomers, start)
		return []model.CustomersTableRow{}, nil
	}

	invRows, err := s.client.Select(ctx, query.From(tableInvoices).
		Select("customer_id", "amount", "status").
		Where(query.In("customer_id", ids)))
	if err != nil {
		return nil, s.fail(opFilteredCustomers, start, err)
	}

	totals := make(map[string]*invoiceTotals, len(customers))
	for _, r := range invRows {
		var inv invoiceRow
		if err := query.Decode(r, &inv); err != nil {
			return nil, s.fail(opFilteredCustomers, start, err)
		}
		t := totals[inv.CustomerID]
		if t == nil {
			t = &invoiceTotals{}
			totals[inv.CustomerID] = t
		}
		t.count++
		switch model.InvoiceStatus(inv.Status) {
		case model.InvoicePaid:
			t.paid += inv.Amount
		case model.InvoicePending:
			t.pending += inv.Amount
		}
	}

	out := make([]model.CustomersTableRow, 0, len(customers))
	for _, c := range customers {
		var t invoiceTotals
		if got := totals[c.ID]; got != nil {
			t = *got
		}
		out = append(out, model.CustomersTableRow{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			ImageURL:      c.ImageURL,
			TotalInvoices: t.count,
			TotalPending:  money.FormatCurrency(t.pending),
			TotalPaid:     money.FormatCurrency(t.paid),
		})
	}

	s.done(opFilteredCustomers, start)
	return out, nil
}
