package dashboard

import (
	"context"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmehdipour/invoice-dashboard/internal/money"
	"github.com/jmehdipour/invoice-dashboard/internal/query"
)

// FetchLatestInvoices returns the most recent invoice of each customer among
// the latest 100 invoices, newest first.
func (s *Service) FetchLatestInvoices(ctx context.Context) ([]model.LatestInvoice, error) {
	start := time.Now()

	q := query.From(tableInvoices).
		Select("id", "customer_id", "amount").
		Join(customersJoin(false, "name", "image_url", "email")).
		Order("date", query.Desc).
		Take(latestInvoicesLimit)

	rows, err := s.client.Select(ctx, q)
	if err != nil {
		return nil, s.fail(opLatestInvoices, start, err)
	}

	seen := make(map[string]struct{}, len(rows))
	out := make([]model.LatestInvoice, 0, len(rows))
	for _, r := range rows {
		inv, cust, err := decodeInvoice(r)
		if err != nil {
			return nil, s.fail(opLatestInvoices, start, err)
		}

		// invoices without an owner have nothing to dedupe on
		if inv.CustomerID != "" {
			if _, dup := seen[inv.CustomerID]; dup {
				continue
			}
			seen[inv.CustomerID] = struct{}{}
		}

		out = append(out, model.LatestInvoice{
			ID:       inv.ID,
			Name:     cust.Name,
			ImageURL: cust.ImageURL,
			Email:    cust.Email,
			Amount:   money.FormatCurrency(inv.Amount),
		})
	}

	s.done(opLatestInvoices, start)
	return out, nil
}

func pageRange(page int) (from, to int) {
	if page < 1 {
		page = 1
	}
	from = (page - 1) * ItemsPerPage
	return from, from + ItemsPerPage - 1
}

// FetchFilteredInvoices returns one page of invoices whose customer name
// contains text, further narrowed to rows where any displayed field
// contains text.
func (s *Service) FetchFilteredInvoices(ctx context.Context, text string, page int) ([]model.InvoicesTableRow, error) {
	start := time.Now()
	from, to := pageRange(page)

	q := query.From(tableInvoices).
		Select("id", "customer_id", "amount", "date", "status").
		Join(customersJoin(true, "name", "email", "image_url")).
		Where(query.ILike("customers.name", text)).
		Order("date", query.Desc).
		Range(from, to)

	rows, err := s.client.Select(ctx, q)
	if err != nil {
		return nil, s.fail(opFilteredInvoices, start, err)
	}

	out := make([]model.InvoicesTableRow, 0, len(rows))
	for _, r := range rows {
		inv, cust, err := decodeInvoice(r)
		if err != nil {
			return nil, s.fail(opFilteredInvoices, start, err)
		}

		row := model.InvoicesTableRow{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Name:       cust.Name,
			Email:      cust.Email,
			ImageURL:   cust.ImageURL,
			Date:       inv.Date,
			Amount:     inv.Amount,
			Status:     model.InvoiceStatus(inv.Status),
		}
		if matchesInvoice(row, text) {
			out = append(out, row)
		}
	}

	s.done(opFilteredInvoices, start)
	return out, nil
}

// FetchInvoicesPages returns how many pages of ItemsPerPage invoices match
// text on customer name.
func (s *Service) FetchInvoicesPages(ctx context.Context, text string) (int64, error) {
	start := time.Now()

	q := query.From(tableInvoices).
		Join(customersJoin(true)).
		Where(query.ILike("customers.name", text))

	n, err := s.client.Count(ctx, q)
	if err != nil {
		return 0, s.fail(opInvoicesPages, start, err)
	}

	s.done(opInvoicesPages, start)
	return totalPages(n), nil
}

func totalPages(count *int64) int64 {
	if count == nil || *count <= 0 {
		return 0
	}
	return (*count + ItemsPerPage - 1) / ItemsPerPage
}

// FetchInvoiceByID returns the invoice with amount in major units, or nil
// when no invoice has that id.
func (s *Service) FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	start := time.Now()

	q := query.From(tableInvoices).
		Select("id", "customer_id", "amount", "status").
		Where(query.Eq("id", id)).
		Take(1)

	rows, err := s.client.Select(ctx, q)
	if err != nil {
		return nil, s.fail(opInvoiceByID, start, err)
	}
	if len(rows) == 0 {
		s.done(opInvoiceByID, start)
		return nil, nil
	}

	var inv invoiceRow
	if err := query.Decode(rows[0], &inv); err != nil {
		return nil, s.fail(opInvoiceByID, start, err)
	}

	s.done(opInvoiceByID, start)
	return &model.InvoiceForm{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     money.ToMajor(inv.Amount),
		Status:     model.InvoiceStatus(inv.Status),
	}, nil
}
