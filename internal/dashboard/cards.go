package dashboard

import (
	"context"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmehdipour/invoice-dashboard/internal/money"
	"github.com/jmehdipour/invoice-dashboard/internal/query"
)

// FetchCardData sums paid and pending invoice amounts, counts invoices and
// counts customers.
func (s *Service) FetchCardData(ctx context.Context) (model.CardData, error) {
	start := time.Now()

	rows, err := s.client.Select(ctx, query.From(tableInvoices).Select("amount", "status"))
	if err != nil {
		return model.CardData{}, s.fail(opCardData, start, err)
	}

	var paid, pending int64
	for _, r := range rows {
		var inv invoiceRow
		if err := query.Decode(r, &inv); err != nil {
			return model.CardData{}, s.fail(opCardData, start, err)
		}
		switch model.InvoiceStatus(inv.Status) {
		case model.InvoicePaid:
			paid += inv.Amount
		case model.InvoicePending:
			pending += inv.Amount
		}
	}

	customers, err := s.client.Count(ctx, query.From(tableCustomers))
	if err != nil {
		return model.CardData{}, s.fail(opCardData, start, err)
	}
	var numCustomers int64
	if customers != nil {
		numCustomers = *customers
	}

	s.done(opCardData, start)
	return model.CardData{
		NumberOfCustomers:    numCustomers,
		NumberOfInvoices:     int64(len(rows)),
		TotalPaidInvoices:    money.FormatCurrency(paid),
		TotalPendingInvoices: money.FormatCurrency(pending),
		PaidMinor:            paid,
		PendingMinor:         pending,
	}, nil
}
