package dashboard

import (
	"context"
	"time"

	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/jmehdipour/invoice-dashboard/internal/query"
)

// FetchRevenue returns the revenue table as stored, after the configured
// artificial delay.
func (s *Service) FetchRevenue(ctx context.Context) ([]model.Revenue, error) {
	start := time.Now()

	if err := sleep(ctx, s.revenueDelay); err != nil {
		return nil, s.fail(opRevenue, start, err)
	}

	rows, err := s.revenue.Select(ctx, query.From(tableRevenue).Select("month", "revenue"))
	if err != nil {
		return nil, s.fail(opRevenue, start, err)
	}

	out := make([]model.Revenue, 0, len(rows))
	for _, r := range rows {
		var rev model.Revenue
		if err := query.Decode(r, &rev); err != nil {
			return nil, s.fail(opRevenue, start, err)
		}
		out = append(out, rev)
	}

	s.done(opRevenue, start)
	return out, nil
}
