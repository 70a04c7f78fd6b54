package dashboard

import (
	"context"

	"github.com/jmehdipour/invoice-dashboard/internal/query"
)

// fakeClient serves canned rows per table and records every query.
type fakeClient struct {
	rows      map[string][]query.Row
	counts    map[string]*int64
	selectErr map[string]error
	countErr  map[string]error

	selects []*query.Query
	counted []*query.Query
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		rows:      map[string][]query.Row{},
		counts:    map[string]*int64{},
		selectErr: map[string]error{},
		countErr:  map[string]error{},
	}
}

func (f *fakeClient) Select(ctx context.Context, q *query.Query) ([]query.Row, error) {
	f.selects = append(f.selects, q)
	if err := f.selectErr[q.Table]; err != nil {
		return nil, err
	}
	return f.rows[q.Table], nil
}

func (f *fakeClient) Count(ctx context.Context, q *query.Query) (*int64, error) {
	f.counted = append(f.counted, q)
	if err := f.countErr[q.Table]; err != nil {
		return nil, err
	}
	return f.counts[q.Table], nil
}

func ptr[T any](v T) *T { return &v }
