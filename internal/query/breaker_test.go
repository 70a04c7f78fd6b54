package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	err   error
	calls int
}

func (s *stubClient) Select(ctx context.Context, q *Query) ([]Row, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []Row{{"id": "1"}}, nil
}

func (s *stubClient) Count(ctx context.Context, q *Query) (*int64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	n := int64(1)
	return &n, nil
}

func TestBreakerClient_OpensAndRecovers(t *testing.T) {
	stub := &stubClient{err: errors.New("down")}
	c := NewBreakerClient(stub, 2, time.Minute)

	now := time.Now()
	c.b.now = func() time.Time { return now }

	ctx := context.Background()
	q := From("invoices")

	_, err := c.Select(ctx, q)
	assert.EqualError(t, err, "down")
	_, err = c.Count(ctx, q)
	assert.EqualError(t, err, "down")

	// open: backend is not called
	_, err = c.Select(ctx, q)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, stub.calls)

	// half-open probe fails -> open again
	now = now.Add(2 * time.Minute)
	_, err = c.Select(ctx, q)
	assert.EqualError(t, err, "down")
	_, err = c.Select(ctx, q)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 3, stub.calls)

	// probe succeeds -> closed
	now = now.Add(2 * time.Minute)
	stub.err = nil
	rows, err := c.Select(ctx, q)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	n, err := c.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), *n)
}

func TestBreakerClient_CancellationDoesNotTrip(t *testing.T) {
	stub := &stubClient{err: context.Canceled}
	c := NewBreakerClient(stub, 1, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := c.Select(context.Background(), From("invoices"))
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, 3, stub.calls)
}
