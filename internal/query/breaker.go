package query

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("query: circuit open")

type state int

const (
	closed state = iota
	open
	halfOpen
)

// breaker opens after failThreshold consecutive failures and lets a single
// probe through once openFor has elapsed.
type breaker struct {
	mu               sync.Mutex
	st               state
	consecutiveFails int
	failThreshold    int
	openFor          time.Duration
	nextTryAt        time.Time
	probeInFlight    bool
	now              func() time.Time
}

func (b *breaker) tryAcquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.st {
	case open:
		if b.now().After(b.nextTryAt) && !b.probeInFlight {
			b.st = halfOpen
			b.probeInFlight = true
			return true
		}
		return false
	case halfOpen:
		if !b.probeInFlight {
			b.probeInFlight = true
			return true
		}
		return false
	default:
		return true
	}
}

func (b *breaker) onSuccess() {
	b.mu.Lock()
	b.consecutiveFails = 0
	b.st = closed
	b.probeInFlight = false
	b.mu.Unlock()
}

func (b *breaker) onFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.st == halfOpen {
		b.st = open
		b.nextTryAt = b.now().Add(b.openFor)
		b.probeInFlight = false
		return
	}

	b.consecutiveFails++
	if b.consecutiveFails >= b.failThreshold {
		b.st = open
		b.nextTryAt = b.now().Add(b.openFor)
	}
}

// release gives back a probe slot without judging the backend.
func (b *breaker) release() {
	b.mu.Lock()
	b.probeInFlight = false
	b.mu.Unlock()
}

func (b *breaker) record(err error) {
	switch {
	case err == nil:
		b.onSuccess()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		b.release()
	default:
		b.onFailure()
	}
}

// BreakerClient fails fast with ErrCircuitOpen while the backend keeps
// failing. It never retries.
type BreakerClient struct {
	next Client
	b    *breaker
}

func NewBreakerClient(next Client, threshold int, openFor time.Duration) *BreakerClient {
	if threshold < 1 {
		threshold = 5
	}
	if openFor <= 0 {
		openFor = 10 * time.Second
	}
	return &BreakerClient{
		next: next,
		b:    &breaker{failThreshold: threshold, openFor: openFor, now: time.Now},
	}
}

var _ Client = (*BreakerClient)(nil)

func (c *BreakerClient) Select(ctx context.Context, q *Query) ([]Row, error) {
	if !c.b.tryAcquire() {
		return nil, ErrCircuitOpen
	}
	rows, err := c.next.Select(ctx, q)
	c.b.record(err)
	return rows, err
}

func (c *BreakerClient) Count(ctx context.Context, q *Query) (*int64, error) {
	if !c.b.tryAcquire() {
		return nil, ErrCircuitOpen
	}
	n, err := c.next.Count(ctx, q)
	c.b.record(err)
	return n, err
}
