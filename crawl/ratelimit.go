package crawl

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/casescout"
	"golang.org/x/time/rate"
)

var _ casescout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps requests to one site polite: a token bucket per
// domain, plus an optional random pause after each token. Hosts that differ
// only in case or a leading "www." share a bucket.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	jitter   time.Duration
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithJitter adds a random pause in [0, max) after every granted request.
func WithJitter(max time.Duration) LimiterOption {
	return func(d *DomainLimiter) {
		if max > 0 {
			d.jitter = max
		}
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, with no bursting. A non-positive rps disables the bucket.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	d := &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a request to domain is allowed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := strings.TrimPrefix(strings.ToLower(domain), "www.")

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return err
	}
	if d.jitter == 0 {
		return nil
	}

	t := time.NewTimer(rand.N(d.jitter))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
