package casescout

import "context"

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
