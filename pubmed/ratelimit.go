package pubmed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pubmedx/metrics"
)

// defaultRateLimitPenalty is the backoff applied after an upstream 429
// when NCBI does not send a Retry-After header.
const defaultRateLimitPenalty = 5 * time.Second

// RateLimiter paces requests to the E-utilities API using a token bucket
// with an extra backoff window armed by 429 responses. NCBI allows 3
// requests per second without an API key, counted over any rolling second,
// so the bucket holds a single token. All callers in the process share one
// limiter through the Client.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter admitting requestsPerSecond requests.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.RateLimitWait.Observe(time.Since(start).Seconds())
	}()

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError records an upstream 429 and sets a backoff period.
// retryAfter comes from the Retry-After header; zero or negative applies
// the default penalty.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = defaultRateLimitPenalty
	}
	r.retryAt = time.Now().Add(retryAfter)
}

// Allow reports whether a request could be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
