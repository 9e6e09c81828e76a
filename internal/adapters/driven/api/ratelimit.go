package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
const HeaderRetryAfter = "Retry-After"

// RateLimiter throttles outgoing requests with a token bucket. A limiter
// built with a non-positive rate never blocks.
type RateLimiter struct {
	bucket *rate.Limiter
	now    func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
func NewRateLimiter(perSecond int) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	burst := max(perSecond, 1)
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, burst),
		now:    time.Now,
	}
}

// Wait blocks until a request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// CheckRateLimit returns a RateLimitError for 429 responses.
func (r *RateLimiter) CheckRateLimit(op string, resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}
	return &RateLimitError{Op: op, RetryAfter: r.retryAfter(resp.Header.Get(HeaderRetryAfter))}
}

func (r *RateLimiter) retryAfter(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		return r.now().Add(time.Duration(seconds) * time.Second)
	}
	if t, err := http.ParseTime(v); err == nil {
		return t
	}
	return time.Time{}
}
