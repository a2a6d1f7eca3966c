package github

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// RetryStrategy defines the transport level retry behavior for GitHub API requests
type RetryStrategy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
}

// DefaultRetryStrategy returns a default retry strategy
func DefaultRetryStrategy() RetryStrategy {
	return RetryStrategy{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// NoRetryStrategy returns a strategy that performs a single attempt
func NoRetryStrategy() RetryStrategy {
	return RetryStrategy{MaxAttempts: 1}
}

// GetRetryDelay calculates the delay for a given attempt
func (rs RetryStrategy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(rs.InitialDelay) * math.Pow(rs.Multiplier, float64(attempt-1))

	if delay > float64(rs.MaxDelay) {
		delay = float64(rs.MaxDelay)
	}

	if rs.Jitter && delay > 0 {
		// Add up to 25% jitter
		jitter := rand.Float64() * 0.25 * delay
		delay += jitter
	}

	return time.Duration(delay)
}

// Backoff satisfies retryablehttp.Backoff. attemptNum starts at 0 for the first retry.
//
// Retry-After and rate limit reset headers take precedence, capped at MaxDelay.
func (rs RetryStrategy) Backoff(_, _ time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil {
		if wait := retryAfterFromHeader(resp.Header); wait > 0 {
			if rs.MaxDelay > 0 && wait > rs.MaxDelay {
				return rs.MaxDelay
			}
			return wait
		}
	}
	return rs.GetRetryDelay(attemptNum + 1)
}

// CheckRetry satisfies retryablehttp.CheckRetry.
//
// Rate limits (429, secondary 403), network errors and 5xx except 501 are retried.
// 404 "Label does not exist" is never retried.
func CheckRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		// TLSや不正なURLなど回復しないエラーの判定はretryablehttpに任せる
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	ghErr := &GitHubError{Type: classifyStatus(resp.StatusCode, resp.Header)}
	if resp.StatusCode >= 400 && ghErr.IsRetryable() {
		return true, nil
	}

	return false, nil
}
