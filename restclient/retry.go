package restclient

import (
	"context"
	"time"
)

// StatusRange is an inclusive range of HTTP status codes.
type StatusRange struct {
	From int
	To   int
}

func (r StatusRange) contains(code int) bool {
	return code >= r.From && code <= r.To
}

// RetryPolicy re-runs a request a bounded number of times with a fixed delay
// between attempts. A Count of 0 means no retry: the request runs exactly
// once. Backoff is deliberately flat, not exponential.
type RetryPolicy struct {
	// Count is the number of retries after the initial attempt.
	Count int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
	// Statuses is the inclusive status-code range that triggers a retry.
	Statuses StatusRange
	// RetryOn lists the error kinds that trigger a retry. An attempt that
	// fails with a kind outside this set is returned immediately.
	RetryOn []ErrorType
}

func (p *RetryPolicy) validate() error {
	if p.Count < 0 {
		return NewValidationError("retry count cannot be negative", "retry.count")
	}
	if p.Delay < 0 {
		return NewValidationError("retry delay cannot be negative", "retry.delay")
	}
	return nil
}

// retryableError reports whether the error's kind is in the trigger set.
func (p *RetryPolicy) retryableError(err error) bool {
	kind := TypeOf(err)
	for _, t := range p.RetryOn {
		if t == kind {
			return true
		}
	}
	return false
}

// shouldRetry decides whether an attempt's outcome triggers another attempt.
// An error outside the trigger set is terminal; a clean response retries only
// when its status falls inside the configured range.
func (p *RetryPolicy) shouldRetry(raw *RawResponse) bool {
	if raw.Err != nil {
		return p.retryableError(raw.Err)
	}
	return p.Statuses.contains(raw.StatusCode)
}

// execute runs op up to 1+Count times. It returns the first outcome that is
// either a success (no error, status outside the trigger range) or a
// non-retryable failure; once attempts are exhausted the last outcome is
// returned as-is, so callers distinguish exhaustion only by inspecting the
// response. The inter-attempt delay respects context cancellation.
func (p *RetryPolicy) execute(ctx context.Context, op func(context.Context) *RawResponse) *RawResponse {
	raw := op(ctx)
	for remaining := p.Count; remaining > 0; remaining-- {
		if !p.shouldRetry(raw) {
			return raw
		}
		if !p.sleep(ctx) {
			return raw
		}
		raw = op(ctx)
	}
	return raw
}

// sleep waits the configured delay, returning false when the context is
// cancelled first.
func (p *RetryPolicy) sleep(ctx context.Context) bool {
	if p.Delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
