// Package retry re-runs an operation when a predicate marks its failure as
// recoverable. Attempts run back to back, without backoff.
package retry

import (
	"context"
)

// Policy describes when and how often an operation is re-run.
type Policy struct {
	// MaxAttempts is the total number of calls, including the first. Values
	// below 1 are treated as 1.
	MaxAttempts int
	// Retryable decides whether err warrants another attempt.
	Retryable func(err error) bool
	// BeforeRetry runs between attempts; an error from it aborts and is returned.
	BeforeRetry func(ctx context.Context, attempt int, err error) error
}

// Do calls op until it succeeds, returns a non-retryable error, or attempts run out.
// The last error is returned unchanged.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = op(ctx)
		if err == nil {
			return result, nil
		}
		if attempt == attempts || p.Retryable == nil || !p.Retryable(err) {
			return result, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, err
		}
		if p.BeforeRetry != nil {
			if hookErr := p.BeforeRetry(ctx, attempt, err); hookErr != nil {
				var zero T
				return zero, hookErr
			}
		}
	}
	return result, err
}
