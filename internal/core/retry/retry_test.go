package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRecoverable = errors.New("recoverable")

func isRecoverable(err error) bool { return errors.Is(err, errRecoverable) }

func TestDo_SucceedsFirstTime(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), Policy{MaxAttempts: 2, Retryable: isRecoverable},
		func(context.Context) (string, error) {
			calls++
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesOnceThenSucceeds(t *testing.T) {
	calls, hooks := 0, 0
	p := Policy{
		MaxAttempts: 2,
		Retryable:   isRecoverable,
		BeforeRetry: func(_ context.Context, attempt int, err error) error {
			hooks++
			assert.Equal(t, 1, attempt)
			assert.ErrorIs(t, err, errRecoverable)
			return nil
		},
	}

	got, err := Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errRecoverable
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, hooks)
}

func TestDo_SecondFailurePropagates(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 2, Retryable: isRecoverable},
		func(context.Context) (int, error) {
			calls++
			return 0, errRecoverable
		})

	assert.ErrorIs(t, err, errRecoverable)
	assert.Equal(t, 2, calls)
}

func TestDo_NonRetryableIsNotRetried(t *testing.T) {
	other := errors.New("fatal")
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 5, Retryable: isRecoverable},
		func(context.Context) (int, error) {
			calls++
			return 0, other
		})

	assert.ErrorIs(t, err, other)
	assert.Equal(t, 1, calls)
}

func TestDo_HookErrorAborts(t *testing.T) {
	hookErr := errors.New("re-login failed")
	calls := 0
	_, err := Do(context.Background(), Policy{
		MaxAttempts: 2,
		Retryable:   isRecoverable,
		BeforeRetry: func(context.Context, int, error) error { return hookErr },
	}, func(context.Context) (int, error) {
		calls++
		return 0, errRecoverable
	})

	assert.ErrorIs(t, err, hookErr)
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, Policy{MaxAttempts: 3, Retryable: isRecoverable},
		func(context.Context) (int, error) {
			calls++
			cancel()
			return 0, errRecoverable
		})

	assert.ErrorIs(t, err, errRecoverable)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, _ = Do(context.Background(), Policy{}, func(context.Context) (int, error) {
		calls++
		return 0, errRecoverable
	})
	assert.Equal(t, 1, calls)
}
