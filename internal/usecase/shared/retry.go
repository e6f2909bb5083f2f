package shared

import (
	"context"
	"log/slog"
	"time"

	"workshop-booking/internal/pkg/errs"
)

var (
	// ErrTransient marks backend failures worth retrying: network errors and 5xx replies.
	ErrTransient          = errs.New("transient backend failure")
	ErrMaxRetriesExceeded = errs.New("backend read failed after max retries")
)

// WithReadRetry retries an idempotent backend read on transport failure with linear backoff.
// Mutations are never retried here.
func WithReadRetry[T any](ctx context.Context, maxRetries int, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if !isRetryableError(err) {
			return zero, err
		}

		if attempt == maxRetries {
			slog.Error("backend read failed after max retries",
				"attempts", attempt+1,
				"error", err)
			return zero, errs.Mark(err, ErrMaxRetriesExceeded)
		}

		waitTime := time.Duration(attempt+1) * 100 * time.Millisecond
		slog.Warn("retrying backend read",
			"attempt", attempt+1,
			"wait_time", waitTime,
			"error", err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return zero, ErrMaxRetriesExceeded
}

func isRetryableError(err error) bool {
	return errs.Is(err, ErrTransient)
}
