//go:build unit || e2e

package testutil

import (
	"io"
	"log/slog"

	"workshop-booking/internal/usecase/shared"
)

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DrainEvents returns every event currently buffered on ch without blocking.
func DrainEvents(ch <-chan shared.Event) []shared.Event {
	var out []shared.Event
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

// OutwardEvents drops the in-process booking.updated mirror events.
func OutwardEvents(events []shared.Event) []shared.Event {
	var out []shared.Event
	for _, e := range events {
		if e.Kind.Outward() {
			out = append(out, e)
		}
	}
	return out
}
