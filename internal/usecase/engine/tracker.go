package engine

import (
	"context"
	"log/slog"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/shared"
)

const readRetries = 2

// Tracker decides which bookings the engine observes.
type Tracker struct {
	store     shared.BookingStore
	backend   shared.Backend
	decoder   shared.BookingDecoder
	overrides shared.OverrideCache
	scheduler *Scheduler
	bus       *Bus
	clock     clock.Clock
	logger    *slog.Logger
}

func NewTracker(
	store shared.BookingStore,
	backend shared.Backend,
	decoder shared.BookingDecoder,
	overrides shared.OverrideCache,
	scheduler *Scheduler,
	bus *Bus,
	clock clock.Clock,
	logger *slog.Logger,
) *Tracker {
	return &Tracker{
		store:     store,
		backend:   backend,
		decoder:   decoder,
		overrides: overrides,
		scheduler: scheduler,
		bus:       bus,
		clock:     clock,
		logger:    logger,
	}
}

// Sync loads every booking from the backend and returns how many are tracked afterwards.
func (t *Tracker) Sync(ctx context.Context) (int, error) {
	fetched, err := shared.WithReadRetry(ctx, readRetries, t.backend.ListBookings)
	if err != nil {
		return 0, errs.Wrap(err, "sync bookings")
	}

	for _, b := range fetched {
		t.observe(ctx, b)
	}
	tracked := len(t.store.All())
	t.logger.Info("Bookings synced", "fetched", len(fetched), "tracked", tracked)
	return tracked, nil
}

// Track fetches one booking and starts observing it. The returned flag is false
// when the booking is already finished and therefore not tracked.
func (t *Tracker) Track(ctx context.Context, id int64) (booking.TrackedBooking, bool, error) {
	fetched, err := shared.WithReadRetry(ctx, readRetries, func(ctx context.Context) (booking.TrackedBooking, error) {
		return t.backend.FetchBooking(ctx, id)
	})
	if err != nil {
		return booking.TrackedBooking{}, false, errs.Wrapf(err, "track booking %d", id)
	}
	b, tracked := t.observe(ctx, fetched)
	return b, tracked, nil
}

// TrackLocal observes a booking this client just created and records now as its
// local creation time unless one is already known.
func (t *Tracker) TrackLocal(ctx context.Context, payload []byte) (booking.TrackedBooking, bool, error) {
	b, err := t.decoder.DecodeBooking(payload)
	if err != nil {
		return booking.TrackedBooking{}, false, errs.Mark(err, errs.ErrNotAllowed)
	}

	if t.overrideFor(ctx, b.ID) == nil {
		now := t.clock.Now()
		if err := t.overrides.Set(ctx, b.ID, now); err != nil {
			t.logger.Warn("Failed to persist local creation time", "booking_id", b.ID, "error", err)
		}
		b.LocalCreationTimeOverride = &now
	}

	tracked, ok := t.observe(ctx, b)
	return tracked, ok, nil
}

func (t *Tracker) Untrack(_ context.Context, id int64) error {
	if !t.store.Remove(id) {
		return errs.Wrapf(errs.ErrBookingNotTracked, "booking %d", id)
	}
	return nil
}

// Shutdown stops the tick and drops every tracked booking.
func (t *Tracker) Shutdown(_ context.Context) {
	t.scheduler.Stop()
	t.store.Clear()
}

// observe upserts b merged with local state, or drops it when it is finished.
func (t *Tracker) observe(ctx context.Context, fetched booking.TrackedBooking) (booking.TrackedBooking, bool) {
	var local *booking.TrackedBooking
	if current, ok := t.store.Get(fetched.ID); ok {
		local = &current
	}

	merged := mergeFetched(local, fetched)
	if merged.LocalCreationTimeOverride == nil {
		merged.LocalCreationTimeOverride = t.overrideFor(ctx, fetched.ID)
	}

	if local != nil && local.Status != merged.Status {
		t.bus.Emit(ctx, shared.NewStatusChanged(merged.ID, local.Status, merged.Status, t.clock.Now()))
	}

	if merged.ShouldStopTracking() {
		t.store.Remove(merged.ID)
		forgetOverride(ctx, t.overrides, t.logger, merged.ID)
		return merged, false
	}
	t.store.Upsert(merged)
	return merged, true
}

func (t *Tracker) overrideFor(ctx context.Context, id int64) *time.Time {
	v, err := t.overrides.Get(ctx, id)
	if err != nil {
		t.logger.Warn("Failed to read local creation time", "booking_id", id, "error", err)
		return nil
	}
	return v
}

// forgetOverride drops the local creation time of a booking that will not be tracked again.
func forgetOverride(ctx context.Context, overrides shared.OverrideCache, logger *slog.Logger, id int64) {
	if err := overrides.Delete(ctx, id); err != nil {
		logger.Warn("Failed to drop local creation time", "booking_id", id, "error", err)
	}
}
