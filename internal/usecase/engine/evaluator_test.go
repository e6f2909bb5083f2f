//go:build unit

package engine_test

import (
	"context"
	"testing"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra/store"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/usecase/engine"
	"workshop-booking/internal/usecase/shared"
	"workshop-booking/tests/common/builder"
	"workshop-booking/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvaluator(t *testing.T) (*engine.Evaluator, *store.MemoryStore, <-chan shared.Event) {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.Engine.EventBufferSize = 256
	logger := testutil.DiscardLogger()

	st := store.NewMemoryStore()
	bus := engine.NewBus(cfg.Engine, clock.NewMockClock(builder.T0), logger)
	events, cancel := bus.Subscribe()
	t.Cleanup(cancel)

	return engine.NewEvaluator(st, booking.DefaultPolicy(), bus, logger), st, events
}

func TestEvaluateArrivalWindow(t *testing.T) {
	appointment := builder.T0.Add(2 * time.Hour)

	tests := []struct {
		name      string
		now       time.Time
		wantFired bool
	}{
		{"one second before", appointment.Add(-time.Second), false},
		{"at the appointment instant", appointment, true},
		{"ten seconds after", appointment.Add(10 * time.Second), true},
		{"at the window edge", appointment.Add(30 * time.Second), true},
		{"forty five seconds after", appointment.Add(45 * time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator, st, events := newEvaluator(t)
			st.Upsert(builder.NewBookingBuilder().Build())

			report := evaluator.Evaluate(context.Background(), tt.now)

			stored, ok := st.Get(101)
			require.True(t, ok)
			assert.Equal(t, tt.wantFired, stored.HasArrivalFired)

			arrivals := 0
			for _, e := range testutil.DrainEvents(events) {
				if e.Kind == shared.EventArrivalTriggered {
					arrivals++
					assert.Equal(t, int64(101), e.BookingID)
				}
			}
			if tt.wantFired {
				assert.Equal(t, []int64{101}, report.Fired)
				assert.Equal(t, 1, arrivals)
			} else {
				assert.Empty(t, report.Fired)
				assert.Zero(t, arrivals)
			}
		})
	}
}

func TestEvaluateFiresAtMostOnce(t *testing.T) {
	evaluator, st, events := newEvaluator(t)
	st.Upsert(builder.NewBookingBuilder().Build())

	appointment := builder.T0.Add(2 * time.Hour)
	for now := appointment.Add(-5 * time.Second); now.Before(appointment.Add(time.Minute)); now = now.Add(time.Second) {
		evaluator.Evaluate(context.Background(), now)
	}

	arrivals := 0
	for _, e := range testutil.DrainEvents(events) {
		if e.Kind == shared.EventArrivalTriggered {
			arrivals++
		}
	}
	assert.Equal(t, 1, arrivals)
}

func TestEvaluateSkipsStaleReload(t *testing.T) {
	evaluator, st, _ := newEvaluator(t)
	// loaded ten minutes after the appointment: the window has already passed
	st.Upsert(builder.NewBookingBuilder().Build())

	report := evaluator.Evaluate(context.Background(), builder.T0.Add(2*time.Hour+10*time.Minute))
	assert.Empty(t, report.Fired)

	stored, _ := st.Get(101)
	assert.False(t, stored.HasArrivalFired)
}

func TestEvaluateSuppressedStatuses(t *testing.T) {
	evaluator, st, _ := newEvaluator(t)
	suppressed := []booking.Status{
		booking.StatusInProgress,
		booking.StatusReadyForPickup,
		booking.StatusCompleted,
		booking.StatusCancelled,
		booking.StatusRejected,
	}
	for i, s := range suppressed {
		st.Upsert(builder.NewBookingBuilder().WithID(int64(i + 1)).WithStatus(s).Build())
	}
	st.Upsert(builder.NewBookingBuilder().WithID(50).AsBothConfirmed().Build())

	report := evaluator.Evaluate(context.Background(), builder.T0.Add(2*time.Hour+time.Second))
	assert.Empty(t, report.Fired)
}

func TestEvaluateExpiresPendingResponse(t *testing.T) {
	evaluator, st, _ := newEvaluator(t)
	st.Upsert(builder.NewBookingBuilder().WithID(1).Build())
	st.Upsert(builder.NewBookingBuilder().WithID(2).WithResponseStatus(booking.ResponseAccepted).Build())
	st.Upsert(builder.NewBookingBuilder().WithID(3).WithStatus(booking.StatusInProgress).Build())

	report := evaluator.Evaluate(context.Background(), builder.T0.Add(time.Hour))
	assert.Empty(t, report.Expired)

	report = evaluator.Evaluate(context.Background(), builder.T0.Add(3*time.Hour))
	assert.Equal(t, []int64{1, 3}, report.Expired)

	first, _ := st.Get(1)
	assert.Equal(t, booking.ResponseExpired, first.ResponseStatus)
	second, _ := st.Get(2)
	assert.Equal(t, booking.ResponseAccepted, second.ResponseStatus)
}

func TestEvaluateLeavesUnchangedBookingsUntouched(t *testing.T) {
	evaluator, st, _ := newEvaluator(t)
	st.Upsert(builder.NewBookingBuilder().Build())

	var changes int
	st.OnChange(func(shared.StoreChange) { changes++ })

	evaluator.Evaluate(context.Background(), builder.T0)
	assert.Zero(t, changes)
}
