//go:build unit

package backend_test

import (
	"encoding/json"
	"testing"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra/backend"
	"workshop-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBooking(t *testing.T) {
	t.Run("canonical payload round trips", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			WithStatus(booking.StatusConfirmed).
			WithResponseStatus(booking.ResponseAccepted).
			AsOwnerConfirmed()
		want := b.Build()

		got, err := backend.NormalizeBooking(b.BuildRaw())
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("normalized booking mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("aliases", func(t *testing.T) {
		payload := `{
			"bookingId": 42,
			"scheduledAt": "2026-03-02T10:00:00+02:00",
			"createdAt": "2026-03-01T08:00:00Z",
			"jobStatus": "ReadyForPickup",
			"response": "declined",
			"customerConfirmed": true,
			"providerConfirmed": false
		}`
		var raw backend.RawBooking
		require.NoError(t, json.Unmarshal([]byte(payload), &raw))

		got, err := backend.NormalizeBooking(raw)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)
		assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), got.AppointmentAt)
		assert.Equal(t, time.UTC, got.AppointmentAt.Location())
		assert.Equal(t, booking.StatusReadyForPickup, got.Status)
		assert.Equal(t, booking.ResponseDeclined, got.ResponseStatus)
		assert.True(t, got.OwnerConfirmedArrival)
		assert.False(t, got.CounterpartyConfirmedArrival)
		assert.False(t, got.HasArrivalFired)
	})

	t.Run("date and time fields", func(t *testing.T) {
		got, err := backend.NormalizeBooking(backend.RawBooking{ID: 1, Date: "2026-03-02", Time: "09:30", BookingStatus: "pending"})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), got.AppointmentAt)
		assert.Equal(t, booking.ResponsePending, got.ResponseStatus)
	})

	t.Run("errors", func(t *testing.T) {
		appt := builder.T0
		tests := []struct {
			name  string
			raw   backend.RawBooking
			errIs error
		}{
			{name: "missing id", raw: backend.RawBooking{AppointmentAt: &appt}, errIs: backend.ErrMissingID},
			{name: "missing appointment", raw: backend.RawBooking{ID: 1}, errIs: backend.ErrMissingAppointment},
			{name: "bad date", raw: backend.RawBooking{ID: 1, Date: "tomorrow"}, errIs: backend.ErrMissingAppointment},
			{name: "unknown status", raw: backend.RawBooking{ID: 1, AppointmentAt: &appt, Status: "archived"}, errIs: backend.ErrUnknownStatus},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := backend.NormalizeBooking(tt.raw)
				assert.ErrorIs(t, err, tt.errIs)
			})
		}
	})
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]booking.Status{
		"":                 booking.StatusPending,
		"pending":          booking.StatusPending,
		"CONFIRMED":        booking.StatusConfirmed,
		"in_progress":      booking.StatusInProgress,
		"InProgress":       booking.StatusInProgress,
		"in-progress":      booking.StatusInProgress,
		"ready for pickup": booking.StatusReadyForPickup,
		"readyForPickup":   booking.StatusReadyForPickup,
		"canceled":         booking.StatusCancelled,
		"Cancelled":        booking.StatusCancelled,
		"declined":         booking.StatusRejected,
		"completed":        booking.StatusCompleted,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := backend.NormalizeStatus(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
