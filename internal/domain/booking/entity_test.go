//go:build unit

package booking_test

import (
	"testing"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestTrackedBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		require.NoError(t, b.Validate())
		assert.Equal(t, builder.T0, b.EffectiveCreatedAt())
		assert.False(t, b.BothConfirmed())
		assert.False(t, b.ShouldStopTracking())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "zero id",
				mutate: func(b *builder.BookingBuilder) { b.WithID(0) },
				errIs:  booking.ErrInvalidBooking,
			},
			{
				name:   "missing appointment instant",
				mutate: func(b *builder.BookingBuilder) { b.WithAppointmentAt(time.Time{}) },
				errIs:  booking.ErrInvalidBooking,
			},
			{
				name:   "unknown status",
				mutate: func(b *builder.BookingBuilder) { b.WithStatus("archived") },
				errIs:  booking.ErrInvalidBooking,
			},
			{
				name:   "unknown response status",
				mutate: func(b *builder.BookingBuilder) { b.WithResponseStatus("maybe") },
				errIs:  booking.ErrInvalidBooking,
			},
			{
				name:   "ready for pickup is valid",
				mutate: func(b *builder.BookingBuilder) { b.WithStatus(booking.StatusReadyForPickup) },
			},
		})
	})

	t.Run("derived flags", func(t *testing.T) {
		b := builder.NewBookingBuilder().AsOwnerConfirmed().Build()
		assert.True(t, b.ConfirmedBy(booking.ActorOwner))
		assert.False(t, b.ConfirmedBy(booking.ActorWorkshop))
		assert.False(t, b.BothConfirmed())

		b.MarkArrivalConfirmed(booking.ActorWorkshop)
		assert.True(t, b.BothConfirmed())
		assert.True(t, b.ShouldStopTracking())
	})

	t.Run("terminal status stops tracking", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusRejected).Build()
		assert.True(t, b.ShouldStopTracking())
	})

	t.Run("clone shares no memory", func(t *testing.T) {
		local := builder.T0.Add(time.Minute)
		original := builder.NewBookingBuilder().WithLocalCreationTime(local).Build()
		clone := original.Clone()

		if diff := cmp.Diff(original, clone); diff != "" {
			t.Errorf("clone mismatch (-want +got):\n%s", diff)
		}

		*clone.LocalCreationTimeOverride = builder.T0.Add(time.Hour)
		assert.Equal(t, local, *original.LocalCreationTimeOverride)
	})
}

func TestNewActorRole(t *testing.T) {
	role, err := booking.NewActorRole("workshop")
	require.NoError(t, err)
	assert.Equal(t, booking.ActorWorkshop, role)

	_, err = booking.NewActorRole("admin")
	assert.ErrorIs(t, err, booking.ErrInvalidActor)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := builder.NewBookingBuilder().With(c.mutate).Build().Validate()

			if c.errIs == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
