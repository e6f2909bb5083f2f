package booking

import (
	"time"

	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/pkg/patch"
	"workshop-booking/internal/pkg/ptr"
)

// TrackedBooking is the snapshot the engine keeps for one observed booking.
// Derived booleans are computed on read and never stored.
type TrackedBooking struct {
	ID            int64
	AppointmentAt time.Time
	CreatedAt     time.Time

	Status         Status
	ResponseStatus ResponseStatus

	// HasArrivalFired only ever moves from false to true.
	HasArrivalFired bool

	OwnerConfirmedArrival        bool
	CounterpartyConfirmedArrival bool

	// LocalCreationTimeOverride is the client-observed creation time. It wins over CreatedAt.
	LocalCreationTimeOverride *time.Time
}

func (b TrackedBooking) Validate() error {
	if b.ID <= 0 {
		return errs.Wrap(ErrInvalidBooking, "booking id must be positive")
	}
	if b.AppointmentAt.IsZero() {
		return errs.Wrapf(ErrInvalidBooking, "booking %d has no appointment instant", b.ID)
	}
	if !b.Status.IsValid() {
		return errs.Wrapf(ErrInvalidBooking, "booking %d has unknown status %q", b.ID, b.Status)
	}
	if !b.ResponseStatus.IsValid() {
		return errs.Wrapf(ErrInvalidBooking, "booking %d has unknown response status %q", b.ID, b.ResponseStatus)
	}
	return nil
}

// Clone returns a copy that shares no memory with b.
func (b TrackedBooking) Clone() TrackedBooking {
	c := b
	c.LocalCreationTimeOverride = ptr.TimeClone(b.LocalCreationTimeOverride)
	return c
}

func (b TrackedBooking) EffectiveCreatedAt() time.Time {
	return patch.Coalesce(b.LocalCreationTimeOverride, b.CreatedAt)
}

func (b TrackedBooking) BothConfirmed() bool {
	return b.OwnerConfirmedArrival && b.CounterpartyConfirmedArrival
}

func (b TrackedBooking) ConfirmedBy(actor ActorRole) bool {
	switch actor {
	case ActorOwner:
		return b.OwnerConfirmedArrival
	case ActorWorkshop:
		return b.CounterpartyConfirmedArrival
	default:
		return false
	}
}

func (b *TrackedBooking) MarkArrivalConfirmed(actor ActorRole) {
	switch actor {
	case ActorOwner:
		b.OwnerConfirmedArrival = true
	case ActorWorkshop:
		b.CounterpartyConfirmedArrival = true
	}
}

// ShouldStopTracking reports whether the booking has left the engine's concern.
func (b TrackedBooking) ShouldStopTracking() bool {
	return b.BothConfirmed() || b.Status.IsTerminal()
}
