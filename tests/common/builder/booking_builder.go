//go:build unit || e2e

package builder

import (
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra/backend"
	"workshop-booking/internal/pkg/ptr"
	"workshop-booking/internal/usecase/queries"
)

// T0 is the fixed reference instant scenarios are expressed against.
var T0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID                           int64
	AppointmentAt                time.Time
	CreatedAt                    time.Time
	Status                       booking.Status
	ResponseStatus               booking.ResponseStatus
	HasArrivalFired              bool
	OwnerConfirmedArrival        bool
	CounterpartyConfirmedArrival bool
	LocalCreationTimeOverride    *time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:             101,
		AppointmentAt:  T0.Add(2 * time.Hour),
		CreatedAt:      T0,
		Status:         booking.StatusPending,
		ResponseStatus: booking.ResponsePending,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) Build() booking.TrackedBooking {
	return booking.TrackedBooking{
		ID:                           b.ID,
		AppointmentAt:                b.AppointmentAt,
		CreatedAt:                    b.CreatedAt,
		Status:                       b.Status,
		ResponseStatus:               b.ResponseStatus,
		HasArrivalFired:              b.HasArrivalFired,
		OwnerConfirmedArrival:        b.OwnerConfirmedArrival,
		CounterpartyConfirmedArrival: b.CounterpartyConfirmedArrival,
		LocalCreationTimeOverride:    b.LocalCreationTimeOverride,
	}
}

// BuildRaw renders the booking in the canonical backend payload shape.
func (b *BookingBuilder) BuildRaw() backend.RawBooking {
	return backend.RawBooking{
		ID:                b.ID,
		AppointmentAt:     ptr.To(b.AppointmentAt),
		CreatedAt:         ptr.To(b.CreatedAt),
		Status:            b.Status.String(),
		ResponseStatus:    b.ResponseStatus.String(),
		OwnerConfirmed:    ptr.To(b.OwnerConfirmedArrival),
		WorkshopConfirmed: ptr.To(b.CounterpartyConfirmedArrival),
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	tb := b.Build()
	return &queries.BookingView{
		ID:                           tb.ID,
		AppointmentAt:                tb.AppointmentAt,
		CreatedAt:                    tb.CreatedAt,
		EffectiveCreatedAt:           tb.EffectiveCreatedAt(),
		Status:                       tb.Status,
		ResponseStatus:               tb.ResponseStatus,
		HasArrivalFired:              tb.HasArrivalFired,
		OwnerConfirmedArrival:        tb.OwnerConfirmedArrival,
		CounterpartyConfirmedArrival: tb.CounterpartyConfirmedArrival,
		BothConfirmed:                tb.BothConfirmed(),
		CanCancel:                    true,
		CanRespond:                   true,
		CancelDeadline:               tb.EffectiveCreatedAt().Add(booking.DefaultCancellationWindow),
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id int64) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithAppointmentAt(t time.Time) *BookingBuilder {
	b.AppointmentAt = t
	return b
}

func (b *BookingBuilder) WithCreatedAt(t time.Time) *BookingBuilder {
	b.CreatedAt = t
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithResponseStatus(r booking.ResponseStatus) *BookingBuilder {
	b.ResponseStatus = r
	return b
}

func (b *BookingBuilder) WithLocalCreationTime(t time.Time) *BookingBuilder {
	b.LocalCreationTimeOverride = &t
	return b
}

func (b *BookingBuilder) AsFired() *BookingBuilder {
	b.HasArrivalFired = true
	return b
}

func (b *BookingBuilder) AsOwnerConfirmed() *BookingBuilder {
	b.OwnerConfirmedArrival = true
	return b
}

func (b *BookingBuilder) AsBothConfirmed() *BookingBuilder {
	b.OwnerConfirmedArrival = true
	b.CounterpartyConfirmedArrival = true
	return b
}
