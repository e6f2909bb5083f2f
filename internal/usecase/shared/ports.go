package shared

import (
	"context"
	"time"

	"workshop-booking/internal/domain/booking"
)

// Backend is the external source of truth for bookings.
type Backend interface {
	ListBookings(ctx context.Context) ([]booking.TrackedBooking, error)
	FetchBooking(ctx context.Context, id int64) (booking.TrackedBooking, error)
	// UpdateStatus must be idempotent for a repeated target status.
	UpdateStatus(ctx context.Context, id int64, status booking.Status) error
	UpdateResponse(ctx context.Context, id int64, response booking.ResponseStatus, actor booking.ActorRole) error
	ConfirmArrival(ctx context.Context, id int64, actor booking.ActorRole) (*ArrivalResult, error)
}

// ArrivalResult.ResultingStatus is empty when the backend did not report one.
type ArrivalResult struct {
	BothConfirmed   bool
	ResultingStatus booking.Status
}

// BookingStore is the single shared mutable resource of the engine.
type BookingStore interface {
	Upsert(b booking.TrackedBooking)
	Remove(id int64) bool
	Get(id int64) (booking.TrackedBooking, bool)
	All() []booking.TrackedBooking
	// Mutate runs fn on a copy of the record and stores the result unless fn fails.
	// It returns the record before and after fn.
	Mutate(id int64, fn func(b *booking.TrackedBooking) error) (before, after booking.TrackedBooking, err error)
	Clear()
	OnChange(fn func(StoreChange))
}

type StoreChangeKind string

const (
	StoreUpserted StoreChangeKind = "upserted"
	StoreRemoved  StoreChangeKind = "removed"
)

type StoreChange struct {
	Kind    StoreChangeKind
	ID      int64
	Booking booking.TrackedBooking
}

// OverrideCache keeps client-observed creation times across restarts.
type OverrideCache interface {
	Get(ctx context.Context, id int64) (*time.Time, error)
	Set(ctx context.Context, id int64, createdAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// EventSink delivers engine events to an outward consumer.
type EventSink interface {
	Publish(ctx context.Context, event Event) error
}

// BookingDecoder turns a raw backend payload into a TrackedBooking.
type BookingDecoder interface {
	DecodeBooking(payload []byte) (booking.TrackedBooking, error)
}
