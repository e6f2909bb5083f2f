package shared

import (
	"time"

	"workshop-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventArrivalTriggered EventKind = "arrival.triggered"
	EventStatusChanged    EventKind = "status.changed"
	EventMutationFailed   EventKind = "mutation.failed"
	// EventBookingUpdated mirrors store changes for UI consumers only.
	EventBookingUpdated EventKind = "booking.updated"
)

// Outward reports whether the kind belongs on the notification sink.
func (k EventKind) Outward() bool {
	return k != EventBookingUpdated
}

type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      EventKind `json:"kind"`
	BookingID int64     `json:"booking_id"`
	At        time.Time `json:"at"`

	OldStatus booking.Status `json:"old_status,omitempty"`
	NewStatus booking.Status `json:"new_status,omitempty"`

	// Attempted is the status or response status a failed mutation tried to reach.
	Attempted string `json:"attempted,omitempty"`
	Reason    string `json:"reason,omitempty"`

	Removed bool `json:"removed,omitempty"`
}

func NewArrivalTriggered(id int64, at time.Time) Event {
	return Event{ID: uuid.New(), Kind: EventArrivalTriggered, BookingID: id, At: at}
}

func NewStatusChanged(id int64, from, to booking.Status, at time.Time) Event {
	return Event{ID: uuid.New(), Kind: EventStatusChanged, BookingID: id, OldStatus: from, NewStatus: to, At: at}
}

func NewMutationFailed(id int64, attempted, reason string, at time.Time) Event {
	return Event{ID: uuid.New(), Kind: EventMutationFailed, BookingID: id, Attempted: attempted, Reason: reason, At: at}
}

func NewBookingUpdated(change StoreChange, at time.Time) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      EventBookingUpdated,
		BookingID: change.ID,
		NewStatus: change.Booking.Status,
		Removed:   change.Kind == StoreRemoved,
		At:        at,
	}
}
