package queries

import (
	"context"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/shared"
)

// BookingView is the read model handed to the UI. Derived fields are computed on read.
type BookingView struct {
	ID                           int64                  `json:"id"`
	AppointmentAt                time.Time              `json:"appointment_at"`
	CreatedAt                    time.Time              `json:"created_at"`
	EffectiveCreatedAt           time.Time              `json:"effective_created_at"`
	Status                       booking.Status         `json:"status"`
	ResponseStatus               booking.ResponseStatus `json:"response_status"`
	HasArrivalFired              bool                   `json:"has_arrival_fired"`
	OwnerConfirmedArrival        bool                   `json:"owner_confirmed_arrival"`
	CounterpartyConfirmedArrival bool                   `json:"counterparty_confirmed_arrival"`
	BothConfirmed                bool                   `json:"both_confirmed"`
	CanCancel                    bool                   `json:"can_cancel"`
	CanRespond                   bool                   `json:"can_respond"`
	CancelDeadline               time.Time              `json:"cancel_deadline"`
}

func NewView(b booking.TrackedBooking, policy booking.Policy, now time.Time) *BookingView {
	return &BookingView{
		ID:                           b.ID,
		AppointmentAt:                b.AppointmentAt,
		CreatedAt:                    b.CreatedAt,
		EffectiveCreatedAt:           b.EffectiveCreatedAt(),
		Status:                       b.Status,
		ResponseStatus:               b.ResponseStatus,
		HasArrivalFired:              b.HasArrivalFired,
		OwnerConfirmedArrival:        b.OwnerConfirmedArrival,
		CounterpartyConfirmedArrival: b.CounterpartyConfirmedArrival,
		BothConfirmed:                b.BothConfirmed(),
		CanCancel:                    policy.CanCancel(b, now),
		CanRespond:                   booking.CanRespond(b, now),
		CancelDeadline:               policy.CancelDeadline(b),
	}
}

type BookingQueries interface {
	List(ctx context.Context) ([]*BookingView, error)
	Get(ctx context.Context, id int64) (*BookingView, error)
}

type bookingQueriesImpl struct {
	store  shared.BookingStore
	policy booking.Policy
	clock  clock.Clock
}

func NewBookingQueries(store shared.BookingStore, policy booking.Policy, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, policy: policy, clock: clock}
}

func (q *bookingQueriesImpl) List(_ context.Context) ([]*BookingView, error) {
	now := q.clock.Now()
	tracked := q.store.All()

	views := make([]*BookingView, len(tracked))
	for i, b := range tracked {
		views[i] = NewView(b, q.policy, now)
	}
	return views, nil
}

func (q *bookingQueriesImpl) Get(_ context.Context, id int64) (*BookingView, error) {
	b, ok := q.store.Get(id)
	if !ok {
		return nil, errs.Wrapf(errs.ErrBookingNotTracked, "booking %d", id)
	}
	return NewView(b, q.policy, q.clock.Now()), nil
}
