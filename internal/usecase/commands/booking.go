package commands

import (
	"context"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/engine"
	"workshop-booking/internal/usecase/queries"
)

// MutationOutcome is what a caller learns after a gateway call settled.
type MutationOutcome struct {
	Booking    *queries.BookingView
	Untracked  bool
	Reconciled bool
	Notice     string
}

type TrackOutcome struct {
	Booking *queries.BookingView
	Tracked bool
}

type BookingCommands interface {
	Transition(ctx context.Context, id int64, actor booking.ActorRole, t booking.Transition) (*MutationOutcome, error)
	Respond(ctx context.Context, id int64, actor booking.ActorRole, requested booking.ResponseStatus) (*MutationOutcome, error)
	ConfirmArrival(ctx context.Context, id int64, actor booking.ActorRole) (*MutationOutcome, error)

	Sync(ctx context.Context) (int, error)
	Track(ctx context.Context, id int64) (*TrackOutcome, error)
	TrackLocal(ctx context.Context, payload []byte) (*TrackOutcome, error)
	Untrack(ctx context.Context, id int64) error
}

type bookingCommandsImpl struct {
	gateway *engine.Gateway
	tracker *engine.Tracker
	policy  booking.Policy
	clock   clock.Clock
}

func NewBookingCommands(gateway *engine.Gateway, tracker *engine.Tracker, policy booking.Policy, clock clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		gateway: gateway,
		tracker: tracker,
		policy:  policy,
		clock:   clock,
	}
}

func (c *bookingCommandsImpl) Transition(ctx context.Context, id int64, actor booking.ActorRole, t booking.Transition) (*MutationOutcome, error) {
	if !t.IsValid() {
		return nil, errs.Wrapf(booking.ErrUnknownTransition, "%q", t)
	}
	result, err := c.gateway.Transition(ctx, id, actor, t)
	if err != nil {
		return nil, err
	}
	return c.outcome(result), nil
}

func (c *bookingCommandsImpl) Respond(ctx context.Context, id int64, actor booking.ActorRole, requested booking.ResponseStatus) (*MutationOutcome, error) {
	result, err := c.gateway.Respond(ctx, id, actor, requested)
	if err != nil {
		return nil, err
	}
	return c.outcome(result), nil
}

func (c *bookingCommandsImpl) ConfirmArrival(ctx context.Context, id int64, actor booking.ActorRole) (*MutationOutcome, error) {
	result, err := c.gateway.ConfirmArrival(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return c.outcome(result), nil
}

func (c *bookingCommandsImpl) Sync(ctx context.Context) (int, error) {
	return c.tracker.Sync(ctx)
}

func (c *bookingCommandsImpl) Track(ctx context.Context, id int64) (*TrackOutcome, error) {
	b, tracked, err := c.tracker.Track(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TrackOutcome{Booking: queries.NewView(b, c.policy, c.clock.Now()), Tracked: tracked}, nil
}

func (c *bookingCommandsImpl) TrackLocal(ctx context.Context, payload []byte) (*TrackOutcome, error) {
	b, tracked, err := c.tracker.TrackLocal(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &TrackOutcome{Booking: queries.NewView(b, c.policy, c.clock.Now()), Tracked: tracked}, nil
}

func (c *bookingCommandsImpl) Untrack(ctx context.Context, id int64) error {
	return c.tracker.Untrack(ctx, id)
}

func (c *bookingCommandsImpl) outcome(result *engine.MutationResult) *MutationOutcome {
	out := &MutationOutcome{
		Untracked:  result.Untracked,
		Reconciled: result.Reconciled,
		Notice:     result.Notice,
	}
	// settle reports an untracked booking without a snapshot when it vanished mid-call
	if result.Booking.ID != 0 {
		out.Booking = queries.NewView(result.Booking, c.policy, c.clock.Now())
	}
	return out
}
