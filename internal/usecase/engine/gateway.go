package engine

import (
	"context"
	"log/slog"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/shared"
)

// MutationResult describes where a booking ended up after a gateway call.
type MutationResult struct {
	Booking booking.TrackedBooking
	// Untracked is set when the booking left tracking as a result of the call.
	Untracked bool
	// Reconciled is set when the backend reported a different authoritative status.
	Reconciled bool
	Notice     string
}

// errSuperseded stops a rollback when another change landed on the booking while the call was in flight.
var errSuperseded = errs.New("booking changed after the optimistic update")

// Gateway is the only writer of booking status. Each mutation is applied
// optimistically, sent to the backend, then kept, reconciled or rolled back.
type Gateway struct {
	store     shared.BookingStore
	backend   shared.Backend
	overrides shared.OverrideCache
	bus       *Bus
	policy    booking.Policy
	clock     clock.Clock
	logger    *slog.Logger
	resync    bool
}

func NewGateway(
	store shared.BookingStore,
	backend shared.Backend,
	overrides shared.OverrideCache,
	bus *Bus,
	policy booking.Policy,
	clock clock.Clock,
	cfg config.BackendConfig,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		store:     store,
		backend:   backend,
		overrides: overrides,
		bus:       bus,
		policy:    policy,
		clock:     clock,
		logger:    logger,
		resync:    cfg.ResyncAfterMutation,
	}
}

// Transition validates t for actor, applies it locally and issues the status update.
func (g *Gateway) Transition(ctx context.Context, id int64, actor booking.ActorRole, t booking.Transition) (*MutationResult, error) {
	now := g.clock.Now()

	var target booking.Status
	before, _, err := g.store.Mutate(id, func(b *booking.TrackedBooking) error {
		if err := booking.Authorize(actor, t); err != nil {
			return err
		}
		next, err := g.policy.Apply(*b, t, now)
		if err != nil {
			return err
		}
		target = next
		b.Status = next
		return nil
	})
	if err != nil {
		return nil, errs.Wrapf(err, "%s booking %d", t, id)
	}

	if err := g.backend.UpdateStatus(ctx, id, target); err != nil {
		stillOptimistic := func(b booking.TrackedBooking) bool { return b.Status == target }
		return g.recover(ctx, before, stillOptimistic, target.String(), err)
	}

	g.bus.Emit(ctx, shared.NewStatusChanged(id, before.Status, target, g.clock.Now()))
	return g.settle(ctx, id)
}

// Respond runs the response state machine for actor and issues the response update.
func (g *Gateway) Respond(ctx context.Context, id int64, actor booking.ActorRole, requested booking.ResponseStatus) (*MutationResult, error) {
	if !actor.IsValid() {
		return nil, booking.ErrInvalidActor
	}
	now := g.clock.Now()

	before, _, err := g.store.Mutate(id, func(b *booking.TrackedBooking) error {
		next, err := booking.RespondTo(*b, requested, now)
		if err != nil {
			return err
		}
		b.ResponseStatus = next
		return nil
	})
	if err != nil {
		return nil, errs.Wrapf(err, "respond %s to booking %d", requested, id)
	}

	if err := g.backend.UpdateResponse(ctx, id, requested, actor); err != nil {
		stillOptimistic := func(b booking.TrackedBooking) bool { return b.ResponseStatus == requested }
		return g.recover(ctx, before, stillOptimistic, requested.String(), err)
	}
	return g.settle(ctx, id)
}

// ConfirmArrival records actor's arrival confirmation and applies the backend's outcome.
func (g *Gateway) ConfirmArrival(ctx context.Context, id int64, actor booking.ActorRole) (*MutationResult, error) {
	now := g.clock.Now()

	before, _, err := g.store.Mutate(id, func(b *booking.TrackedBooking) error {
		if err := g.policy.CheckArrivalConfirmation(*b, actor, now); err != nil {
			return err
		}
		b.MarkArrivalConfirmed(actor)
		return nil
	})
	if err != nil {
		return nil, errs.Wrapf(err, "confirm arrival for booking %d", id)
	}

	res, err := g.backend.ConfirmArrival(ctx, id, actor)
	if err != nil {
		stillOptimistic := func(b booking.TrackedBooking) bool {
			return b.Status == before.Status && b.ConfirmedBy(actor)
		}
		return g.recover(ctx, before, stillOptimistic, "arrival_confirmed_by_"+actor.String(), err)
	}

	_, after, err := g.store.Mutate(id, func(b *booking.TrackedBooking) error {
		if res.BothConfirmed {
			b.OwnerConfirmedArrival = true
			b.CounterpartyConfirmedArrival = true
			b.ResponseStatus = booking.ResponseConfirmed
		}
		if res.ResultingStatus != "" {
			b.Status = res.ResultingStatus
		}
		return nil
	})
	if err != nil {
		// untracked while the call was in flight
		return &MutationResult{Booking: before, Untracked: true}, nil
	}

	if after.Status != before.Status {
		g.bus.Emit(ctx, shared.NewStatusChanged(id, before.Status, after.Status, g.clock.Now()))
	}
	if after.ShouldStopTracking() {
		g.retire(ctx, id)
		g.logger.Info("Booking left tracking after arrival confirmation", "booking_id", id, "status", after.Status)
		return &MutationResult{Booking: after, Untracked: true}, nil
	}
	return &MutationResult{Booking: after}, nil
}

// recover handles a failed backend call. A conflict or a deleted booking is
// settled on the server's state; anything else rolls the store back to the
// exact pre-mutation snapshot unless a later change already replaced the
// optimistic state.
func (g *Gateway) recover(
	ctx context.Context,
	snapshot booking.TrackedBooking,
	stillOptimistic func(booking.TrackedBooking) bool,
	attempted string,
	callErr error,
) (*MutationResult, error) {
	id := snapshot.ID

	var conflict *shared.ConflictError
	switch {
	case errs.As(callErr, &conflict):
		return g.reconcile(ctx, snapshot, errs.Reason(conflict), func(b *booking.TrackedBooking) {
			restore(b, snapshot)
			b.Status = conflict.Current
		})
	case errs.Is(callErr, shared.ErrBookingGone):
		return g.dropGone(ctx, snapshot, callErr)
	case errs.Is(callErr, errs.ErrHandledElsewhere):
		// the conflict reply did not carry the server record
		fetched, err := g.backend.FetchBooking(ctx, id)
		if err == nil {
			return g.reconcile(ctx, snapshot, errs.Reason(callErr), func(b *booking.TrackedBooking) {
				*b = mergeFetched(b, fetched)
			})
		}
		if errs.Is(err, shared.ErrBookingGone) {
			return g.dropGone(ctx, snapshot, err)
		}
		g.logger.Warn("Fetch after conflict failed", "booking_id", id, "error", err)
	}

	if !errs.Is(callErr, errs.ErrServerRejected) && !errs.Is(callErr, errs.ErrHandledElsewhere) {
		callErr = errs.Mark(callErr, errs.ErrServerRejected)
	}
	reason := errs.Reason(callErr)

	_, _, err := g.store.Mutate(id, func(b *booking.TrackedBooking) error {
		if !stillOptimistic(*b) {
			return errSuperseded
		}
		restore(b, snapshot)
		return nil
	})
	switch {
	case err == nil:
		g.logger.Warn("Mutation rolled back", "booking_id", id, "attempted", attempted, "reason", reason)
	case errs.Is(err, errSuperseded):
		g.logger.Info("Later change kept, rollback skipped", "booking_id", id, "attempted", attempted)
	default:
		g.logger.Info("Booking untracked during mutation, rollback skipped", "booking_id", id)
	}

	g.bus.Emit(ctx, shared.NewMutationFailed(id, attempted, reason, g.clock.Now()))
	return nil, callErr
}

// reconcile overwrites the optimistic state with the server's via apply.
func (g *Gateway) reconcile(
	ctx context.Context,
	snapshot booking.TrackedBooking,
	notice string,
	apply func(b *booking.TrackedBooking),
) (*MutationResult, error) {
	id := snapshot.ID

	_, after, err := g.store.Mutate(id, func(b *booking.TrackedBooking) error {
		apply(b)
		return nil
	})
	if err != nil {
		after = snapshot.Clone()
		apply(&after)
	}

	g.logger.Info("Booking reconciled to server status",
		"booking_id", id,
		"local_status", snapshot.Status,
		"server_status", after.Status)

	if snapshot.Status != after.Status {
		g.bus.Emit(ctx, shared.NewStatusChanged(id, snapshot.Status, after.Status, g.clock.Now()))
	}

	result := &MutationResult{Booking: after, Reconciled: true, Notice: notice, Untracked: err != nil}
	if err == nil && after.ShouldStopTracking() {
		g.retire(ctx, id)
		result.Untracked = true
	}
	return result, nil
}

// dropGone stops tracking a booking the backend no longer knows.
func (g *Gateway) dropGone(ctx context.Context, snapshot booking.TrackedBooking, cause error) (*MutationResult, error) {
	g.retire(ctx, snapshot.ID)
	g.logger.Info("Booking deleted on the server, tracking stopped", "booking_id", snapshot.ID)
	return &MutationResult{
		Booking:    snapshot,
		Untracked:  true,
		Reconciled: true,
		Notice:     errs.Reason(cause),
	}, nil
}

// retire stops tracking a finished booking and forgets its local creation time.
func (g *Gateway) retire(ctx context.Context, id int64) {
	g.store.Remove(id)
	forgetOverride(ctx, g.overrides, g.logger, id)
}

// settle keeps a successful optimistic state, drops finished bookings and optionally re-syncs.
func (g *Gateway) settle(ctx context.Context, id int64) (*MutationResult, error) {
	current, ok := g.store.Get(id)
	if !ok {
		return &MutationResult{Untracked: true}, nil
	}

	if current.ShouldStopTracking() {
		g.retire(ctx, id)
		return &MutationResult{Booking: current, Untracked: true}, nil
	}

	if !g.resync {
		return &MutationResult{Booking: current}, nil
	}

	fetched, err := g.backend.FetchBooking(ctx, id)
	if err != nil {
		g.logger.Warn("Re-sync after mutation failed, keeping optimistic state", "booking_id", id, "error", err)
		return &MutationResult{Booking: current}, nil
	}

	_, after, err := g.store.Mutate(id, func(b *booking.TrackedBooking) error {
		*b = mergeFetched(b, fetched)
		return nil
	})
	if err != nil {
		return &MutationResult{Booking: current, Untracked: true}, nil
	}
	if after.Status != current.Status {
		g.bus.Emit(ctx, shared.NewStatusChanged(id, current.Status, after.Status, g.clock.Now()))
	}
	if after.ShouldStopTracking() {
		g.retire(ctx, id)
		return &MutationResult{Booking: after, Untracked: true}, nil
	}
	return &MutationResult{Booking: after}, nil
}
