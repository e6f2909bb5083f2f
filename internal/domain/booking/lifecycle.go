package booking

import (
	"time"

	"workshop-booking/internal/pkg/errs"
)

const (
	DefaultCancellationWindow = 12 * time.Hour
	DefaultArrivalWindow      = 30 * time.Second
)

type edge struct {
	from []Status
	to   Status
}

// transitionTable is the lifecycle diagram as code.
var transitionTable = map[Transition]edge{
	TransitionConfirm:        {from: []Status{StatusPending}, to: StatusConfirmed},
	TransitionDecline:        {from: []Status{StatusPending}, to: StatusRejected},
	TransitionMarkInProgress: {from: []Status{StatusConfirmed}, to: StatusInProgress},
	TransitionMarkReady:      {from: []Status{StatusInProgress}, to: StatusReadyForPickup},
	TransitionComplete:       {from: []Status{StatusReadyForPickup}, to: StatusCompleted},
	TransitionCancel:         {from: []Status{StatusPending, StatusConfirmed}, to: StatusCancelled},
}

// Target returns the status t leads to, or an error if t is not defined from current.
func Target(current Status, t Transition) (Status, error) {
	e, ok := transitionTable[t]
	if !ok {
		return current, errs.Wrapf(ErrUnknownTransition, "%q", t)
	}
	for _, s := range e.from {
		if s == current {
			return e.to, nil
		}
	}
	return current, errs.Wrapf(ErrTransitionNotAllowed, "%s from %s", t, current)
}

// Policy holds the time-gated rules. Windows are product policy, not invariants.
type Policy struct {
	CancellationWindow time.Duration
	ArrivalWindow      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		CancellationWindow: DefaultCancellationWindow,
		ArrivalWindow:      DefaultArrivalWindow,
	}
}

// CanCancel must be consulted immediately before a cancellation request,
// not only when rendering the affordance.
func (p Policy) CanCancel(b TrackedBooking, now time.Time) bool {
	return p.checkCancel(b, now) == nil
}

func (p Policy) CancelDeadline(b TrackedBooking) time.Time {
	return b.EffectiveCreatedAt().Add(p.CancellationWindow)
}

func (p Policy) checkCancel(b TrackedBooking, now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return errs.Wrapf(ErrCancelNotAllowed, "status %s", b.Status)
	}
	if now.Sub(b.EffectiveCreatedAt()) > p.CancellationWindow {
		return ErrCancellationWindowExpired
	}
	return nil
}

// Apply validates t against b at now and returns the resulting status.
func (p Policy) Apply(b TrackedBooking, t Transition, now time.Time) (Status, error) {
	next, err := Target(b.Status, t)
	if err != nil {
		return b.Status, err
	}
	if t == TransitionCancel {
		if err := p.checkCancel(b, now); err != nil {
			return b.Status, err
		}
	}
	return next, nil
}

// ArrivalDue reports whether the arrival trigger should fire for b at now.
// It fires at or after the appointment instant and never later than the window.
func (p Policy) ArrivalDue(b TrackedBooking, now time.Time) bool {
	if b.HasArrivalFired || !b.Status.AwaitsArrival() || b.BothConfirmed() {
		return false
	}
	delta := b.AppointmentAt.Sub(now)
	return delta <= 0 && delta >= -p.ArrivalWindow
}

// CheckArrivalConfirmation validates an actor's arrival confirmation.
func (p Policy) CheckArrivalConfirmation(b TrackedBooking, actor ActorRole, now time.Time) error {
	if !actor.IsValid() {
		return ErrInvalidActor
	}
	if !b.Status.AwaitsArrival() {
		return errs.Wrapf(ErrArrivalNotAwaited, "status %s", b.Status)
	}
	if !b.HasArrivalFired && now.Before(b.AppointmentAt) {
		return ErrArrivalNotReached
	}
	if b.ConfirmedBy(actor) {
		return ErrArrivalAlreadyConfirmed
	}
	return nil
}

// Only cancel is open to both parties; the rest of the pipeline is driven by the workshop.
var sharedTransitions = map[Transition]bool{
	TransitionCancel: true,
}

// Authorize checks that actor may request t.
func Authorize(actor ActorRole, t Transition) error {
	if !actor.IsValid() {
		return ErrInvalidActor
	}
	if actor == ActorWorkshop || sharedTransitions[t] {
		return nil
	}
	return errs.Wrapf(ErrActorNotPermitted, "%s may not %s", actor, t)
}
