package booking

import "workshop-booking/internal/pkg/errs"

func notAllowed(msg string) error {
	return errs.Categorized(errs.ErrNotAllowed, msg)
}

// Response state machine rejections.
var (
	ErrAppointmentPassed     = notAllowed("appointment time has passed")
	ErrAlreadyConfirmed      = notAllowed("already mutually confirmed")
	ErrResponseWindowExpired = notAllowed("response window expired")
	ErrAcceptanceFinal       = notAllowed("acceptance is final")
	ErrResponseLocked        = notAllowed("booking no longer accepts responses")
	ErrInvalidResponse       = notAllowed("only accepted or declined can be requested")
)

// Lifecycle rejections.
var (
	ErrTransitionNotAllowed      = notAllowed("transition is not defined from the current status")
	ErrUnknownTransition         = notAllowed("unknown transition")
	ErrCancellationWindowExpired = notAllowed("cancellation window expired")
	ErrCancelNotAllowed          = notAllowed("booking can no longer be cancelled")
	ErrActorNotPermitted         = notAllowed("actor may not perform this transition")
)

// Arrival rejections.
var (
	ErrArrivalNotReached       = notAllowed("appointment time has not been reached")
	ErrArrivalNotAwaited       = notAllowed("booking is not awaiting arrival")
	ErrArrivalAlreadyConfirmed = notAllowed("arrival already confirmed by this actor")
)

var (
	ErrInvalidActor   = notAllowed("invalid actor role")
	ErrInvalidBooking = errs.New("invalid booking record")
)
