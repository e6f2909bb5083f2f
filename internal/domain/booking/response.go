package booking

import "time"

// NextResponseStatus decides a response transition. The caller supplies now.
func NextResponseStatus(current, requested ResponseStatus, appointmentAt, now time.Time) (ResponseStatus, error) {
	switch {
	case !now.Before(appointmentAt):
		return current, ErrAppointmentPassed
	case current == ResponseConfirmed:
		return current, ErrAlreadyConfirmed
	case current == ResponseExpired:
		return current, ErrResponseWindowExpired
	case current == ResponseAccepted && requested == ResponseDeclined:
		return current, ErrAcceptanceFinal
	}
	return requested, nil
}

// RespondTo validates an actor's response request against the whole booking.
func RespondTo(b TrackedBooking, requested ResponseStatus, now time.Time) (ResponseStatus, error) {
	if !requested.IsRequestable() {
		return b.ResponseStatus, ErrInvalidResponse
	}
	if !b.Status.AwaitsArrival() {
		return b.ResponseStatus, ErrResponseLocked
	}
	return NextResponseStatus(b.ResponseStatus, requested, b.AppointmentAt, now)
}

// CanRespond reports whether any response change is still possible.
func CanRespond(b TrackedBooking, now time.Time) bool {
	if !b.Status.AwaitsArrival() || !now.Before(b.AppointmentAt) {
		return false
	}
	switch b.ResponseStatus {
	case ResponseConfirmed, ResponseExpired, ResponseAccepted:
		return false
	default:
		return true
	}
}

// ExpireResponse moves a still-pending response to Expired once the appointment instant passed.
// It is the only response write allowed regardless of lifecycle status.
func ExpireResponse(current ResponseStatus, appointmentAt, now time.Time) (ResponseStatus, bool) {
	if current == ResponsePending && !now.Before(appointmentAt) {
		return ResponseExpired, true
	}
	return current, false
}
