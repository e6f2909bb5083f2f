package shared

import (
	"fmt"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/errs"
)

// ErrBookingGone marks a backend reply saying the booking no longer exists.
var ErrBookingGone = errs.Categorized(errs.ErrHandledElsewhere, "booking no longer exists on the server")

// ConflictError reports that the backend already holds a status incompatible
// with the requested change. Current is authoritative.
type ConflictError struct {
	BookingID int64
	Current   booking.Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking %d is %s on the server", e.BookingID, e.Current)
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrHandledElsewhere
}
