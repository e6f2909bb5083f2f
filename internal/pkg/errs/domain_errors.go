package errs

import "errors"

// Category markers. Every error the engine hands to a caller carries exactly one.
var (
	// ErrNotAllowed marks validation rejections raised before any network call.
	ErrNotAllowed = errors.New("not allowed yet")
	// ErrServerRejected marks transport failures: network errors and non-2xx replies.
	ErrServerRejected = errors.New("server rejected")
	// ErrHandledElsewhere marks state the backend already moved out of band.
	ErrHandledElsewhere = errors.New("already handled elsewhere")

	ErrBookingNotTracked = errors.New("booking is not tracked")
)

// Reason renders a human-readable reason string prefixed with the error category.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case Is(err, ErrNotAllowed):
		return ErrNotAllowed.Error() + ": " + err.Error()
	case Is(err, ErrHandledElsewhere):
		return ErrHandledElsewhere.Error() + ": " + err.Error()
	case Is(err, ErrServerRejected):
		return ErrServerRejected.Error() + ": " + err.Error()
	default:
		return err.Error()
	}
}

// Categorized returns a sentinel with its own identity that also matches category.
func Categorized(category error, msg string) error {
	return &categorized{msg: msg, category: category}
}

type categorized struct {
	msg      string
	category error
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Is(target error) bool { return target == e.category }
