package backend

import (
	"strings"
	"time"
	"unicode"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/pkg/patch"
)

var (
	ErrMissingID          = errs.New("booking payload has no id")
	ErrMissingAppointment = errs.New("booking payload has no appointment instant")
	ErrUnknownStatus      = errs.New("booking payload has an unknown status")
)

// RawBooking is the booking payload as the backend sends it. Several fields
// have aliases depending on which backend endpoint produced the record.
type RawBooking struct {
	ID        int64 `json:"id,omitempty"`
	BookingID int64 `json:"bookingId,omitempty"`

	AppointmentAt *time.Time `json:"appointmentAt,omitempty"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
	Date          string     `json:"date,omitempty"`
	Time          string     `json:"time,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`

	Status        string `json:"status,omitempty"`
	JobStatus     string `json:"jobStatus,omitempty"`
	BookingStatus string `json:"bookingStatus,omitempty"`

	ResponseStatus string `json:"responseStatus,omitempty"`
	Response       string `json:"response,omitempty"`

	OwnerConfirmed    *bool `json:"ownerConfirmed,omitempty"`
	CustomerConfirmed *bool `json:"customerConfirmed,omitempty"`
	WorkshopConfirmed *bool `json:"workshopConfirmed,omitempty"`
	ProviderConfirmed *bool `json:"providerConfirmed,omitempty"`
}

var statusAliases = map[string]booking.Status{
	"canceled":   booking.StatusCancelled,
	"declined":   booking.StatusRejected,
	"ready":      booking.StatusReadyForPickup,
	"done":       booking.StatusCompleted,
	"accepted":   booking.StatusConfirmed,
	"started":    booking.StatusInProgress,
	"inprogress": booking.StatusInProgress,
}

// NormalizeBooking maps a raw payload onto TrackedBooking. It is the only
// place backend field aliases are resolved.
func NormalizeBooking(raw RawBooking) (booking.TrackedBooking, error) {
	id := patch.FirstNonEmpty(raw.ID, raw.BookingID)
	if id == 0 {
		return booking.TrackedBooking{}, ErrMissingID
	}

	appointment, err := appointmentInstant(raw)
	if err != nil {
		return booking.TrackedBooking{}, errs.Wrapf(err, "booking %d", id)
	}

	status, err := NormalizeStatus(patch.FirstNonEmpty(raw.Status, raw.JobStatus, raw.BookingStatus))
	if err != nil {
		return booking.TrackedBooking{}, errs.Wrapf(err, "booking %d", id)
	}

	response := normalizeResponse(patch.FirstNonEmpty(raw.ResponseStatus, raw.Response))

	var createdAt time.Time
	if raw.CreatedAt != nil {
		createdAt = raw.CreatedAt.UTC()
	}

	b := booking.TrackedBooking{
		ID:                           id,
		AppointmentAt:                appointment,
		CreatedAt:                    createdAt,
		Status:                       status,
		ResponseStatus:               response,
		OwnerConfirmedArrival:        firstBool(raw.OwnerConfirmed, raw.CustomerConfirmed),
		CounterpartyConfirmedArrival: firstBool(raw.WorkshopConfirmed, raw.ProviderConfirmed),
	}
	if err := b.Validate(); err != nil {
		return booking.TrackedBooking{}, err
	}
	return b, nil
}

// NormalizeStatus accepts snake_case, camelCase, kebab-case and spaced spellings.
// An empty value means the backend has not assigned a status yet.
func NormalizeStatus(s string) (booking.Status, error) {
	key := canonical(s)
	if key == "" {
		return booking.StatusPending, nil
	}
	if alias, ok := statusAliases[key]; ok {
		return alias, nil
	}
	if st := booking.Status(key); st.IsValid() {
		return st, nil
	}
	return "", errs.Wrapf(ErrUnknownStatus, "%q", s)
}

// Unknown response strings read as pending so the booking keeps being tracked.
func normalizeResponse(s string) booking.ResponseStatus {
	key := canonical(s)
	switch key {
	case "accept":
		return booking.ResponseAccepted
	case "decline", "rejected":
		return booking.ResponseDeclined
	}
	if r := booking.ResponseStatus(key); r.IsValid() {
		return r
	}
	return booking.ResponsePending
}

func appointmentInstant(raw RawBooking) (time.Time, error) {
	if t := patch.Coalesce(raw.AppointmentAt, patch.Coalesce(raw.ScheduledAt, time.Time{})); !t.IsZero() {
		return t.UTC(), nil
	}
	if raw.Date == "" {
		return time.Time{}, ErrMissingAppointment
	}

	clock := raw.Time
	if clock == "" {
		clock = "00:00"
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, raw.Date+" "+clock, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.Wrapf(ErrMissingAppointment, "unparseable date %q time %q", raw.Date, raw.Time)
}

func canonical(s string) string {
	s = strings.TrimSpace(s)
	var sb strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == '-' || r == ' ':
			sb.WriteRune('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			sb.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return sb.String()
}

func firstBool(values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return false
}
