package request

import (
	"encoding/json"

	"workshop-booking/internal/domain/booking"
)

type TransitionRequest struct {
	Transition string `json:"transition" binding:"required,oneof=confirm decline mark_in_progress mark_ready complete cancel"`
}

func (r *TransitionRequest) ToDomain() booking.Transition {
	return booking.Transition(r.Transition)
}

type RespondRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined"`
}

func (r *RespondRequest) ToDomain() booking.ResponseStatus {
	return booking.ResponseStatus(r.Status)
}

// TrackLocalRequest carries a booking this client just created, in the backend's own shape.
type TrackLocalRequest struct {
	Booking json.RawMessage `json:"booking" binding:"required"`
}
