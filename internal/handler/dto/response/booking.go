package response

import (
	"time"

	"workshop-booking/internal/usecase/commands"
	"workshop-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                           int64     `json:"id"`
	AppointmentAt                time.Time `json:"appointment_at"`
	CreatedAt                    time.Time `json:"created_at"`
	EffectiveCreatedAt           time.Time `json:"effective_created_at"`
	Status                       string    `json:"status"`
	ResponseStatus               string    `json:"response_status"`
	HasArrivalFired              bool      `json:"has_arrival_fired"`
	OwnerConfirmedArrival        bool      `json:"owner_confirmed_arrival"`
	CounterpartyConfirmedArrival bool      `json:"counterparty_confirmed_arrival"`
	BothConfirmed                bool      `json:"both_confirmed"`
	CanCancel                    bool      `json:"can_cancel"`
	CanRespond                   bool      `json:"can_respond"`
	CancelDeadline               time.Time `json:"cancel_deadline"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	if v == nil {
		return nil, nil
	}
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		r, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

type MutationResponse struct {
	Booking    *BookingResponse `json:"booking,omitempty"`
	Untracked  bool             `json:"untracked"`
	Reconciled bool             `json:"reconciled"`
	Notice     string           `json:"notice,omitempty"`
}

func FromMutationOutcome(out *commands.MutationOutcome) (*MutationResponse, error) {
	b, err := FromBookingView(out.Booking)
	if err != nil {
		return nil, err
	}
	return &MutationResponse{
		Booking:    b,
		Untracked:  out.Untracked,
		Reconciled: out.Reconciled,
		Notice:     out.Notice,
	}, nil
}

type TrackResponse struct {
	Booking *BookingResponse `json:"booking"`
	Tracked bool             `json:"tracked"`
}

func FromTrackOutcome(out *commands.TrackOutcome) (*TrackResponse, error) {
	b, err := FromBookingView(out.Booking)
	if err != nil {
		return nil, err
	}
	return &TrackResponse{Booking: b, Tracked: out.Tracked}, nil
}

type SyncResponse struct {
	Tracked int `json:"tracked"`
}
