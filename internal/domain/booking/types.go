package booking

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusInProgress     Status = "in_progress"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	StatusRejected       Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusReadyForPickup,
		StatusCompleted, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition is defined out of s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// AwaitsArrival reports whether a booking in s is still waiting for its appointment.
// Every other status locks the response and suppresses the arrival trigger.
func (s Status) AwaitsArrival() bool {
	return s == StatusPending || s == StatusConfirmed
}

type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseDeclined  ResponseStatus = "declined"
	ResponseConfirmed ResponseStatus = "confirmed"
	ResponseExpired   ResponseStatus = "expired"
)

func (r ResponseStatus) String() string {
	return string(r)
}

func (r ResponseStatus) IsValid() bool {
	switch r {
	case ResponsePending, ResponseAccepted, ResponseDeclined, ResponseConfirmed, ResponseExpired:
		return true
	default:
		return false
	}
}

// IsRequestable reports whether an actor may ask for r directly.
func (r ResponseStatus) IsRequestable() bool {
	return r == ResponseAccepted || r == ResponseDeclined
}

// ActorRole is the side of the booking a user acts for.
type ActorRole string

const (
	ActorOwner    ActorRole = "owner"
	ActorWorkshop ActorRole = "workshop"
)

func (a ActorRole) String() string {
	return string(a)
}

func (a ActorRole) IsValid() bool {
	return a == ActorOwner || a == ActorWorkshop
}

func NewActorRole(s string) (ActorRole, error) {
	role := ActorRole(s)
	if !role.IsValid() {
		return "", ErrInvalidActor
	}
	return role, nil
}

type Transition string

const (
	TransitionConfirm        Transition = "confirm"
	TransitionDecline        Transition = "decline"
	TransitionMarkInProgress Transition = "mark_in_progress"
	TransitionMarkReady      Transition = "mark_ready"
	TransitionComplete       Transition = "complete"
	TransitionCancel         Transition = "cancel"
)

func (t Transition) String() string {
	return string(t)
}

func (t Transition) IsValid() bool {
	_, ok := transitionTable[t]
	return ok
}
