package engine

import (
	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/ptr"
)

// mergeFetched takes the backend record as authoritative while keeping the
// client-only fields the backend does not know about.
func mergeFetched(local *booking.TrackedBooking, fetched booking.TrackedBooking) booking.TrackedBooking {
	merged := fetched.Clone()
	if local == nil {
		return merged
	}
	merged.HasArrivalFired = fetched.HasArrivalFired || local.HasArrivalFired
	if merged.LocalCreationTimeOverride == nil {
		merged.LocalCreationTimeOverride = ptr.TimeClone(local.LocalCreationTimeOverride)
	}
	return merged
}

// restore puts snapshot back while keeping the arrival trigger monotonic.
func restore(current *booking.TrackedBooking, snapshot booking.TrackedBooking) {
	fired := current.HasArrivalFired
	*current = snapshot.Clone()
	current.HasArrivalFired = snapshot.HasArrivalFired || fired
}
