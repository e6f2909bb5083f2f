package store

import (
	"sort"
	"sync"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/shared"
)

// MemoryStore is a map of tracked bookings keyed by booking id.
// Records are copied on the way in and on the way out.
type MemoryStore struct {
	mu        sync.Mutex
	bookings  map[int64]booking.TrackedBooking
	listeners []func(shared.StoreChange)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings: make(map[int64]booking.TrackedBooking),
	}
}

func (s *MemoryStore) Upsert(b booking.TrackedBooking) {
	s.mu.Lock()
	s.bookings[b.ID] = b.Clone()
	s.mu.Unlock()

	s.emit(shared.StoreChange{Kind: shared.StoreUpserted, ID: b.ID, Booking: b.Clone()})
}

func (s *MemoryStore) Remove(id int64) bool {
	s.mu.Lock()
	b, ok := s.bookings[id]
	delete(s.bookings, id)
	s.mu.Unlock()

	if ok {
		s.emit(shared.StoreChange{Kind: shared.StoreRemoved, ID: id, Booking: b})
	}
	return ok
}

func (s *MemoryStore) Get(id int64) (booking.TrackedBooking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return booking.TrackedBooking{}, false
	}
	return b.Clone(), true
}

// All returns the tracked bookings ordered by id.
func (s *MemoryStore) All() []booking.TrackedBooking {
	s.mu.Lock()
	out := make([]booking.TrackedBooking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b.Clone())
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) Mutate(id int64, fn func(b *booking.TrackedBooking) error) (booking.TrackedBooking, booking.TrackedBooking, error) {
	s.mu.Lock()
	current, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return booking.TrackedBooking{}, booking.TrackedBooking{}, errs.Wrapf(errs.ErrBookingNotTracked, "booking %d", id)
	}

	before := current.Clone()
	next := current.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return before, before, err
	}
	// Identity is owned by the store key.
	next.ID = id
	s.bookings[id] = next.Clone()
	s.mu.Unlock()

	s.emit(shared.StoreChange{Kind: shared.StoreUpserted, ID: id, Booking: next.Clone()})
	return before, next, nil
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	removed := s.bookings
	s.bookings = make(map[int64]booking.TrackedBooking)
	s.mu.Unlock()

	for id, b := range removed {
		s.emit(shared.StoreChange{Kind: shared.StoreRemoved, ID: id, Booking: b})
	}
}

// OnChange registers fn to run after every mutation, outside the store lock.
func (s *MemoryStore) OnChange(fn func(shared.StoreChange)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *MemoryStore) emit(change shared.StoreChange) {
	s.mu.Lock()
	listeners := make([]func(shared.StoreChange), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}
