package engine

import (
	"context"
	"log/slog"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/shared"
)

var errUnchanged = errs.New("booking unchanged")

// Evaluator runs the time-driven rules against every tracked booking.
type Evaluator struct {
	store  shared.BookingStore
	policy booking.Policy
	bus    *Bus
	logger *slog.Logger
}

func NewEvaluator(store shared.BookingStore, policy booking.Policy, bus *Bus, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		store:  store,
		policy: policy,
		bus:    bus,
		logger: logger,
	}
}

type TickReport struct {
	Fired   []int64
	Expired []int64
}

// Evaluate fires due arrival triggers and expires unanswered responses at now.
// Each booking is read and written in one store mutation, so a trigger fires at most once.
func (e *Evaluator) Evaluate(ctx context.Context, now time.Time) TickReport {
	var report TickReport

	for _, snapshot := range e.store.All() {
		var fired, expired bool

		_, _, err := e.store.Mutate(snapshot.ID, func(b *booking.TrackedBooking) error {
			fired, expired = false, false

			if next, changed := booking.ExpireResponse(b.ResponseStatus, b.AppointmentAt, now); changed {
				b.ResponseStatus = next
				expired = true
			}
			if e.policy.ArrivalDue(*b, now) {
				b.HasArrivalFired = true
				fired = true
			}

			if !fired && !expired {
				return errUnchanged
			}
			return nil
		})
		switch {
		case err == nil:
		case errs.Is(err, errUnchanged):
			continue
		case errs.Is(err, errs.ErrBookingNotTracked):
			// untracked between the scan and the mutation
			continue
		default:
			e.logger.Error("Tick evaluation failed", "booking_id", snapshot.ID, "error", err)
			continue
		}

		if expired {
			report.Expired = append(report.Expired, snapshot.ID)
			e.logger.Info("Response window expired", "booking_id", snapshot.ID)
		}
		if fired {
			report.Fired = append(report.Fired, snapshot.ID)
			e.logger.Info("Arrival trigger fired", "booking_id", snapshot.ID, "appointment_at", snapshot.AppointmentAt)
			e.bus.Emit(ctx, shared.NewArrivalTriggered(snapshot.ID, now))
		}
	}

	return report
}
