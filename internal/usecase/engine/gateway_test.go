//go:build unit

package engine_test

import (
	"context"
	"testing"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra"
	"workshop-booking/internal/infra/cache"
	"workshop-booking/internal/infra/store"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/engine"
	"workshop-booking/internal/usecase/shared"
	"workshop-booking/tests/common/builder"
	"workshop-booking/tests/common/testutil"
	sharedmock "workshop-booking/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GatewayTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockBackend *sharedmock.MockBackend
	store       *store.MemoryStore
	overrides   *cache.MemoryOverrideCache
	clock       *clock.MockClock
	bus         *engine.Bus
	events      <-chan shared.Event
	unsubscribe func()
	evaluator   *engine.Evaluator
	gateway     *engine.Gateway
	ctx         context.Context
}

func (s *GatewayTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBackend = sharedmock.NewMockBackend(s.mockCtrl)
	s.store = store.NewMemoryStore()
	s.overrides = cache.NewMemoryOverrideCache()
	s.clock = clock.NewMockClock(builder.T0)
	s.ctx = context.Background()

	cfg := config.NewTestConfig()
	logger := testutil.DiscardLogger()
	s.bus = engine.NewBus(cfg.Engine, s.clock, logger)
	s.events, s.unsubscribe = s.bus.Subscribe()

	policy := booking.DefaultPolicy()
	s.evaluator = engine.NewEvaluator(s.store, policy, s.bus, logger)
	s.gateway = engine.NewGateway(s.store, s.mockBackend, s.overrides, s.bus, policy, s.clock, cfg.Backend, logger)
}

func (s *GatewayTestSuite) TearDownTest() {
	s.unsubscribe()
	s.mockCtrl.Finish()
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func (s *GatewayTestSuite) outward() []shared.Event {
	return testutil.OutwardEvents(testutil.DrainEvents(s.events))
}

func serverError() error {
	return errs.Mark(errs.New("PATCH /bookings/101/status: HTTP 500"), errs.ErrServerRejected)
}

func backendError(kind infra.BackendErrorKind, code int) error {
	return infra.WrapBackendErr(testutil.DiscardLogger(), kind, code, "PATCH /bookings/101/status", nil)
}

func (s *GatewayTestSuite) TestTransitionRollbackOnServerError() {
	original := builder.NewBookingBuilder().WithLocalCreationTime(builder.T0.Add(time.Minute)).Build()
	s.store.Upsert(original)
	s.clock.Set(builder.T0.Add(30 * time.Minute))

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusConfirmed).
		DoAndReturn(func(context.Context, int64, booking.Status) error {
			inFlight, ok := s.store.Get(101)
			s.Require().True(ok)
			s.Equal(booking.StatusConfirmed, inFlight.Status, "optimistic state is visible during the call")
			return serverError()
		})

	result, err := s.gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionConfirm)
	s.Require().Error(err)
	s.Nil(result)
	s.True(errs.Is(err, errs.ErrServerRejected))

	restored, ok := s.store.Get(101)
	s.Require().True(ok)
	if diff := cmp.Diff(original, restored); diff != "" {
		s.T().Errorf("rollback mismatch (-want +got):\n%s", diff)
	}

	events := s.outward()
	s.Require().Len(events, 1)
	s.Equal(shared.EventMutationFailed, events[0].Kind)
	s.Equal(int64(101), events[0].BookingID)
	s.Equal("confirmed", events[0].Attempted)
	s.Contains(events[0].Reason, "server rejected")
}

func (s *GatewayTestSuite) TestRollbackKeepsArrivalTriggerMonotonic() {
	b := builder.NewBookingBuilder().Build()
	s.store.Upsert(b)
	s.clock.Set(b.AppointmentAt.Add(5 * time.Second))

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusConfirmed).
		DoAndReturn(func(context.Context, int64, booking.Status) error {
			report := s.evaluator.Evaluate(s.ctx, s.clock.Now())
			s.Equal([]int64{101}, report.Fired)
			return serverError()
		})

	_, err := s.gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionConfirm)
	s.Require().Error(err)

	restored, _ := s.store.Get(101)
	s.Equal(booking.StatusPending, restored.Status)
	s.True(restored.HasArrivalFired)

	report := s.evaluator.Evaluate(s.ctx, s.clock.Now())
	s.Empty(report.Fired)
}

func (s *GatewayTestSuite) TestRollbackDoesNotResurrectUntrackedBooking() {
	s.store.Upsert(builder.NewBookingBuilder().Build())

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusCancelled).
		DoAndReturn(func(context.Context, int64, booking.Status) error {
			s.store.Remove(101)
			return serverError()
		})

	_, err := s.gateway.Transition(s.ctx, 101, booking.ActorOwner, booking.TransitionCancel)
	s.Require().Error(err)

	_, ok := s.store.Get(101)
	s.False(ok)
}

func (s *GatewayTestSuite) TestRollbackKeepsLaterSuccessfulTransition() {
	s.store.Upsert(builder.NewBookingBuilder().Build())
	s.clock.Set(builder.T0.Add(30 * time.Minute))

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusInProgress).Return(nil)
	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusConfirmed).
		DoAndReturn(func(context.Context, int64, booking.Status) error {
			result, err := s.gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionMarkInProgress)
			s.Require().NoError(err)
			s.Equal(booking.StatusInProgress, result.Booking.Status)
			return serverError()
		})

	_, err := s.gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionConfirm)
	s.Require().Error(err)

	stored, ok := s.store.Get(101)
	s.Require().True(ok)
	s.Equal(booking.StatusInProgress, stored.Status)

	events := s.outward()
	s.Require().Len(events, 2)
	s.Equal(shared.EventStatusChanged, events[0].Kind)
	s.Equal(shared.EventMutationFailed, events[1].Kind)
}

func (s *GatewayTestSuite) TestValidationRejectionNeverReachesBackend() {
	s.store.Upsert(builder.NewBookingBuilder().Build())

	tests := []struct {
		name  string
		actor booking.ActorRole
		tr    booking.Transition
		now   time.Time
		errIs error
	}{
		{"cancel after the window", booking.ActorOwner, booking.TransitionCancel, builder.T0.Add(12*time.Hour + time.Minute), booking.ErrCancellationWindowExpired},
		{"owner cannot confirm", booking.ActorOwner, booking.TransitionConfirm, builder.T0, booking.ErrActorNotPermitted},
		{"undefined edge", booking.ActorWorkshop, booking.TransitionComplete, builder.T0, booking.ErrTransitionNotAllowed},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.clock.Set(tt.now)
			_, err := s.gateway.Transition(s.ctx, 101, tt.actor, tt.tr)
			s.ErrorIs(err, tt.errIs)
			s.True(errs.Is(err, errs.ErrNotAllowed))
		})
	}

	stored, _ := s.store.Get(101)
	s.Equal(booking.StatusPending, stored.Status)
	s.Empty(s.outward())
}

func (s *GatewayTestSuite) TestTransitionOnUntrackedBooking() {
	_, err := s.gateway.Transition(s.ctx, 404, booking.ActorWorkshop, booking.TransitionConfirm)
	s.True(errs.Is(err, errs.ErrBookingNotTracked))
}

func (s *GatewayTestSuite) TestCancelSuccessUntracks() {
	s.store.Upsert(builder.NewBookingBuilder().WithLocalCreationTime(builder.T0).Build())
	s.Require().NoError(s.overrides.Set(s.ctx, 101, builder.T0))
	s.clock.Set(builder.T0.Add(11*time.Hour + 59*time.Minute))

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusCancelled).Return(nil)

	result, err := s.gateway.Transition(s.ctx, 101, booking.ActorOwner, booking.TransitionCancel)
	s.Require().NoError(err)
	s.True(result.Untracked)
	s.Equal(booking.StatusCancelled, result.Booking.Status)

	_, ok := s.store.Get(101)
	s.False(ok)

	cached, err := s.overrides.Get(s.ctx, 101)
	s.Require().NoError(err)
	s.Nil(cached)

	events := s.outward()
	s.Require().Len(events, 1)
	s.Equal(shared.EventStatusChanged, events[0].Kind)
	s.Equal(booking.StatusPending, events[0].OldStatus)
	s.Equal(booking.StatusCancelled, events[0].NewStatus)
}

func (s *GatewayTestSuite) TestConflictIsReconciledToServerStatus() {
	s.store.Upsert(builder.NewBookingBuilder().Build())

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusConfirmed).
		Return(&shared.ConflictError{BookingID: 101, Current: booking.StatusCancelled})

	result, err := s.gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionConfirm)
	s.Require().NoError(err)
	s.True(result.Reconciled)
	s.True(result.Untracked)
	s.Equal(booking.StatusCancelled, result.Booking.Status)
	s.Contains(result.Notice, "already handled elsewhere")

	_, ok := s.store.Get(101)
	s.False(ok)

	events := s.outward()
	s.Require().Len(events, 1)
	s.Equal(shared.EventStatusChanged, events[0].Kind)
	s.Equal(booking.StatusCancelled, events[0].NewStatus)
}

func (s *GatewayTestSuite) TestConflictWithNonTerminalStatusStaysTracked() {
	s.store.Upsert(builder.NewBookingBuilder().Build())

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusCancelled).
		Return(&shared.ConflictError{BookingID: 101, Current: booking.StatusConfirmed})

	result, err := s.gateway.Transition(s.ctx, 101, booking.ActorOwner, booking.TransitionCancel)
	s.Require().NoError(err)
	s.True(result.Reconciled)
	s.False(result.Untracked)

	stored, ok := s.store.Get(101)
	s.Require().True(ok)
	s.Equal(booking.StatusConfirmed, stored.Status)
}

func (s *GatewayTestSuite) TestConflictWithoutServerRecord() {
	s.Run("terminal server record is taken and untracked", func() {
		s.store.Upsert(builder.NewBookingBuilder().AsFired().Build())
		s.Require().NoError(s.overrides.Set(s.ctx, 101, builder.T0))
		_ = testutil.DrainEvents(s.events)

		gomock.InOrder(
			s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusConfirmed).
				Return(backendError(infra.KindConflict, 409)),
			s.mockBackend.EXPECT().FetchBooking(gomock.Any(), int64(101)).
				Return(builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build(), nil),
		)

		result, err := s.gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionConfirm)
		s.Require().NoError(err)
		s.True(result.Reconciled)
		s.True(result.Untracked)
		s.Equal(booking.StatusCancelled, result.Booking.Status)
		s.True(result.Booking.HasArrivalFired)
		s.Contains(result.Notice, "already handled elsewhere")

		_, ok := s.store.Get(101)
		s.False(ok)
		cached, err := s.overrides.Get(s.ctx, 101)
		s.Require().NoError(err)
		s.Nil(cached)

		events := s.outward()
		s.Require().Len(events, 1)
		s.Equal(shared.EventStatusChanged, events[0].Kind)
		s.Equal(booking.StatusPending, events[0].OldStatus)
		s.Equal(booking.StatusCancelled, events[0].NewStatus)
	})

	s.Run("live server record replaces the optimistic state", func() {
		s.store.Upsert(builder.NewBookingBuilder().WithID(202).Build())
		_ = testutil.DrainEvents(s.events)

		fetched := builder.NewBookingBuilder().WithID(202).
			WithStatus(booking.StatusConfirmed).
			WithResponseStatus(booking.ResponseAccepted).
			Build()
		gomock.InOrder(
			s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(202), booking.StatusCancelled).
				Return(backendError(infra.KindConflict, 409)),
			s.mockBackend.EXPECT().FetchBooking(gomock.Any(), int64(202)).Return(fetched, nil),
		)

		result, err := s.gateway.Transition(s.ctx, 202, booking.ActorOwner, booking.TransitionCancel)
		s.Require().NoError(err)
		s.True(result.Reconciled)
		s.False(result.Untracked)

		stored, ok := s.store.Get(202)
		s.Require().True(ok)
		if diff := cmp.Diff(fetched, stored); diff != "" {
			s.T().Errorf("reconciled booking mismatch (-want +got):\n%s", diff)
		}
		events := s.outward()
		s.Require().Len(events, 1)
		s.Equal(shared.EventStatusChanged, events[0].Kind)
		s.Equal(booking.StatusConfirmed, events[0].NewStatus)
	})

	s.Run("failed follow-up fetch rolls back", func() {
		original := builder.NewBookingBuilder().WithID(303).Build()
		s.store.Upsert(original)
		_ = testutil.DrainEvents(s.events)

		gomock.InOrder(
			s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(303), booking.StatusConfirmed).
				Return(backendError(infra.KindConflict, 409)),
			s.mockBackend.EXPECT().FetchBooking(gomock.Any(), int64(303)).
				Return(booking.TrackedBooking{}, backendError(infra.KindTransport, 0)),
		)

		result, err := s.gateway.Transition(s.ctx, 303, booking.ActorWorkshop, booking.TransitionConfirm)
		s.Require().Error(err)
		s.Nil(result)
		s.True(errs.Is(err, errs.ErrHandledElsewhere))

		stored, _ := s.store.Get(303)
		if diff := cmp.Diff(original, stored); diff != "" {
			s.T().Errorf("rollback mismatch (-want +got):\n%s", diff)
		}
		events := s.outward()
		s.Require().Len(events, 1)
		s.Equal(shared.EventMutationFailed, events[0].Kind)
	})
}

func (s *GatewayTestSuite) TestBookingDeletedOnServerIsUntracked() {
	s.store.Upsert(builder.NewBookingBuilder().Build())
	s.Require().NoError(s.overrides.Set(s.ctx, 101, builder.T0))

	s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusConfirmed).
		Return(backendError(infra.KindNotFound, 404))

	result, err := s.gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionConfirm)
	s.Require().NoError(err)
	s.True(result.Reconciled)
	s.True(result.Untracked)
	s.Contains(result.Notice, "already handled elsewhere")
	s.NotContains(result.Notice, "server rejected")

	_, ok := s.store.Get(101)
	s.False(ok)
	cached, err := s.overrides.Get(s.ctx, 101)
	s.Require().NoError(err)
	s.Nil(cached)

	for _, e := range s.outward() {
		s.NotEqual(shared.EventMutationFailed, e.Kind)
	}
}

func (s *GatewayTestSuite) TestResyncAfterSuccess() {
	cfg := config.NewTestConfig()
	cfg.Backend.ResyncAfterMutation = true
	logger := testutil.DiscardLogger()
	gateway := engine.NewGateway(s.store, s.mockBackend, s.overrides, s.bus, booking.DefaultPolicy(), s.clock, cfg.Backend, logger)

	local := builder.NewBookingBuilder().WithLocalCreationTime(builder.T0).AsFired().Build()
	s.store.Upsert(local)

	fetched := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithResponseStatus(booking.ResponseAccepted).Build()
	gomock.InOrder(
		s.mockBackend.EXPECT().UpdateStatus(gomock.Any(), int64(101), booking.StatusConfirmed).Return(nil),
		s.mockBackend.EXPECT().FetchBooking(gomock.Any(), int64(101)).Return(fetched, nil),
	)

	result, err := gateway.Transition(s.ctx, 101, booking.ActorWorkshop, booking.TransitionConfirm)
	s.Require().NoError(err)
	s.Equal(booking.ResponseAccepted, result.Booking.ResponseStatus)
	s.True(result.Booking.HasArrivalFired)
	s.Require().NotNil(result.Booking.LocalCreationTimeOverride)
	s.Equal(builder.T0, *result.Booking.LocalCreationTimeOverride)
}

func (s *GatewayTestSuite) TestRespond() {
	s.Run("declined to accepted then final", func() {
		s.store.Upsert(builder.NewBookingBuilder().WithResponseStatus(booking.ResponseDeclined).Build())
		s.clock.Set(builder.T0.Add(time.Hour))

		s.mockBackend.EXPECT().UpdateResponse(gomock.Any(), int64(101), booking.ResponseAccepted, booking.ActorOwner).Return(nil)

		result, err := s.gateway.Respond(s.ctx, 101, booking.ActorOwner, booking.ResponseAccepted)
		s.Require().NoError(err)
		s.Equal(booking.ResponseAccepted, result.Booking.ResponseStatus)

		_, err = s.gateway.Respond(s.ctx, 101, booking.ActorOwner, booking.ResponseDeclined)
		s.ErrorIs(err, booking.ErrAcceptanceFinal)
	})

	s.Run("transport failure restores the previous response", func() {
		s.store.Upsert(builder.NewBookingBuilder().WithID(202).Build())
		s.clock.Set(builder.T0.Add(time.Hour))
		_ = testutil.DrainEvents(s.events)

		s.mockBackend.EXPECT().UpdateResponse(gomock.Any(), int64(202), booking.ResponseDeclined, booking.ActorWorkshop).Return(serverError())

		_, err := s.gateway.Respond(s.ctx, 202, booking.ActorWorkshop, booking.ResponseDeclined)
		s.Require().Error(err)

		stored, _ := s.store.Get(202)
		s.Equal(booking.ResponsePending, stored.ResponseStatus)

		events := s.outward()
		s.Require().Len(events, 1)
		s.Equal(shared.EventMutationFailed, events[0].Kind)
		s.Equal("declined", events[0].Attempted)
	})

	s.Run("after the appointment instant", func() {
		s.store.Upsert(builder.NewBookingBuilder().WithID(303).Build())
		s.clock.Set(builder.T0.Add(2 * time.Hour))

		_, err := s.gateway.Respond(s.ctx, 303, booking.ActorOwner, booking.ResponseAccepted)
		s.ErrorIs(err, booking.ErrAppointmentPassed)
	})
}

func (s *GatewayTestSuite) TestConfirmArrival() {
	s.Run("first party keeps tracking", func() {
		b := builder.NewBookingBuilder().AsFired().Build()
		s.store.Upsert(b)
		s.clock.Set(b.AppointmentAt.Add(10 * time.Second))

		s.mockBackend.EXPECT().ConfirmArrival(gomock.Any(), int64(101), booking.ActorOwner).
			Return(&shared.ArrivalResult{BothConfirmed: false}, nil)

		result, err := s.gateway.ConfirmArrival(s.ctx, 101, booking.ActorOwner)
		s.Require().NoError(err)
		s.False(result.Untracked)
		s.True(result.Booking.OwnerConfirmedArrival)
		s.False(result.Booking.BothConfirmed())
	})

	s.Run("second party completes the handshake", func() {
		s.mockBackend.EXPECT().ConfirmArrival(gomock.Any(), int64(101), booking.ActorWorkshop).
			Return(&shared.ArrivalResult{BothConfirmed: true, ResultingStatus: booking.StatusInProgress}, nil)

		result, err := s.gateway.ConfirmArrival(s.ctx, 101, booking.ActorWorkshop)
		s.Require().NoError(err)
		s.True(result.Untracked)
		s.True(result.Booking.BothConfirmed())
		s.Equal(booking.ResponseConfirmed, result.Booking.ResponseStatus)
		s.Equal(booking.StatusInProgress, result.Booking.Status)

		_, ok := s.store.Get(101)
		s.False(ok)
	})

	s.Run("before the appointment", func() {
		s.store.Upsert(builder.NewBookingBuilder().WithID(5).Build())
		s.clock.Set(builder.T0)

		_, err := s.gateway.ConfirmArrival(s.ctx, 5, booking.ActorOwner)
		s.ErrorIs(err, booking.ErrArrivalNotReached)
	})

	s.Run("transport failure clears the optimistic flag", func() {
		b := builder.NewBookingBuilder().WithID(6).AsFired().Build()
		s.store.Upsert(b)
		s.clock.Set(b.AppointmentAt.Add(time.Minute))

		s.mockBackend.EXPECT().ConfirmArrival(gomock.Any(), int64(6), booking.ActorOwner).Return(nil, serverError())

		_, err := s.gateway.ConfirmArrival(s.ctx, 6, booking.ActorOwner)
		s.Require().Error(err)

		stored, _ := s.store.Get(6)
		s.False(stored.OwnerConfirmedArrival)
	})
}
