package components

import (
	"context"
	"log/slog"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/usecase"
	"workshop-booking/internal/usecase/commands"
	"workshop-booking/internal/usecase/engine"
	"workshop-booking/internal/usecase/queries"
	"workshop-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseEngineModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPolicy,
)

var usecaseEngineModule = fx.Module("usecase/engine",
	fx.Provide(
		func(cfg config.Config, clock clock.Clock, logger *slog.Logger) *engine.Bus {
			return engine.NewBus(cfg.Engine, clock, logger)
		},
		engine.NewEvaluator,
		func(cfg config.Config, evaluator *engine.Evaluator, clock clock.Clock, logger *slog.Logger) *engine.Scheduler {
			return engine.NewScheduler(cfg.Engine, evaluator, clock, logger)
		},
		func(
			store shared.BookingStore,
			backend shared.Backend,
			overrides shared.OverrideCache,
			bus *engine.Bus,
			policy booking.Policy,
			clock clock.Clock,
			cfg config.Config,
			logger *slog.Logger,
		) *engine.Gateway {
			return engine.NewGateway(store, backend, overrides, bus, policy, clock, cfg.Backend, logger)
		},
		engine.NewTracker,
	),
	fx.Invoke(
		WatchStore,
		StartEngine,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPolicy(cfg config.Config) booking.Policy {
	return booking.Policy{
		CancellationWindow: cfg.Engine.CancellationWindow,
		ArrivalWindow:      cfg.Engine.ArrivalWindow,
	}
}

func WatchStore(bus *engine.Bus, store shared.BookingStore) {
	bus.WatchStore(store)
}

// StartEngine loads the tracked set and runs the tick for the lifetime of the app.
func StartEngine(lc fx.Lifecycle, scheduler *engine.Scheduler, tracker *engine.Tracker, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := tracker.Sync(ctx); err != nil {
				// the UI can retry through POST /api/bookings/sync
				logger.Warn("Initial booking sync failed", "error", err)
			}
			// the OnStart context ends when startup completes
			return scheduler.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			tracker.Shutdown(ctx)
			return nil
		},
	})
}
