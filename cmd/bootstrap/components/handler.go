package components

import (
	"workshop-booking/internal/handler"
	"workshop-booking/internal/handler/api"
	"workshop-booking/internal/handler/middleware"
	"workshop-booking/internal/usecase/engine"
	"workshop-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(scheduler *engine.Scheduler, store shared.BookingStore) *api.HealthHandler {
			return api.NewHealthHandler(scheduler, store)
		},
		api.NewBookingHandler,
		fx.Annotate(
			func(bus *engine.Bus) *engine.Bus { return bus },
			fx.As(new(api.EventSubscriber)),
		),
		api.NewEventsHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
