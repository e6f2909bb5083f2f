package components

import (
	"log/slog"

	"workshop-booking/internal/infra/backend"
	"workshop-booking/internal/infra/store"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	storeModule,
	backendModule,
)

var storeModule = fx.Module("persistence/store",
	fx.Provide(
		fx.Annotate(
			store.NewMemoryStore,
			fx.As(new(shared.BookingStore)),
		),
	),
)

var backendModule = fx.Module("persistence/backend",
	fx.Provide(
		NewBackendClient,
		fx.Annotate(
			func(c *backend.Client) *backend.Client { return c },
			fx.As(new(shared.Backend)),
			fx.As(new(shared.BookingDecoder)),
		),
	),
)

func NewBackendClient(cfg config.Config, logger *slog.Logger) (*backend.Client, error) {
	return backend.NewClient(cfg.Backend, logger)
}
