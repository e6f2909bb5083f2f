package bootstrap

import (
	"context"
	"log/slog"

	"workshop-booking/internal/infra/notify"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/usecase/engine"

	"go.uber.org/fx"
)

var AMQPModule = fx.Module("amqp",
	fx.Invoke(
		RegisterEventSink,
	),
)

// RegisterEventSink attaches the RabbitMQ publisher to the bus when AMQP_URL is set.
func RegisterEventSink(lc fx.Lifecycle, cfg config.Config, bus *engine.Bus, logger *slog.Logger) error {
	if !cfg.AMQP.Enabled() {
		logger.Info("AMQP_URL not set, outward event sink disabled")
		return nil
	}

	publisher, err := notify.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
	if err != nil {
		return err
	}
	bus.AddSink(publisher)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := bus.Close(ctx); err != nil {
				logger.Warn("Outward events left undelivered", "error", err)
			}
			return publisher.Close()
		},
	})
	return nil
}
