package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends outward engine events to a topic exchange, routed by event kind.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *slog.Logger
}

func NewPublisher(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "declare exchange")
	}
	logger.Info("AMQP event sink connected", "exchange", exchange)
	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

func newPublisherWithChannel(ch channel, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, event shared.Event) error {
	if !event.Kind.Outward() {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "encode event")
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, string(event.Kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.At,
		Type:         string(event.Kind),
		Body:         body,
	})
	if err != nil {
		return errs.Wrapf(err, "publish %s for booking %d", event.Kind, event.BookingID)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
