package notify

import "log/slog"

type Channel = channel

func NewPublisherWithChannel(ch Channel, exchange string, logger *slog.Logger) *Publisher {
	return newPublisherWithChannel(ch, exchange, logger)
}
