//go:build unit

package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra/notify"
	"workshop-booking/internal/usecase/shared"
	"workshop-booking/tests/common/builder"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("routes by event kind", func(t *testing.T) {
		ch := &fakeChannel{}
		p := notify.NewPublisherWithChannel(ch, "booking.events", logger)

		event := shared.NewStatusChanged(7, booking.StatusPending, booking.StatusConfirmed, builder.T0)
		require.NoError(t, p.Publish(context.Background(), event))

		require.Len(t, ch.sent, 1)
		assert.Equal(t, "booking.events", ch.sent[0].exchange)
		assert.Equal(t, "status.changed", ch.sent[0].key)
		assert.Equal(t, event.ID.String(), ch.sent[0].msg.MessageId)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &decoded))
		assert.Equal(t, "pending", decoded["old_status"])
		assert.Equal(t, "confirmed", decoded["new_status"])
		assert.EqualValues(t, 7, decoded["booking_id"])
	})

	t.Run("store updates stay inside the process", func(t *testing.T) {
		ch := &fakeChannel{}
		p := notify.NewPublisherWithChannel(ch, "booking.events", logger)

		change := shared.StoreChange{Kind: shared.StoreUpserted, ID: 7, Booking: builder.NewBookingBuilder().WithID(7).Build()}
		require.NoError(t, p.Publish(context.Background(), shared.NewBookingUpdated(change, builder.T0)))
		assert.Empty(t, ch.sent)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		ch := &fakeChannel{err: errors.New("channel closed")}
		p := notify.NewPublisherWithChannel(ch, "booking.events", logger)

		err := p.Publish(context.Background(), shared.NewArrivalTriggered(7, builder.T0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "arrival.triggered")
	})

	t.Run("close closes the channel", func(t *testing.T) {
		ch := &fakeChannel{}
		p := notify.NewPublisherWithChannel(ch, "booking.events", logger)
		require.NoError(t, p.Close())
		assert.True(t, ch.closed)
	})
}
