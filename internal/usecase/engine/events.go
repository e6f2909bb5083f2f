package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/usecase/shared"
)

// Bus fans engine events out to in-process subscribers and outward sinks.
// Emit never blocks: a full subscriber buffer or sink queue drops the event.
type Bus struct {
	mu          sync.RWMutex
	subs        map[uint64]chan shared.Event
	nextID      uint64
	sinks       []*sinkWorker
	closed      bool
	bufferSize  int
	sinkTimeout time.Duration
	clock       clock.Clock
	logger      *slog.Logger
}

// sinkWorker delivers queued events to one sink on its own goroutine.
type sinkWorker struct {
	sink  shared.EventSink
	queue chan queuedEvent
	done  chan struct{}
}

type queuedEvent struct {
	ctx   context.Context
	event shared.Event
}

func NewBus(cfg config.EngineConfig, clock clock.Clock, logger *slog.Logger) *Bus {
	size := cfg.EventBufferSize
	if size <= 0 {
		size = 1
	}
	timeout := cfg.SinkTimeout
	if timeout <= 0 {
		timeout = defaultSinkTimeout
	}
	return &Bus{
		subs:        make(map[uint64]chan shared.Event),
		bufferSize:  size,
		sinkTimeout: timeout,
		clock:       clock,
		logger:      logger,
	}
}

const defaultSinkTimeout = 5 * time.Second

// AddSink starts delivering outward events to sink. It is a no-op after Close.
func (b *Bus) AddSink(sink shared.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	w := &sinkWorker{
		sink:  sink,
		queue: make(chan queuedEvent, b.bufferSize),
		done:  make(chan struct{}),
	}
	b.sinks = append(b.sinks, w)
	go b.deliver(w)
}

func (b *Bus) deliver(w *sinkWorker) {
	defer close(w.done)
	for q := range w.queue {
		ctx, cancel := context.WithTimeout(q.ctx, b.sinkTimeout)
		err := w.sink.Publish(ctx, q.event)
		cancel()
		if err != nil {
			b.logger.Warn("Event sink delivery failed",
				"kind", string(q.event.Kind),
				"booking_id", q.event.BookingID,
				"error", err)
		}
	}
}

// Subscribe returns a buffered channel of events and a function that ends the subscription.
func (b *Bus) Subscribe() (<-chan shared.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan shared.Event, b.bufferSize)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Bus) Emit(ctx context.Context, event shared.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("Dropping event for slow subscriber",
				"subscriber", id,
				"kind", string(event.Kind),
				"booking_id", event.BookingID)
		}
	}

	if !event.Kind.Outward() || b.closed {
		return
	}
	// request contexts end with the response; delivery outlives them
	q := queuedEvent{ctx: context.WithoutCancel(ctx), event: event}
	for _, w := range b.sinks {
		select {
		case w.queue <- q:
		default:
			b.logger.Warn("Dropping event for backed up sink",
				"kind", string(event.Kind),
				"booking_id", event.BookingID)
		}
	}
}

// Close stops accepting outward events and waits until the sinks drained
// their queues or ctx is done.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	workers := b.sinks
	for _, w := range workers {
		close(w.queue)
	}
	b.mu.Unlock()

	for _, w := range workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// WatchStore forwards every store mutation as a booking.updated event.
func (b *Bus) WatchStore(store shared.BookingStore) {
	store.OnChange(func(change shared.StoreChange) {
		b.Emit(context.Background(), shared.NewBookingUpdated(change, b.clock.Now()))
	})
}
