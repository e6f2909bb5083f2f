package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/pkg/errs"
)

var ErrSchedulerRunning = errs.New("scheduler already running")

// Scheduler is the handle owning the repeating tick. Ticks run sequentially on one goroutine.
type Scheduler struct {
	interval  time.Duration
	evaluator *Evaluator
	clock     clock.Clock
	logger    *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(cfg config.EngineConfig, evaluator *Evaluator, clock clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval:  cfg.TickInterval,
		evaluator: evaluator,
		clock:     clock,
		logger:    logger,
	}
}

// Start launches the tick loop. It runs until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrSchedulerRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.run(loopCtx, done)
	s.logger.Info("Booking scheduler started", "interval", s.interval)
	return nil
}

// Stop cancels the tick loop and waits for an in-progress tick to finish. It is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Booking scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Tick evaluates once at the current clock time.
func (s *Scheduler) Tick(ctx context.Context) TickReport {
	return s.evaluator.Evaluate(ctx, s.clock.Now())
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}
