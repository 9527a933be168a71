// Package payday drives automatic cash-outs on a wall-clock tick.
package payday

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/farthing/internal/clock"
)

// Ledger is the engine surface the scheduler drives. The engine owns the
// weekday/minute matching and the per-day idempotency marker, so scheduler
// ticks and user-triggered cash-outs serialize on the same lock.
type Ledger interface {
	AutoCashOutDue(now time.Time)
}

// Scheduler ticks once per interval and hands the current instant to the
// ledger. Matching resolution is one minute; jitter within the minute is
// absorbed by the engine's idempotency marker.
type Scheduler struct {
	mu       sync.RWMutex
	ledger   Ledger
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(ledger Ledger, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		ledger:   ledger,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the scheduler loop. An immediate pass runs first so a process
// started inside the matching minute still fires.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		s.ledger.AutoCashOutDue(s.clock.Now())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.ledger.AutoCashOutDue(s.clock.Now())
			}
		}
	}()

	s.logger.Info("payday scheduler started", "interval", s.interval)
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
