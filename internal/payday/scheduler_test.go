package payday

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type recordingLedger struct {
	mu    sync.Mutex
	calls []time.Time
}

func (l *recordingLedger) AutoCashOutDue(now time.Time) {
	l.mu.Lock()
	l.calls = append(l.calls, now)
	l.mu.Unlock()
}

func (l *recordingLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func TestSchedulerRunsImmediatePassAndTicks(t *testing.T) {
	ledger := &recordingLedger{}
	clk := &fixedClock{now: time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)}
	s := NewScheduler(ledger, clk, 5*time.Millisecond, slog.Default())

	s.Start(context.Background())
	deadline := time.After(2 * time.Second)
	for ledger.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d passes before deadline, want >= 3", ledger.count())
		case <-time.After(time.Millisecond):
		}
	}
	s.Stop()

	// The clock the ledger sees is the injected one.
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	for _, at := range ledger.calls {
		if !at.Equal(clk.now) {
			t.Fatalf("ledger saw %v, want injected instant %v", at, clk.now)
		}
	}
}

func TestSchedulerStopHaltsTicks(t *testing.T) {
	ledger := &recordingLedger{}
	clk := &fixedClock{now: time.Now()}
	s := NewScheduler(ledger, clk, 5*time.Millisecond, slog.Default())

	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	got := ledger.count()
	time.Sleep(30 * time.Millisecond)
	if after := ledger.count(); after != got {
		t.Fatalf("passes kept running after Stop: %d -> %d", got, after)
	}
}
