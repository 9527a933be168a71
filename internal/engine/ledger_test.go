package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/farthing/internal/model"
)

func TestRequestCashOutNothingEarned(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Frodo")
	mustChore(t, e, p.ID, "Dishes", 100, time.Monday)

	if _, err := e.RequestCashOut(p.ID); !errors.Is(err, ErrNothingToCashOut) {
		t.Fatalf("err = %v, want ErrNothingToCashOut", err)
	}
	if got := len(e.PendingCashOuts(p.ID)); got != 0 {
		t.Fatalf("pending records = %d, want 0", got)
	}
}

func TestRequestCashOut(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Sam")
	ch1 := mustChore(t, e, p.ID, "Garden", 100, time.Sunday, time.Monday)
	ch2 := mustChore(t, e, p.ID, "Taters", 250, time.Monday)
	today := model.DateKey(monday)
	yesterday := model.DateKey(monday.AddDate(0, 0, -1))

	if err := e.ToggleCompletion(p.ID, ch1.ID, yesterday, ActorParent); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := e.ToggleCompletion(p.ID, ch1.ID, today, ActorChild); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := e.ToggleCompletion(p.ID, ch2.ID, today, ActorChild); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	rec, err := e.RequestCashOut(p.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if rec.Amount != 450 {
		t.Errorf("amount = %d, want 450", rec.Amount)
	}
	if rec.Type != model.RecordChore {
		t.Errorf("type = %q, want chore", rec.Type)
	}
	if rec.RequestDate != today {
		t.Errorf("request date = %q, want %q", rec.RequestDate, today)
	}
	if len(rec.Completions) != 3 {
		t.Fatalf("snapshot entries = %d, want 3", len(rec.Completions))
	}
	for _, entry := range rec.Completions {
		if !entry.IsCompleted {
			t.Errorf("entry %s/%s not marked completed", entry.ChoreID, entry.Date)
		}
	}

	// Every snapshotted completion advanced to pending_cash_out.
	if got := choreState(t, e, p.ID, ch1.ID, yesterday); got != model.StatePendingCashOut {
		t.Errorf("ch1 %s = %q, want pending_cash_out", yesterday, got)
	}
	if got := choreState(t, e, p.ID, ch1.ID, today); got != model.StatePendingCashOut {
		t.Errorf("ch1 %s = %q, want pending_cash_out", today, got)
	}

	// Settled chores leave the current-earnings sum.
	if cents, _ := e.CurrentEarnings(p.ID); cents != 0 {
		t.Errorf("current earnings after request = %d, want 0", cents)
	}

	// Nothing left to cash out.
	if _, err := e.RequestCashOut(p.ID); !errors.Is(err, ErrNothingToCashOut) {
		t.Fatalf("second request err = %v, want ErrNothingToCashOut", err)
	}
}

func TestReviewAndApproveCashOut(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Merry")
	ch1 := mustChore(t, e, p.ID, "Trash", 100, time.Monday)
	ch2 := mustChore(t, e, p.ID, "Ponies", 300, time.Monday)
	today := model.DateKey(monday)
	e.ToggleCompletion(p.ID, ch1.ID, today, ActorChild)
	e.ToggleCompletion(p.ID, ch2.ID, today, ActorChild)

	rec, err := e.RequestCashOut(p.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	// Parent denies the trash chore.
	reviewed, err := e.ReviewCashOut(p.ID, rec.ID, map[string]bool{
		model.SnapshotKey(ch1.ID, today): false,
	})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Amount != 300 {
		t.Errorf("reviewed amount = %d, want 300", reviewed.Amount)
	}
	// Review commits nothing.
	if got := len(e.History(p.ID)); got != 0 {
		t.Fatalf("history before approval = %d records, want 0", got)
	}

	final, err := e.ApproveCashOut(p.ID, *reviewed)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if final.Amount != 300 {
		t.Errorf("final amount = %d, want 300", final.Amount)
	}

	if got := len(e.PendingCashOuts(p.ID)); got != 0 {
		t.Errorf("pending after approval = %d, want 0", got)
	}
	history := e.History(p.ID)
	if len(history) != 1 || history[0].ID != rec.ID {
		t.Fatalf("history = %+v, want the approved record", history)
	}

	// Kept entry settles; denied entry reverts to absent, re-completable.
	if got := choreState(t, e, p.ID, ch2.ID, today); got != model.StateCashedOut {
		t.Errorf("kept state = %q, want cashed_out", got)
	}
	if got := choreState(t, e, p.ID, ch1.ID, today); got != "" {
		t.Errorf("denied state = %q, want absent", got)
	}
	if err := e.ToggleCompletion(p.ID, ch1.ID, today, ActorChild); err != nil {
		t.Fatalf("re-toggle denied: %v", err)
	}
	if got := choreState(t, e, p.ID, ch1.ID, today); got != model.StateCompleted {
		t.Errorf("re-toggled denied state = %q, want completed", got)
	}

	// Double approval cannot settle twice.
	if _, err := e.ApproveCashOut(p.ID, *reviewed); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("double approve err = %v, want ErrRecordNotFound", err)
	}
}

// The approval submission only contributes keep/deny flags; entries and
// values come from the stored snapshot. A truncated or doctored submission
// must not freeze completions or write an inflated amount.
func TestApproveCashOutTrustsStoredSnapshotOnly(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Lotho")
	ch1 := mustChore(t, e, p.ID, "Pipeweed", 100, time.Monday)
	ch2 := mustChore(t, e, p.ID, "Ledgers", 300, time.Monday)
	today := model.DateKey(monday)
	e.ToggleCompletion(p.ID, ch1.ID, today, ActorChild)
	e.ToggleCompletion(p.ID, ch2.ID, today, ActorChild)

	rec, err := e.RequestCashOut(p.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	// The submission drops one entry entirely and inflates the other's value.
	doctored := model.EarningsRecord{
		ID: rec.ID,
		Completions: []model.SnapshotEntry{{
			ChoreID:     ch2.ID,
			ChoreName:   "Ledgers",
			ChoreValue:  1000000,
			Date:        today,
			IsCompleted: true,
		}},
	}

	final, err := e.ApproveCashOut(p.ID, doctored)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if final.Amount != 300 {
		t.Errorf("amount = %d, want 300 from the stored snapshot", final.Amount)
	}
	if len(final.Completions) != 2 {
		t.Fatalf("snapshot entries = %d, want the stored 2", len(final.Completions))
	}
	history := e.History(p.ID)
	if len(history) != 1 || history[0].Amount != 300 {
		t.Fatalf("history = %+v, want one 300-cent record", history)
	}

	// The kept entry settles.
	if got := choreState(t, e, p.ID, ch2.ID, today); got != model.StateCashedOut {
		t.Errorf("kept state = %q, want cashed_out", got)
	}

	// The omitted entry counts as denied: it reverts to absent instead of
	// lingering in pending_cash_out with no owning record, and the date is
	// completable again.
	if got := choreState(t, e, p.ID, ch1.ID, today); got != "" {
		t.Fatalf("omitted entry state = %q, want absent", got)
	}
	if err := e.ToggleCompletion(p.ID, ch1.ID, today, ActorChild); err != nil {
		t.Fatalf("re-toggle omitted: %v", err)
	}
	if got := choreState(t, e, p.ID, ch1.ID, today); got != model.StateCompleted {
		t.Errorf("re-toggled state = %q, want completed", got)
	}
}

func TestUpdateHistoryAmount(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Pippin")
	ch := mustChore(t, e, p.ID, "Second breakfast", 100, time.Monday)
	today := model.DateKey(monday)
	e.ToggleCompletion(p.ID, ch.ID, today, ActorChild)

	rec, _ := e.RequestCashOut(p.ID)
	reviewed, _ := e.ReviewCashOut(p.ID, rec.ID, nil)
	if _, err := e.ApproveCashOut(p.ID, *reviewed); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := e.UpdateHistoryAmount(p.ID, rec.ID, 175); err != nil {
		t.Fatalf("update amount: %v", err)
	}
	history := e.History(p.ID)
	if history[0].Amount != 175 {
		t.Errorf("amount = %d, want 175", history[0].Amount)
	}
	// Ledger correction only: completion states untouched.
	if got := choreState(t, e, p.ID, ch.ID, today); got != model.StateCashedOut {
		t.Errorf("state = %q, want cashed_out", got)
	}

	if err := e.UpdateHistoryAmount(p.ID, rec.ID, -5); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount err = %v, want ErrInvalidAmount", err)
	}
	if err := e.UpdateHistoryAmount(p.ID, "missing", 100); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("missing record err = %v, want ErrRecordNotFound", err)
	}
}

// Ledger totals (history + pending) only ever grow, except through explicit
// amount edits.
func TestLedgerTotalsNeverDecrease(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Rosie")
	ch := mustChore(t, e, p.ID, "Bar", 100, time.Monday)
	today := model.DateKey(monday)

	total := func() int {
		sum := 0
		for _, rec := range e.PendingCashOuts(p.ID) {
			sum += rec.Amount
		}
		for _, rec := range e.History(p.ID) {
			sum += rec.Amount
		}
		return sum
	}

	last := total()
	step := func(name string, f func()) {
		f()
		if got := total(); got < last {
			t.Fatalf("after %s: ledger total %d < previous %d", name, got, last)
		} else {
			last = got
		}
	}

	step("toggle", func() { e.ToggleCompletion(p.ID, ch.ID, today, ActorChild) })
	var rec *model.EarningsRecord
	step("request", func() { rec, _ = e.RequestCashOut(p.ID) })
	step("approve", func() {
		reviewed, _ := e.ReviewCashOut(p.ID, rec.ID, nil)
		e.ApproveCashOut(p.ID, *reviewed)
	})
}
