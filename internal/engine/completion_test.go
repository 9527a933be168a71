package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/farthing/internal/model"
)

func TestToggleCompletionToday(t *testing.T) {
	e, _, _, bus := newTestEngine(t)
	p := mustProfile(t, e, "Frodo")
	ch := mustChore(t, e, p.ID, "Dishes", 100, time.Monday)
	today := model.DateKey(monday)

	if err := e.ToggleCompletion(p.ID, ch.ID, today, ActorChild); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := choreState(t, e, p.ID, ch.ID, today); got != model.StateCompleted {
		t.Fatalf("state = %q, want completed", got)
	}
	if got := bus.count("chore_completed_today"); got != 1 {
		t.Errorf("completed_today events = %d, want 1", got)
	}

	// Un-toggle returns to absent and fires no event.
	if err := e.ToggleCompletion(p.ID, ch.ID, today, ActorChild); err != nil {
		t.Fatalf("un-toggle: %v", err)
	}
	if got := choreState(t, e, p.ID, ch.ID, today); got != "" {
		t.Fatalf("state after un-toggle = %q, want absent", got)
	}
	if got := bus.count("chore_completed_today"); got != 1 {
		t.Errorf("completed_today events after undo = %d, want 1", got)
	}
}

func TestToggleSettledDateIsNoOp(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Sam")
	ch := mustChore(t, e, p.ID, "Garden", 200, time.Monday)
	today := model.DateKey(monday)

	if err := e.ToggleCompletion(p.ID, ch.ID, today, ActorChild); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := e.RequestCashOut(p.ID); err != nil {
		t.Fatalf("request cash out: %v", err)
	}
	if got := choreState(t, e, p.ID, ch.ID, today); got != model.StatePendingCashOut {
		t.Fatalf("state = %q, want pending_cash_out", got)
	}

	for _, actor := range []Actor{ActorChild, ActorParent} {
		if err := e.ToggleCompletion(p.ID, ch.ID, today, actor); err != nil {
			t.Fatalf("toggle as %s: %v", actor, err)
		}
		if got := choreState(t, e, p.ID, ch.ID, today); got != model.StatePendingCashOut {
			t.Fatalf("state after %s toggle = %q, want pending_cash_out", actor, got)
		}
	}
}

func TestChildTogglePastDateQueuesApproval(t *testing.T) {
	e, _, _, bus := newTestEngine(t)
	p := mustProfile(t, e, "Merry")
	ch := mustChore(t, e, p.ID, "Trash", 150, time.Sunday)
	yesterday := model.DateKey(monday.AddDate(0, 0, -1))

	if err := e.ToggleCompletion(p.ID, ch.ID, yesterday, ActorChild); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// Chore untouched; claim queued instead.
	if got := choreState(t, e, p.ID, ch.ID, yesterday); got != "" {
		t.Fatalf("state = %q, want absent", got)
	}
	queue := e.PastApprovals(p.ID)
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}
	want := model.PastApprovalID(ch.ID, yesterday)
	if queue[0].ID != want {
		t.Errorf("entry id = %q, want %q", queue[0].ID, want)
	}
	if queue[0].ChoreName != "Trash" {
		t.Errorf("entry chore name = %q, want Trash", queue[0].ChoreName)
	}
	if got := bus.count("chore_completed_today"); got != 0 {
		t.Errorf("completed_today events = %d, want 0", got)
	}

	// Re-toggling the same past date does not duplicate the entry.
	if err := e.ToggleCompletion(p.ID, ch.ID, yesterday, ActorChild); err != nil {
		t.Fatalf("re-toggle: %v", err)
	}
	if got := len(e.PastApprovals(p.ID)); got != 1 {
		t.Fatalf("queue length after re-toggle = %d, want 1", got)
	}
}

func TestParentTogglePastDateCompletesDirectly(t *testing.T) {
	e, _, _, bus := newTestEngine(t)
	p := mustProfile(t, e, "Pippin")
	ch := mustChore(t, e, p.ID, "Dusting", 75, time.Sunday)
	yesterday := model.DateKey(monday.AddDate(0, 0, -1))

	if err := e.ToggleCompletion(p.ID, ch.ID, yesterday, ActorParent); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := choreState(t, e, p.ID, ch.ID, yesterday); got != model.StateCompleted {
		t.Fatalf("state = %q, want completed", got)
	}
	if got := len(e.PastApprovals(p.ID)); got != 0 {
		t.Errorf("queue length = %d, want 0", got)
	}
	// Backfilling a past date never fires the today event.
	if got := bus.count("chore_completed_today"); got != 0 {
		t.Errorf("completed_today events = %d, want 0", got)
	}
}

func TestToggleBonusChoreIsNoOp(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Bilbo")
	if err := e.AwardBonus([]string{p.ID}, 500, "found the ring"); err != nil {
		t.Fatalf("award bonus: %v", err)
	}
	chores, err := e.Chores(p.ID)
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	bonus := chores[0]
	today := model.DateKey(monday)

	if err := e.ToggleCompletion(p.ID, bonus.ID, today, ActorChild); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := choreState(t, e, p.ID, bonus.ID, today); got != model.StateCompleted {
		t.Fatalf("bonus state = %q, want completed", got)
	}
}

func TestToggleValidation(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Rosie")
	ch := mustChore(t, e, p.ID, "Sweeping", 50, time.Monday)

	if err := e.ToggleCompletion(p.ID, ch.ID, "03/04/2024", ActorChild); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date err = %v, want ErrInvalidDate", err)
	}
	if err := e.ToggleCompletion(p.ID, "nope", model.DateKey(monday), ActorChild); !errors.Is(err, ErrChoreNotFound) {
		t.Errorf("unknown chore err = %v, want ErrChoreNotFound", err)
	}
}
