package engine

import (
	"errors"
	"testing"
	"time"
)

func orderOf(t *testing.T, e *Engine, profileID string, category string) []string {
	t.Helper()
	chores, err := e.Chores(profileID)
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	var names []string
	for _, ch := range chores {
		if ch.Category == category {
			names = append(names, ch.Name)
		}
	}
	return names
}

func TestChoreOrderContiguity(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Frodo")
	mustChore(t, e, p.ID, "Dishes", 100, time.Monday)
	mid := mustChore(t, e, p.ID, "Sweeping", 100, time.Monday)
	mustChore(t, e, p.ID, "Trash", 100, time.Monday)

	chores, _ := e.Chores(p.ID)
	for i, ch := range chores {
		if ch.Order != i {
			t.Errorf("chore %q order = %d, want %d", ch.Name, ch.Order, i)
		}
	}

	// Deleting the middle chore closes the gap.
	if err := e.DeleteChore(p.ID, mid.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	chores, _ = e.Chores(p.ID)
	for i, ch := range chores {
		if ch.Order != i {
			t.Errorf("after delete, chore %q order = %d, want %d", ch.Name, ch.Order, i)
		}
	}
}

func TestReorderChores(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Sam")
	a := mustChore(t, e, p.ID, "A", 100, time.Monday)
	b := mustChore(t, e, p.ID, "B", 100, time.Monday)
	c := mustChore(t, e, p.ID, "C", 100, time.Monday)

	if err := e.ReorderChores(p.ID, "general", []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got := orderOf(t, e, p.ID, "general")
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestUpdateChore(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Merry")
	ch := mustChore(t, e, p.ID, "Trash", 100, time.Monday)

	newName := "Compost"
	newValue := 225
	updated, err := e.UpdateChore(p.ID, ch.ID, ChoreUpdate{Name: &newName, Value: &newValue})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Compost" || updated.Value != 225 {
		t.Errorf("updated = %+v", updated)
	}

	neg := -1
	if _, err := e.UpdateChore(p.ID, ch.ID, ChoreUpdate{Value: &neg}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative value err = %v, want ErrInvalidAmount", err)
	}
}

func TestUpdateBonusChoreRejected(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Pippin")
	if err := e.AwardBonus([]string{p.ID}, 300, ""); err != nil {
		t.Fatalf("award: %v", err)
	}
	chores, _ := e.Chores(p.ID)
	name := "Not a bonus anymore"
	if _, err := e.UpdateChore(p.ID, chores[0].ID, ChoreUpdate{Name: &name}); !errors.Is(err, ErrBonusChore) {
		t.Errorf("err = %v, want ErrBonusChore", err)
	}
}

func TestDeleteChoreKeepsLedgerSnapshots(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	p := mustProfile(t, e, "Bilbo")
	ch := mustChore(t, e, p.ID, "Maps", 400, time.Monday)
	e.ToggleCompletion(p.ID, ch.ID, "2024-03-04", ActorChild)
	rec, err := e.RequestCashOut(p.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if err := e.DeleteChore(p.ID, ch.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The snapshot is a copy; the pending record still reviews and approves.
	reviewed, err := e.ReviewCashOut(p.ID, rec.ID, nil)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Amount != 400 {
		t.Errorf("amount = %d, want 400", reviewed.Amount)
	}
	final, err := e.ApproveCashOut(p.ID, *reviewed)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if final.Completions[0].ChoreName != "Maps" {
		t.Errorf("snapshot chore name = %q, want Maps", final.Completions[0].ChoreName)
	}
}
