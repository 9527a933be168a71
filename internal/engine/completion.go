package engine

import (
	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// ToggleCompletion flips a chore's completion for the given date between
// absent and completed. Settled dates (pending_cash_out, cashed_out) are
// immutable here; repeated taps on them are harmless no-ops. A child toggling
// a date before today does not complete it; the claim is queued for parent
// approval instead.
func (e *Engine) ToggleCompletion(profileID, choreID, date string, actor Actor) error {
	if !model.ValidDateKey(date) {
		return ErrInvalidDate
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ch := e.choreLocked(profileID, choreID)
	if ch == nil {
		return ErrChoreNotFound
	}
	if ch.Type == model.ChoreBonus {
		// Bonuses are born completed and never toggled.
		return nil
	}

	state := ch.State(date)
	if state.Settled() {
		return nil
	}

	today := e.today()
	if date < today && actor == ActorChild && state == "" {
		e.enqueuePastApprovalLocked(profileID, ch, date)
		return nil
	}

	if state == model.StateCompleted {
		delete(ch.Completions, date)
	} else {
		if ch.Completions == nil {
			ch.Completions = make(map[string]model.CompletionState)
		}
		ch.Completions[date] = model.StateCompleted
		if date == today {
			// Fires only on the absent->completed edge for today's date, so
			// "all chores done" style listeners never see undo or backfill.
			e.broadcast("chore", "completed_today", profileID, ch.ID, map[string]any{"date": date})
		}
	}

	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	return nil
}

// enqueuePastApprovalLocked queues a backdated completion claim. The queue id
// is derived from (chore, date), so re-toggling the same day replaces nothing
// and creates no duplicates.
func (e *Engine) enqueuePastApprovalLocked(profileID string, ch *model.Chore, date string) {
	id := model.PastApprovalID(ch.ID, date)
	for _, entry := range e.state.PastApprovals[profileID] {
		if entry.ID == id {
			return
		}
	}
	entry := model.PastChoreApproval{
		ID:        id,
		ChoreID:   ch.ID,
		ChoreName: ch.Name,
		Date:      date,
	}
	e.state.PastApprovals[profileID] = append(e.state.PastApprovals[profileID], entry)
	e.save(profileID, store.ColPastApprovals, e.state.PastApprovals[profileID])
	e.broadcast("past_approval", "created", profileID, id, map[string]any{"date": date})
}
