package engine

import (
	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// PastApprovals returns the profile's pending backdated-completion claims in
// FIFO order.
func (e *Engine) PastApprovals(profileID string) []model.PastChoreApproval {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.state.PastApprovals[profileID]
	out := make([]model.PastChoreApproval, len(entries))
	copy(out, entries)
	return out
}

// ApprovePastChore grants a queued claim: the chore's completion for that
// date becomes completed and the entry is removed. An id that is no longer
// queued is a no-op (double-click safety).
func (e *Engine) ApprovePastChore(profileID, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.approveOneLocked(profileID, id) {
		e.save(profileID, store.ColChores, e.state.Chores[profileID])
		e.save(profileID, store.ColPastApprovals, e.state.PastApprovals[profileID])
	}
	return nil
}

// DismissPastChore discards a queued claim without touching the chore. The
// child can re-toggle the same date, which simply queues a fresh claim.
func (e *Engine) DismissPastChore(profileID, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removeApprovalLocked(profileID, id) {
		e.save(profileID, store.ColPastApprovals, e.state.PastApprovals[profileID])
		e.broadcast("past_approval", "dismissed", profileID, id, nil)
	}
	return nil
}

// ApproveAllPastChores grants every queued claim in one pass.
func (e *Engine) ApproveAllPastChores(profileID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	queue := e.state.PastApprovals[profileID]
	if len(queue) == 0 {
		return nil
	}
	ids := make([]string, len(queue))
	for i, entry := range queue {
		ids[i] = entry.ID
	}
	for _, id := range ids {
		e.approveOneLocked(profileID, id)
	}
	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	e.save(profileID, store.ColPastApprovals, e.state.PastApprovals[profileID])
	return nil
}

// DismissAllPastChores discards every queued claim.
func (e *Engine) DismissAllPastChores(profileID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.state.PastApprovals[profileID]) == 0 {
		return nil
	}
	e.state.PastApprovals[profileID] = nil
	e.save(profileID, store.ColPastApprovals, e.state.PastApprovals[profileID])
	e.broadcast("past_approval", "dismissed_all", profileID, "", nil)
	return nil
}

func (e *Engine) approveOneLocked(profileID, id string) bool {
	var entry *model.PastChoreApproval
	for i := range e.state.PastApprovals[profileID] {
		if e.state.PastApprovals[profileID][i].ID == id {
			entry = &e.state.PastApprovals[profileID][i]
			break
		}
	}
	if entry == nil {
		return false
	}

	// The chore may have been deleted since the claim was queued; the entry
	// is still consumed.
	if ch := e.choreLocked(profileID, entry.ChoreID); ch != nil && ch.State(entry.Date) == "" {
		if ch.Completions == nil {
			ch.Completions = make(map[string]model.CompletionState)
		}
		ch.Completions[entry.Date] = model.StateCompleted
	}

	date := entry.Date
	e.removeApprovalLocked(profileID, id)
	e.broadcast("past_approval", "approved", profileID, id, map[string]any{"date": date})
	return true
}

func (e *Engine) removeApprovalLocked(profileID, id string) bool {
	queue := e.state.PastApprovals[profileID]
	for i, entry := range queue {
		if entry.ID == id {
			e.state.PastApprovals[profileID] = append(queue[:i:i], queue[i+1:]...)
			return true
		}
	}
	return false
}
