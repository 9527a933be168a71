package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// ChoreUpdate carries optional field changes; nil fields are untouched.
type ChoreUpdate struct {
	Name        *string
	Value       *int
	Weekdays    *[]time.Weekday
	OneTimeDate *string
	Category    *string
}

// Chores returns the profile's chores sorted by category then order.
func (e *Engine) Chores(profileID string) ([]model.Chore, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profileLocked(profileID) == nil {
		return nil, ErrProfileNotFound
	}

	chores := e.state.Chores[profileID]
	out := make([]model.Chore, len(chores))
	for i, ch := range chores {
		out[i] = ch
		out[i].Completions = make(map[string]model.CompletionState, len(ch.Completions))
		for k, v := range ch.Completions {
			out[i].Completions[k] = v
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

// CreateChore adds a regular chore at the end of its category.
func (e *Engine) CreateChore(profileID, name string, value int, weekdays []time.Weekday, oneTimeDate, category string) (*model.Chore, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if value < 0 {
		return nil, ErrInvalidAmount
	}
	if oneTimeDate != "" && !model.ValidDateKey(oneTimeDate) {
		return nil, ErrInvalidDate
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profileLocked(profileID) == nil {
		return nil, ErrProfileNotFound
	}

	order := 0
	for _, ch := range e.state.Chores[profileID] {
		if ch.Category == category && ch.Type != model.ChoreBonus {
			order++
		}
	}

	ch := model.Chore{
		ID:          uuid.NewString(),
		Name:        name,
		Value:       value,
		Weekdays:    weekdays,
		OneTimeDate: oneTimeDate,
		Category:    category,
		Order:       order,
		Type:        model.ChoreRegular,
		Completions: make(map[string]model.CompletionState),
	}
	e.state.Chores[profileID] = append(e.state.Chores[profileID], ch)
	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	e.broadcast("chore", "created", profileID, ch.ID, nil)
	return &ch, nil
}

// UpdateChore applies the given field changes. Bonus chores are synthetic and
// immutable.
func (e *Engine) UpdateChore(profileID, choreID string, upd ChoreUpdate) (*model.Chore, error) {
	if upd.Name != nil && *upd.Name == "" {
		return nil, ErrNameRequired
	}
	if upd.Value != nil && *upd.Value < 0 {
		return nil, ErrInvalidAmount
	}
	if upd.OneTimeDate != nil && *upd.OneTimeDate != "" && !model.ValidDateKey(*upd.OneTimeDate) {
		return nil, ErrInvalidDate
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ch := e.choreLocked(profileID, choreID)
	if ch == nil {
		return nil, ErrChoreNotFound
	}
	if ch.Type == model.ChoreBonus {
		return nil, ErrBonusChore
	}

	oldCategory := ch.Category
	if upd.Name != nil {
		ch.Name = *upd.Name
	}
	if upd.Value != nil {
		ch.Value = *upd.Value
	}
	if upd.Weekdays != nil {
		ch.Weekdays = *upd.Weekdays
	}
	if upd.OneTimeDate != nil {
		ch.OneTimeDate = *upd.OneTimeDate
	}
	if upd.Category != nil && *upd.Category != oldCategory {
		ch.Category = *upd.Category
		e.renumberLocked(profileID, oldCategory)
		e.renumberLocked(profileID, ch.Category)
	}

	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	e.broadcast("chore", "updated", profileID, choreID, nil)
	out := *ch
	return &out, nil
}

// DeleteChore removes a chore, drops its queued past-chore approvals, and
// closes the order gap in its category. Ledger snapshots are copies and are
// unaffected.
func (e *Engine) DeleteChore(profileID, choreID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	chores := e.state.Chores[profileID]
	idx := -1
	for i := range chores {
		if chores[i].ID == choreID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrChoreNotFound
	}
	category := chores[idx].Category

	e.state.Chores[profileID] = append(chores[:idx:idx], chores[idx+1:]...)
	e.renumberLocked(profileID, category)

	queue := e.state.PastApprovals[profileID]
	kept := queue[:0]
	for _, entry := range queue {
		if entry.ChoreID != choreID {
			kept = append(kept, entry)
		}
	}
	if len(kept) != len(queue) {
		e.state.PastApprovals[profileID] = kept
		e.save(profileID, store.ColPastApprovals, e.state.PastApprovals[profileID])
	}

	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	e.broadcast("chore", "deleted", profileID, choreID, nil)
	return nil
}

// ReorderChores assigns contiguous order values within a category following
// the given id sequence. Ids missing from the sequence keep their relative
// position after the listed ones.
func (e *Engine) ReorderChores(profileID, category string, ids []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profileLocked(profileID) == nil {
		return ErrProfileNotFound
	}

	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}

	chores := e.state.Chores[profileID]
	var members []*model.Chore
	for i := range chores {
		if chores[i].Category == category && chores[i].Type != model.ChoreBonus {
			members = append(members, &chores[i])
		}
	}
	sort.SliceStable(members, func(i, j int) bool {
		ri, iOK := rank[members[i].ID]
		rj, jOK := rank[members[j].ID]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return members[i].Order < members[j].Order
		}
	})
	for i, ch := range members {
		ch.Order = i
	}

	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	e.broadcast("chore", "reordered", profileID, "", map[string]any{"category": category})
	return nil
}

// renumberLocked restores contiguous 0..n-1 order values within a category.
func (e *Engine) renumberLocked(profileID, category string) {
	chores := e.state.Chores[profileID]
	var members []*model.Chore
	for i := range chores {
		if chores[i].Category == category && chores[i].Type != model.ChoreBonus {
			members = append(members, &chores[i])
		}
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].Order < members[j].Order })
	for i, ch := range members {
		ch.Order = i
	}
}
