package engine

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// CurrentEarnings returns the profile's earned-but-unsettled total: the sum
// of values over every (chore, date) currently in the completed state.
func (e *Engine) CurrentEarnings(profileID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profileLocked(profileID) == nil {
		return 0, ErrProfileNotFound
	}
	return e.currentEarningsLocked(profileID), nil
}

func (e *Engine) currentEarningsLocked(profileID string) int {
	total := 0
	for _, ch := range e.state.Chores[profileID] {
		for _, state := range ch.Completions {
			if state == model.StateCompleted {
				total += ch.Value
			}
		}
	}
	return total
}

// PendingCashOuts returns the records awaiting parent review.
func (e *Engine) PendingCashOuts(profileID string) []model.EarningsRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyRecords(e.state.PendingCashOuts[profileID])
}

// History returns the approved, permanent ledger.
func (e *Engine) History(profileID string) []model.EarningsRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyRecords(e.state.EarningsHistory[profileID])
}

// RequestCashOut rolls every completed (chore, date) into a new pending
// earnings record and advances those completions to pending_cash_out. This is
// the only path past completed, and it is all-or-nothing: a rejected request
// leaves no state touched.
func (e *Engine) RequestCashOut(profileID string) (*model.EarningsRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requestCashOutLocked(profileID)
}

func (e *Engine) requestCashOutLocked(profileID string) (*model.EarningsRecord, error) {
	if e.profileLocked(profileID) == nil {
		return nil, ErrProfileNotFound
	}

	amount := e.currentEarningsLocked(profileID)
	if amount <= 0 {
		return nil, ErrNothingToCashOut
	}

	chores := e.state.Chores[profileID]
	var snapshot []model.SnapshotEntry
	bonusOnly := true
	for i := range chores {
		ch := &chores[i]
		var dates []string
		for date, state := range ch.Completions {
			if state == model.StateCompleted {
				dates = append(dates, date)
			}
		}
		if len(dates) > 0 && ch.Type != model.ChoreBonus {
			bonusOnly = false
		}
		sort.Strings(dates)
		for _, date := range dates {
			snapshot = append(snapshot, model.SnapshotEntry{
				ChoreID:     ch.ID,
				ChoreName:   ch.Name,
				ChoreValue:  ch.Value,
				Date:        date,
				IsCompleted: true,
			})
		}
	}

	// A cash-out of nothing but bonus awards is recorded as a bonus payout.
	recordType := model.RecordChore
	if bonusOnly {
		recordType = model.RecordBonus
	}

	record := model.EarningsRecord{
		ID:          uuid.NewString(),
		RequestDate: e.today(),
		Amount:      amount,
		Type:        recordType,
		Completions: snapshot,
	}

	for _, entry := range snapshot {
		if ch := e.choreLocked(profileID, entry.ChoreID); ch != nil {
			ch.Completions[entry.Date] = model.StatePendingCashOut
		}
	}
	e.state.PendingCashOuts[profileID] = append(e.state.PendingCashOuts[profileID], record)

	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	e.save(profileID, store.ColPendingCashOuts, e.state.PendingCashOuts[profileID])
	e.broadcast("cash_out", "requested", profileID, record.ID, map[string]any{"amount": amount})

	e.logger.Info("cash-out requested", "profile_id", profileID, "record_id", record.ID, "amount", amount)
	return &record, nil
}

// ReviewCashOut applies the parent's per-entry keep/deny flags to a pending
// record and recomputes its amount. Nothing is committed; the returned record
// is what ApproveCashOut finalizes. Flags are keyed by model.SnapshotKey;
// entries absent from flags keep their current IsCompleted.
func (e *Engine) ReviewCashOut(profileID, recordID string, flags map[string]bool) (*model.EarningsRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := findRecord(e.state.PendingCashOuts[profileID], recordID)
	if rec == nil {
		return nil, ErrRecordNotFound
	}

	reviewed := cloneRecord(*rec)
	for i := range reviewed.Completions {
		entry := &reviewed.Completions[i]
		if keep, ok := flags[model.SnapshotKey(entry.ChoreID, entry.Date)]; ok {
			entry.IsCompleted = keep
		}
	}
	reviewed.Amount = snapshotAmount(reviewed.Completions)
	return &reviewed, nil
}

// ApproveCashOut finalizes a review: the stored pending record moves to
// history with the submitted keep/deny flags applied. Only the flags are
// taken from the submission; snapshot entries and values come from the stored
// record, and an entry the submission omits counts as denied. Kept entries
// advance pending_cash_out -> cashed_out; denied entries revert to absent;
// the money is forfeited and the date becomes completable again. Approving a
// record that is no longer pending returns ErrRecordNotFound so a
// double-click cannot settle twice.
func (e *Engine) ApproveCashOut(profileID string, reviewed model.EarningsRecord) (*model.EarningsRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pending := e.state.PendingCashOuts[profileID]
	idx := -1
	for i := range pending {
		if pending[i].ID == reviewed.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrRecordNotFound
	}

	flags := make(map[string]bool, len(reviewed.Completions))
	for _, entry := range reviewed.Completions {
		flags[model.SnapshotKey(entry.ChoreID, entry.Date)] = entry.IsCompleted
	}

	final := cloneRecord(pending[idx])
	for i := range final.Completions {
		entry := &final.Completions[i]
		entry.IsCompleted = flags[model.SnapshotKey(entry.ChoreID, entry.Date)]
	}
	final.Amount = snapshotAmount(final.Completions)

	for _, entry := range final.Completions {
		ch := e.choreLocked(profileID, entry.ChoreID)
		if ch == nil || ch.State(entry.Date) != model.StatePendingCashOut {
			continue
		}
		if entry.IsCompleted {
			ch.Completions[entry.Date] = model.StateCashedOut
		} else {
			delete(ch.Completions, entry.Date)
		}
	}

	e.state.PendingCashOuts[profileID] = append(pending[:idx:idx], pending[idx+1:]...)
	e.state.EarningsHistory[profileID] = append(e.state.EarningsHistory[profileID], final)

	e.save(profileID, store.ColChores, e.state.Chores[profileID])
	e.save(profileID, store.ColPendingCashOuts, e.state.PendingCashOuts[profileID])
	e.save(profileID, store.ColEarningsHistory, e.state.EarningsHistory[profileID])
	e.broadcast("cash_out", "approved", profileID, final.ID, map[string]any{"amount": final.Amount})

	e.logger.Info("cash-out approved", "profile_id", profileID, "record_id", final.ID, "amount", final.Amount)
	return &final, nil
}

// UpdateHistoryAmount edits an approved record's amount in place. This is a
// deliberate ledger override; completion states are not touched.
func (e *Engine) UpdateHistoryAmount(profileID, recordID string, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec := findRecord(e.state.EarningsHistory[profileID], recordID)
	if rec == nil {
		return ErrRecordNotFound
	}

	old := rec.Amount
	rec.Amount = amount
	e.save(profileID, store.ColEarningsHistory, e.state.EarningsHistory[profileID])
	e.broadcast("history", "amount_updated", profileID, recordID, map[string]any{"amount": amount})

	e.logger.Info("history amount edited", "profile_id", profileID, "record_id", recordID, "from", old, "to", amount)
	return nil
}

func findRecord(records []model.EarningsRecord, id string) *model.EarningsRecord {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

func snapshotAmount(entries []model.SnapshotEntry) int {
	total := 0
	for _, entry := range entries {
		if entry.IsCompleted {
			total += entry.ChoreValue
		}
	}
	return total
}

func cloneRecord(rec model.EarningsRecord) model.EarningsRecord {
	out := rec
	out.Completions = make([]model.SnapshotEntry, len(rec.Completions))
	copy(out.Completions, rec.Completions)
	return out
}

func copyRecords(records []model.EarningsRecord) []model.EarningsRecord {
	out := make([]model.EarningsRecord, len(records))
	for i, rec := range records {
		out[i] = cloneRecord(rec)
	}
	return out
}
