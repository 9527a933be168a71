package model

type RecordType string

const (
	RecordChore RecordType = "chore"
	RecordBonus RecordType = "bonus"
)

// SnapshotEntry is a point-in-time copy of one (chore, date) completion that
// was rolled into a cash-out request. It is a copy, not a reference: deleting
// or editing the source chore later never changes a snapshot.
type SnapshotEntry struct {
	ChoreID     string `json:"chore_id"`
	ChoreName   string `json:"chore_name"`
	ChoreValue  int    `json:"chore_value"`
	Date        string `json:"date"`
	IsCompleted bool   `json:"is_completed"`
}

// EarningsRecord is one cash-out event. It lives in pending_cash_outs while
// awaiting parent review and moves to earnings_history on approval, after
// which it is immutable except for explicit amount corrections.
type EarningsRecord struct {
	ID          string          `json:"id"`
	RequestDate string          `json:"request_date"`
	Amount      int             `json:"amount"`
	Type        RecordType      `json:"type"`
	Completions []SnapshotEntry `json:"completions_snapshot,omitempty"`
}

// SnapshotKey identifies a snapshot entry within a record's review edits.
func SnapshotKey(choreID, date string) string {
	return choreID + "|" + date
}
