package model

import "time"

// CompletionState is the per-date lifecycle of a chore's completion. Absence
// of a date key means "not completed". Normal flow only moves forward:
// completed -> pending_cash_out -> cashed_out. The single allowed backward
// edge is a same-day un-toggle from completed back to absent.
type CompletionState string

const (
	StateCompleted      CompletionState = "completed"
	StatePendingCashOut CompletionState = "pending_cash_out"
	StateCashedOut      CompletionState = "cashed_out"
)

// Settled reports whether the state has advanced past the point where the
// child may still change it.
func (s CompletionState) Settled() bool {
	return s == StatePendingCashOut || s == StateCashedOut
}

type ChoreType string

const (
	ChoreRegular ChoreType = "regular"
	// ChoreBonus marks a synthetic single-occurrence chore created by a
	// bonus award. Bonus chores are never toggled and never edited.
	ChoreBonus ChoreType = "bonus"
)

type Chore struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Value is in integer cents.
	Value    int            `json:"value"`
	Weekdays []time.Weekday `json:"weekdays"`
	// OneTimeDate, when set (YYYY-MM-DD), overrides the weekday schedule.
	OneTimeDate string    `json:"one_time_date,omitempty"`
	Category    string    `json:"category"`
	Order       int       `json:"order"`
	Type        ChoreType `json:"type"`
	// Completions is keyed by local date (YYYY-MM-DD).
	Completions map[string]CompletionState `json:"completions"`
}

// AssignedOn reports whether the chore is scheduled for the given date.
func (c *Chore) AssignedOn(date string, weekday time.Weekday) bool {
	if c.OneTimeDate != "" {
		return c.OneTimeDate == date
	}
	for _, d := range c.Weekdays {
		if d == weekday {
			return true
		}
	}
	return false
}

// State returns the completion state for a date, or "" if absent.
func (c *Chore) State(date string) CompletionState {
	return c.Completions[date]
}
