package model

import "time"

// BonusNotification is a one-shot celebratory message queued for a child.
// It is consumed (removed) the first time the profile is shown it.
type BonusNotification struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
