package model

// PastChoreApproval is a queued request for the parent to retroactively
// approve a completion the child claimed for a prior day. The chore itself is
// untouched until the parent approves.
type PastChoreApproval struct {
	ID        string `json:"id"`
	ChoreID   string `json:"chore_id"`
	ChoreName string `json:"chore_name"`
	Date      string `json:"date"`
}

// PastApprovalID derives the stable queue id for a (chore, date) claim, so
// re-toggling the same date never produces duplicate entries.
func PastApprovalID(choreID, date string) string {
	return choreID + "-" + date
}
