package store

import "github.com/dukerupert/farthing/internal/model"

// Collection names. Singleton collections (profiles, parent settings, the
// automatic cash-out markers) live in the row with an empty profile id; the
// rest are stored one row per profile.
const (
	ColProfiles           = "profiles"
	ColChores             = "chores"
	ColPendingCashOuts    = "pending_cash_outs"
	ColEarningsHistory    = "earnings_history"
	ColPastApprovals      = "past_chore_approvals"
	ColBonusNotifications = "bonus_notifications"
	ColLastAutoCashOut    = "last_auto_cash_out"
	ColParentSettings     = "parent_settings"
)

// State is the full in-memory household state. It is the source of truth for
// the session; collection writes behind it are best-effort.
type State struct {
	Profiles           []model.Profile
	Chores             map[string][]model.Chore
	PendingCashOuts    map[string][]model.EarningsRecord
	EarningsHistory    map[string][]model.EarningsRecord
	PastApprovals      map[string][]model.PastChoreApproval
	BonusNotifications map[string][]model.BonusNotification
	LastAutoCashOut    map[string]string
	ParentSettings     model.ParentSettings
}

// NewState returns an empty State with all maps initialized.
func NewState() *State {
	return &State{
		Chores:             make(map[string][]model.Chore),
		PendingCashOuts:    make(map[string][]model.EarningsRecord),
		EarningsHistory:    make(map[string][]model.EarningsRecord),
		PastApprovals:      make(map[string][]model.PastChoreApproval),
		BonusNotifications: make(map[string][]model.BonusNotification),
		LastAutoCashOut:    make(map[string]string),
	}
}
