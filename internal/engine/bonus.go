package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// bonusOrderBase keeps synthetic bonus chores sorted after every regular
// chore regardless of category renumbering.
const bonusOrderBase = 10000

// AwardBonus grants amountCents to each target profile by synthesizing a
// bonus chore that is already completed for today, making the money eligible
// for the next cash-out through the ordinary ledger. Each profile also gets a
// one-shot notification carrying the note.
func (e *Engine) AwardBonus(profileIDs []string, amountCents int, note string) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Validate every target before mutating anything.
	for _, id := range profileIDs {
		if e.profileLocked(id) == nil {
			return ErrProfileNotFound
		}
	}

	now := e.clock.Now()
	today := model.DateKey(now)

	for _, profileID := range profileIDs {
		chore := model.Chore{
			ID:       uuid.NewString(),
			Name:     "Bonus",
			Value:    amountCents,
			Weekdays: []time.Weekday{now.Weekday()},
			Category: "bonus",
			Order:    bonusOrderBase + len(e.state.Chores[profileID]),
			Type:     model.ChoreBonus,
			Completions: map[string]model.CompletionState{
				today: model.StateCompleted,
			},
		}
		e.state.Chores[profileID] = append(e.state.Chores[profileID], chore)

		notification := model.BonusNotification{
			ID:        uuid.NewString(),
			Amount:    amountCents,
			Note:      note,
			CreatedAt: now,
		}
		e.state.BonusNotifications[profileID] = append(e.state.BonusNotifications[profileID], notification)

		e.save(profileID, store.ColChores, e.state.Chores[profileID])
		e.save(profileID, store.ColBonusNotifications, e.state.BonusNotifications[profileID])
		e.broadcast("bonus", "awarded", profileID, chore.ID, map[string]any{"amount": amountCents})

		e.logger.Info("bonus awarded", "profile_id", profileID, "amount", amountCents)
	}
	return nil
}

// ConsumeNextBonusNotification pops the oldest unseen bonus notification for
// the profile, or returns nil if the queue is empty. Each notification is
// delivered exactly once.
func (e *Engine) ConsumeNextBonusNotification(profileID string) *model.BonusNotification {
	e.mu.Lock()
	defer e.mu.Unlock()

	queue := e.state.BonusNotifications[profileID]
	if len(queue) == 0 {
		return nil
	}
	next := queue[0]
	e.state.BonusNotifications[profileID] = append([]model.BonusNotification(nil), queue[1:]...)
	e.save(profileID, store.ColBonusNotifications, e.state.BonusNotifications[profileID])
	return &next
}
