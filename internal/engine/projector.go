package engine

import "github.com/dukerupert/farthing/internal/model"

// ProjectPotentialEarnings returns what the child would have in hand by
// payday if every remaining assigned chore through that day were completed:
// the already-earned total plus the value of each unclaimed assignment from
// today through payday inclusive.
//
// A configured payday matching today's weekday projects through today only
// (zero-day horizon), not a week ahead. Profiles without a usable payday
// (opted out, anytime mode, or no configured day) project to 0.
//
// This is a pure read: no state is mutated, safe to call on every render.
func (e *Engine) ProjectPotentialEarnings(profileID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profileLocked(profileID)
	if p == nil {
		return 0, ErrProfileNotFound
	}
	if !p.ShowPotentialEarnings || p.PayDay.Mode == model.PayDayAnytime || p.PayDay.Day == nil {
		return 0, nil
	}

	now := e.clock.Now()
	chores := e.state.Chores[profileID]

	earned := e.currentEarningsLocked(profileID)

	days := (int(*p.PayDay.Day) - int(now.Weekday()) + 7) % 7
	future := 0
	for offset := 0; offset <= days; offset++ {
		day := now.AddDate(0, 0, offset)
		date := model.DateKey(day)
		weekday := day.Weekday()
		for i := range chores {
			ch := &chores[i]
			if !ch.AssignedOn(date, weekday) {
				continue
			}
			// Any existing state means the date is already counted in the
			// earned total or already settled.
			if ch.State(date) != "" {
				continue
			}
			future += ch.Value
		}
	}

	return earned + future, nil
}
