package engine

import (
	"errors"
	"time"

	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// AutoCashOutDue runs one automatic-payday pass for the given instant. For
// every automatic-mode profile whose configured weekday and minute match now,
// it requests a cash-out and records today's date as that profile's marker.
//
// The persisted marker is the idempotency guarantee: ticks landing repeatedly
// in the matching minute, or for the rest of the day, fire at most once per
// profile per calendar day, and a restart mid-day does not re-fire. The
// marker is set even when there was nothing to cash out. A day on which no
// tick lands inside the matching minute (app closed) is skipped for good;
// there is no catch-up.
func (e *Engine) AutoCashOutDue(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := model.DateKey(now)
	weekday := now.Weekday()
	minute := now.Format("15:04")

	for i := range e.state.Profiles {
		p := &e.state.Profiles[i]
		cfg := p.PayDay
		if cfg.Mode != model.PayDayAutomatic || cfg.Day == nil {
			continue
		}
		if *cfg.Day != weekday || cfg.Time != minute {
			continue
		}
		if e.state.LastAutoCashOut[p.ID] == today {
			continue
		}

		if _, err := e.requestCashOutLocked(p.ID); err != nil && !errors.Is(err, ErrNothingToCashOut) {
			e.logger.Error("automatic cash-out", "profile_id", p.ID, "error", err)
			continue
		}

		e.state.LastAutoCashOut[p.ID] = today
		e.save("", store.ColLastAutoCashOut, e.state.LastAutoCashOut)
	}
}
