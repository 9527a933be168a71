package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/farthing/internal/model"
	"github.com/dukerupert/farthing/internal/store"
)

// ProfileUpdate carries optional field changes; nil fields are untouched.
type ProfileUpdate struct {
	Name                  *string
	ImageURL              *string
	Theme                 *string
	HasSeenThemePrompt    *bool
	ShowPotentialEarnings *bool
	PayDay                *model.PayDayConfig
}

// Profiles returns all child profiles in creation order.
func (e *Engine) Profiles() []model.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.Profile, len(e.state.Profiles))
	copy(out, e.state.Profiles)
	return out
}

// Profile returns a copy of one profile.
func (e *Engine) Profile(id string) (*model.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profileLocked(id)
	if p == nil {
		return nil, ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

// CreateProfile adds a child profile with anytime payday and potential
// earnings shown, the defaults a fresh profile starts from.
func (e *Engine) CreateProfile(name string) (*model.Profile, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p := model.Profile{
		ID:                    uuid.NewString(),
		Name:                  name,
		PayDay:                model.PayDayConfig{Mode: model.PayDayAnytime},
		ShowPotentialEarnings: true,
		CreatedAt:             e.clock.Now(),
	}
	e.state.Profiles = append(e.state.Profiles, p)
	e.save("", store.ColProfiles, e.state.Profiles)
	e.broadcast("profile", "created", p.ID, p.ID, nil)
	return &p, nil
}

// UpdateProfile applies the given field changes.
func (e *Engine) UpdateProfile(id string, upd ProfileUpdate) (*model.Profile, error) {
	if upd.PayDay != nil {
		if err := validatePayDay(*upd.PayDay); err != nil {
			return nil, err
		}
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, ErrNameRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profileLocked(id)
	if p == nil {
		return nil, ErrProfileNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	if upd.Theme != nil {
		p.Theme = *upd.Theme
	}
	if upd.HasSeenThemePrompt != nil {
		p.HasSeenThemePrompt = *upd.HasSeenThemePrompt
	}
	if upd.ShowPotentialEarnings != nil {
		p.ShowPotentialEarnings = *upd.ShowPotentialEarnings
	}
	if upd.PayDay != nil {
		p.PayDay = *upd.PayDay
	}

	e.save("", store.ColProfiles, e.state.Profiles)
	e.broadcast("profile", "updated", id, id, nil)
	out := *p
	return &out, nil
}

// DeleteProfile removes a profile and cascades every collection keyed by it:
// chores, pending cash-outs, history, approval queue, notifications, and the
// automatic cash-out marker.
func (e *Engine) DeleteProfile(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.state.Profiles {
		if e.state.Profiles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProfileNotFound
	}

	e.state.Profiles = append(e.state.Profiles[:idx:idx], e.state.Profiles[idx+1:]...)
	delete(e.state.Chores, id)
	delete(e.state.PendingCashOuts, id)
	delete(e.state.EarningsHistory, id)
	delete(e.state.PastApprovals, id)
	delete(e.state.BonusNotifications, id)
	delete(e.state.LastAutoCashOut, id)

	e.save("", store.ColProfiles, e.state.Profiles)
	e.save("", store.ColLastAutoCashOut, e.state.LastAutoCashOut)
	if e.persist != nil {
		e.persist.DeleteProfile(id)
	}
	e.broadcast("profile", "deleted", id, id, nil)

	e.logger.Info("profile deleted", "profile_id", id)
	return nil
}

func validatePayDay(cfg model.PayDayConfig) error {
	switch cfg.Mode {
	case model.PayDayAnytime:
		return nil
	case model.PayDayManual:
		if cfg.Day == nil || *cfg.Day < time.Sunday || *cfg.Day > time.Saturday {
			return ErrInvalidPayDay
		}
		return nil
	case model.PayDayAutomatic:
		if cfg.Day == nil || *cfg.Day < time.Sunday || *cfg.Day > time.Saturday {
			return ErrInvalidPayDay
		}
		if _, err := time.Parse("15:04", cfg.Time); err != nil {
			return ErrInvalidPayDay
		}
		return nil
	default:
		return ErrInvalidPayDay
	}
}
