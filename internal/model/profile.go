package model

import "time"

type PayDayMode string

const (
	PayDayAnytime   PayDayMode = "anytime"
	PayDayManual    PayDayMode = "manual"
	PayDayAutomatic PayDayMode = "automatic"
)

// PayDayConfig controls when a profile's completed chores may be cashed out.
// Day is required for manual and automatic modes. Time is the "HH:MM"
// wall-clock minute at which an automatic cash-out fires.
type PayDayConfig struct {
	Mode PayDayMode    `json:"mode"`
	Day  *time.Weekday `json:"day,omitempty"`
	Time string        `json:"time,omitempty"`
}

type Profile struct {
	ID                    string       `json:"id"`
	Name                  string       `json:"name"`
	ImageURL              string       `json:"image_url,omitempty"`
	Theme                 string       `json:"theme,omitempty"`
	PayDay                PayDayConfig `json:"pay_day_config"`
	HasSeenThemePrompt    bool         `json:"has_seen_theme_prompt"`
	ShowPotentialEarnings bool         `json:"show_potential_earnings"`
	CreatedAt             time.Time    `json:"created_at"`
}
