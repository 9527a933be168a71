package store

import (
	"encoding/json"
	"fmt"
)

// A migration rewrites one collection's JSON payload from schema version v to
// v+1. Steps must be pure: same input, same output, no side effects.
type migration func([]byte) ([]byte, error)

// chains holds the linear migration chain per collection. A collection's
// current schema version is the length of its chain; collections with no
// chain are at version 0.
var chains = map[string][]migration{
	ColProfiles: {migrateFlatPayDay},
	ColChores:   {migrateCompletionBooleans},
}

// CurrentVersion returns the schema version freshly written payloads carry.
func CurrentVersion(name string) int {
	return len(chains[name])
}

// migrate runs the chain from the stored version up to current. It returns
// the resulting version and payload.
func migrate(name string, version int, data []byte) (int, []byte, error) {
	steps := chains[name]
	if version >= len(steps) {
		return version, data, nil
	}
	for v := version; v < len(steps); v++ {
		out, err := steps[v](data)
		if err != nil {
			return version, nil, fmt.Errorf("migrate %s v%d->v%d: %w", name, v, v+1, err)
		}
		data = out
	}
	return len(steps), data, nil
}

// migrateCompletionBooleans rewrites legacy boolean completion flags to the
// completion-state enum: true becomes "completed", false disappears.
func migrateCompletionBooleans(data []byte) ([]byte, error) {
	var chores []map[string]any
	if err := json.Unmarshal(data, &chores); err != nil {
		return nil, err
	}
	for _, ch := range chores {
		raw, ok := ch["completions"].(map[string]any)
		if !ok {
			continue
		}
		for date, v := range raw {
			if b, isBool := v.(bool); isBool {
				if b {
					raw[date] = "completed"
				} else {
					delete(raw, date)
				}
			}
		}
	}
	return json.Marshal(chores)
}

// migrateFlatPayDay rewrites the legacy flat "pay_day" weekday field into a
// pay_day_config object. Profiles that already carry a config are untouched.
// A flat weekday predates automatic mode, so it maps to manual.
func migrateFlatPayDay(data []byte) ([]byte, error) {
	var profiles []map[string]any
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if _, ok := p["pay_day_config"]; ok {
			continue
		}
		day, ok := p["pay_day"].(float64)
		if !ok {
			continue
		}
		p["pay_day_config"] = map[string]any{
			"mode": "manual",
			"day":  int(day),
		}
		delete(p, "pay_day")
	}
	return json.Marshal(profiles)
}
