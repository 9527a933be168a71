package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/farthing/internal/engine"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeEngineError maps engine errors onto HTTP statuses. Validation errors
// are 400s, lookups 404s, a bad passcode 401; anything else is unexpected.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, engine.ErrProfileNotFound),
		errors.Is(err, engine.ErrChoreNotFound),
		errors.Is(err, engine.ErrRecordNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrNothingToCashOut),
		errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrInvalidDate),
		errors.Is(err, engine.ErrInvalidPayDay),
		errors.Is(err, engine.ErrNameRequired),
		errors.Is(err, engine.ErrBonusChore),
		errors.Is(err, engine.ErrInvalidPasscode):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrPasscodeMismatch):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// actorFrom reads the caller identity header. Anything other than an explicit
// parent claim is treated as the child; parent-only operations verify the
// passcode separately.
func actorFrom(r *http.Request) engine.Actor {
	if r.Header.Get("X-Farthing-Actor") == string(engine.ActorParent) {
		return engine.ActorParent
	}
	return engine.ActorChild
}
