package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/farthing/internal/engine"
)

type SettingsHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewSettingsHandler(e *engine.Engine, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{engine: e, logger: logger}
}

func (h *SettingsHandler) SetPasscode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.engine.SetParentPasscode(req.Passcode); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "set"})
}

func (h *SettingsHandler) VerifyPasscode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.engine.VerifyParentPasscode(req.Passcode); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}
