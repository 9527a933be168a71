package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/farthing/internal/engine"
)

type BonusHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewBonusHandler(e *engine.Engine, logger *slog.Logger) *BonusHandler {
	return &BonusHandler{engine: e, logger: logger}
}

func (h *BonusHandler) Award(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileIDs []string `json:"profile_ids"`
		Amount     int      `json:"amount"`
		Note       string   `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if len(req.ProfileIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "profile_ids is required"})
		return
	}

	if err := h.engine.AwardBonus(req.ProfileIDs, req.Amount, req.Note); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "awarded"})
}

// ConsumeNotification pops the profile's next unseen bonus notification.
// An empty queue returns 204.
func (h *BonusHandler) ConsumeNotification(w http.ResponseWriter, r *http.Request) {
	n := h.engine.ConsumeNextBonusNotification(r.PathValue("id"))
	if n == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
