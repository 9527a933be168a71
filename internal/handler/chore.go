package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/farthing/internal/engine"
	"github.com/dukerupert/farthing/internal/model"
)

type ChoreHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewChoreHandler(e *engine.Engine, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{engine: e, logger: logger}
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	chores, err := h.engine.Chores(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

type choreRequest struct {
	Name        string         `json:"name"`
	Value       int            `json:"value"`
	Weekdays    []time.Weekday `json:"weekdays"`
	OneTimeDate string         `json:"one_time_date"`
	Category    string         `json:"category"`
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ch, err := h.engine.CreateChore(r.PathValue("id"), strings.TrimSpace(req.Name), req.Value, req.Weekdays, req.OneTimeDate, req.Category)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ch)
}

type choreUpdateRequest struct {
	Name        *string         `json:"name"`
	Value       *int            `json:"value"`
	Weekdays    *[]time.Weekday `json:"weekdays"`
	OneTimeDate *string         `json:"one_time_date"`
	Category    *string         `json:"category"`
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req choreUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ch, err := h.engine.UpdateChore(r.PathValue("id"), r.PathValue("chore_id"), engine.ChoreUpdate{
		Name:        req.Name,
		Value:       req.Value,
		Weekdays:    req.Weekdays,
		OneTimeDate: req.OneTimeDate,
		Category:    req.Category,
	})
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteChore(r.PathValue("id"), r.PathValue("chore_id")); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ChoreHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string   `json:"category"`
		IDs      []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.engine.ReorderChores(r.PathValue("id"), req.Category, req.IDs); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// Toggle flips a completion for one date. The engine decides whether this
// completes, un-completes, queues a past-chore approval, or quietly refuses.
func (h *ChoreHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	err := h.engine.ToggleCompletion(r.PathValue("id"), r.PathValue("chore_id"), req.Date, actorFrom(r))
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
