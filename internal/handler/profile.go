package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/farthing/internal/engine"
	"github.com/dukerupert/farthing/internal/model"
)

type ProfileHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewProfileHandler(e *engine.Engine, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{engine: e, logger: logger}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles := h.engine.Profiles()
	if profiles == nil {
		profiles = []model.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.engine.Profile(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	p, err := h.engine.CreateProfile(strings.TrimSpace(req.Name))
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type profileUpdateRequest struct {
	Name                  *string             `json:"name"`
	ImageURL              *string             `json:"image_url"`
	Theme                 *string             `json:"theme"`
	HasSeenThemePrompt    *bool               `json:"has_seen_theme_prompt"`
	ShowPotentialEarnings *bool               `json:"show_potential_earnings"`
	PayDay                *model.PayDayConfig `json:"pay_day_config"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	p, err := h.engine.UpdateProfile(r.PathValue("id"), engine.ProfileUpdate{
		Name:                  req.Name,
		ImageURL:              req.ImageURL,
		Theme:                 req.Theme,
		HasSeenThemePrompt:    req.HasSeenThemePrompt,
		ShowPotentialEarnings: req.ShowPotentialEarnings,
		PayDay:                req.PayDay,
	})
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteProfile(r.PathValue("id")); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ProfileHandler) PotentialEarnings(w http.ResponseWriter, r *http.Request) {
	cents, err := h.engine.ProjectPotentialEarnings(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"cents": cents})
}
