package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/farthing/internal/engine"
	"github.com/dukerupert/farthing/internal/model"
)

type ApprovalHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewApprovalHandler(e *engine.Engine, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{engine: e, logger: logger}
}

func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.engine.PastApprovals(r.PathValue("id"))
	if entries == nil {
		entries = []model.PastChoreApproval{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ApprovePastChore(r.PathValue("id"), r.PathValue("approval_id")); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *ApprovalHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DismissPastChore(r.PathValue("id"), r.PathValue("approval_id")); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

func (h *ApprovalHandler) ApproveAll(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ApproveAllPastChores(r.PathValue("id")); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *ApprovalHandler) DismissAll(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DismissAllPastChores(r.PathValue("id")); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}
