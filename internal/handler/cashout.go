package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/farthing/internal/engine"
	"github.com/dukerupert/farthing/internal/model"
)

type CashOutHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewCashOutHandler(e *engine.Engine, logger *slog.Logger) *CashOutHandler {
	return &CashOutHandler{engine: e, logger: logger}
}

// Request rolls the profile's completed chores into a pending cash-out.
func (h *CashOutHandler) Request(w http.ResponseWriter, r *http.Request) {
	rec, err := h.engine.RequestCashOut(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *CashOutHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	records := h.engine.PendingCashOuts(r.PathValue("id"))
	if records == nil {
		records = []model.EarningsRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Review applies keep/deny flags to a pending record and returns the
// recomputed record without committing it.
func (h *CashOutHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Flags map[string]bool `json:"flags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	rec, err := h.engine.ReviewCashOut(r.PathValue("id"), r.PathValue("record_id"), req.Flags)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Approve finalizes a reviewed record into the earnings history.
func (h *CashOutHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var reviewed model.EarningsRecord
	if err := json.NewDecoder(r.Body).Decode(&reviewed); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	reviewed.ID = r.PathValue("record_id")

	rec, err := h.engine.ApproveCashOut(r.PathValue("id"), reviewed)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *CashOutHandler) History(w http.ResponseWriter, r *http.Request) {
	records := h.engine.History(r.PathValue("id"))
	if records == nil {
		records = []model.EarningsRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// UpdateHistoryAmount corrects an approved record's amount.
func (h *CashOutHandler) UpdateHistoryAmount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.engine.UpdateHistoryAmount(r.PathValue("id"), r.PathValue("record_id"), req.Amount); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CashOutHandler) CurrentEarnings(w http.ResponseWriter, r *http.Request) {
	cents, err := h.engine.CurrentEarnings(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"cents": cents})
}
