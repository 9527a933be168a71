package server

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/farthing/internal/engine"
	"github.com/dukerupert/farthing/internal/events"
	"github.com/dukerupert/farthing/internal/handler"
)

type Server struct {
	engine    *engine.Engine
	hub       *events.Hub
	profileH  *handler.ProfileHandler
	choreH    *handler.ChoreHandler
	cashOutH  *handler.CashOutHandler
	approvalH *handler.ApprovalHandler
	bonusH    *handler.BonusHandler
	settingsH *handler.SettingsHandler
	logger    *slog.Logger
}

func New(eng *engine.Engine, hub *events.Hub, logger *slog.Logger) *Server {
	return &Server{
		engine:    eng,
		hub:       hub,
		profileH:  handler.NewProfileHandler(eng, logger.With("component", "profile")),
		choreH:    handler.NewChoreHandler(eng, logger.With("component", "chore")),
		cashOutH:  handler.NewCashOutHandler(eng, logger.With("component", "cash_out")),
		approvalH: handler.NewApprovalHandler(eng, logger.With("component", "approval")),
		bonusH:    handler.NewBonusHandler(eng, logger.With("component", "bonus")),
		settingsH: handler.NewSettingsHandler(eng, logger.With("component", "settings")),
		logger:    logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", events.Handler(s.hub, s.logger.With("component", "websocket")))

	// Profiles
	mux.HandleFunc("GET /api/profiles", s.profileH.List)
	mux.HandleFunc("POST /api/profiles", s.profileH.Create)
	mux.HandleFunc("GET /api/profiles/{id}", s.profileH.Get)
	mux.HandleFunc("PUT /api/profiles/{id}", s.profileH.Update)
	mux.HandleFunc("DELETE /api/profiles/{id}", s.profileH.Delete)
	mux.HandleFunc("GET /api/profiles/{id}/potential-earnings", s.profileH.PotentialEarnings)

	// Chores and completions
	mux.HandleFunc("GET /api/profiles/{id}/chores", s.choreH.List)
	mux.HandleFunc("POST /api/profiles/{id}/chores", s.choreH.Create)
	mux.HandleFunc("PUT /api/profiles/{id}/chores/reorder", s.choreH.Reorder)
	mux.HandleFunc("PUT /api/profiles/{id}/chores/{chore_id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/profiles/{id}/chores/{chore_id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/profiles/{id}/chores/{chore_id}/toggle", s.choreH.Toggle)

	// Earnings ledger
	mux.HandleFunc("GET /api/profiles/{id}/earnings", s.cashOutH.CurrentEarnings)
	mux.HandleFunc("GET /api/profiles/{id}/cash-outs", s.cashOutH.ListPending)
	mux.HandleFunc("POST /api/profiles/{id}/cash-outs", s.cashOutH.Request)
	mux.HandleFunc("POST /api/profiles/{id}/cash-outs/{record_id}/review", s.cashOutH.Review)
	mux.HandleFunc("POST /api/profiles/{id}/cash-outs/{record_id}/approve", s.cashOutH.Approve)
	mux.HandleFunc("GET /api/profiles/{id}/history", s.cashOutH.History)
	mux.HandleFunc("PUT /api/profiles/{id}/history/{record_id}", s.cashOutH.UpdateHistoryAmount)

	// Past-chore approval queue
	mux.HandleFunc("GET /api/profiles/{id}/past-approvals", s.approvalH.List)
	mux.HandleFunc("POST /api/profiles/{id}/past-approvals/approve-all", s.approvalH.ApproveAll)
	mux.HandleFunc("POST /api/profiles/{id}/past-approvals/dismiss-all", s.approvalH.DismissAll)
	mux.HandleFunc("POST /api/profiles/{id}/past-approvals/{approval_id}/approve", s.approvalH.Approve)
	mux.HandleFunc("POST /api/profiles/{id}/past-approvals/{approval_id}/dismiss", s.approvalH.Dismiss)

	// Bonuses
	mux.HandleFunc("POST /api/bonuses", s.bonusH.Award)
	mux.HandleFunc("POST /api/profiles/{id}/notifications/next", s.bonusH.ConsumeNotification)

	// Parent settings
	mux.HandleFunc("POST /api/settings/passcode", s.settingsH.SetPasscode)
	mux.HandleFunc("POST /api/settings/passcode/verify", s.settingsH.VerifyPasscode)

	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
