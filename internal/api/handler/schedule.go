package handler

import (
	"net/http"

	"github.com/hurlingham/leaguesync/internal/api/middleware"
	"github.com/hurlingham/leaguesync/internal/api/response"
	"github.com/hurlingham/leaguesync/internal/reconcile"
)

// ScheduleHandler serves the full schedule payload: grouped timeslots
// classified for the viewer, plus identity and confirmed matches.
// Reads never touch storage; they observe the last committed snapshot.
type ScheduleHandler struct {
	reconciler *reconcile.Reconciler
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(reconciler *reconcile.Reconciler) *ScheduleHandler {
	return &ScheduleHandler{reconciler: reconciler}
}

// Get handles GET /schedule
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.reconciler.Snapshot()
	player, resolved := middleware.GetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.ScheduleFromSnapshot(snap, player, resolved))
}
