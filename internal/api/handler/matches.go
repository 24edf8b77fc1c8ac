package handler

import (
	"net/http"

	"github.com/hurlingham/leaguesync/internal/api/apierr"
	"github.com/hurlingham/leaguesync/internal/api/middleware"
	"github.com/hurlingham/leaguesync/internal/api/response"
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/reconcile"
	"github.com/hurlingham/leaguesync/internal/views"
)

// MatchesHandler serves the viewer's confirmed matches
type MatchesHandler struct {
	reconciler *reconcile.Reconciler
}

// NewMatchesHandler creates a new MatchesHandler
func NewMatchesHandler(reconciler *reconcile.Reconciler) *MatchesHandler {
	return &MatchesHandler{reconciler: reconciler}
}

// Mine handles GET /matches/mine
func (h *MatchesHandler) Mine(w http.ResponseWriter, r *http.Request) {
	player, ok := middleware.GetPlayer(r.Context())
	if !ok {
		apierr.WriteError(w, model.ErrUnresolvedIdentity)
		return
	}

	snap := h.reconciler.Snapshot()
	matches := make([]response.ConfirmedMatch, 0)
	for _, cm := range views.MyConfirmedMatches(snap, player.ID) {
		matches = append(matches, response.ConfirmedMatchFromView(cm))
	}
	response.JSON(w, http.StatusOK, matches)
}
