package handler

import (
	"net/http"

	"github.com/hurlingham/leaguesync/internal/api/middleware"
	"github.com/hurlingham/leaguesync/internal/api/sse"
	"github.com/hurlingham/leaguesync/internal/model"
)

// EventsHandler serves the SSE change feed
type EventsHandler struct {
	hub *sse.Hub
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(hub *sse.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var playerID model.PlayerID
	if player, ok := middleware.GetPlayer(r.Context()); ok {
		playerID = player.ID
	}
	sse.ServeSSE(w, r, h.hub, playerID)
}
