package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hurlingham/leaguesync/internal/api/apierr"
	"github.com/hurlingham/leaguesync/internal/api/middleware"
	"github.com/hurlingham/leaguesync/internal/api/response"
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/services/availability"
)

// AvailabilityHandler applies availability toggles through the gateway
type AvailabilityHandler struct {
	gateway *availability.Gateway
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(gateway *availability.Gateway) *AvailabilityHandler {
	return &AvailabilityHandler{gateway: gateway}
}

// Toggle handles POST /timeslots/{timeslot_id}/toggle
func (h *AvailabilityHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	timeslotID := model.TimeslotID(mux.Vars(r)["timeslot_id"])
	if timeslotID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("timeslot_id is required"))
		return
	}

	var playerID model.PlayerID
	if player, ok := middleware.GetPlayer(r.Context()); ok {
		playerID = player.ID
	}

	result, err := h.gateway.Toggle(r.Context(), playerID, timeslotID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUnresolvedIdentity),
			errors.Is(err, model.ErrTimeslotNotFound),
			errors.Is(err, model.ErrTimeslotLocked):
			apierr.WriteError(w, err)
		default:
			// The insert or delete itself failed against storage
			apierr.WriteError(w, apierr.NewStorageUnavailableError())
		}
		return
	}

	response.JSON(w, http.StatusOK, response.Toggle{
		Action:     string(result.Action),
		Reconciled: result.Reconciled,
	})
}
