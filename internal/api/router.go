package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hurlingham/leaguesync/internal/api/handler"
	apimiddleware "github.com/hurlingham/leaguesync/internal/api/middleware"
	"github.com/hurlingham/leaguesync/internal/api/sse"
	"github.com/hurlingham/leaguesync/internal/middleware"
	"github.com/hurlingham/leaguesync/internal/reconcile"
	"github.com/hurlingham/leaguesync/internal/services/availability"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Reconciler *reconcile.Reconciler
	Gateway    *availability.Gateway
	Hub        *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	scheduleHandler := handler.NewScheduleHandler(cfg.Reconciler)
	availabilityHandler := handler.NewAvailabilityHandler(cfg.Gateway)
	matchesHandler := handler.NewMatchesHandler(cfg.Reconciler)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(apimiddleware.Identity(cfg.Reconciler))

	api.HandleFunc("/schedule", scheduleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/timeslots/{timeslot_id}/toggle", availabilityHandler.Toggle).Methods(http.MethodPost)
	api.HandleFunc("/matches/mine", matchesHandler.Mine).Methods(http.MethodGet)
	api.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
