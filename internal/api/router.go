package api

import (
	"net/http"

	"dispatch-planner-service/internal/api/handlers"
	"dispatch-planner-service/internal/ports"
	"dispatch-planner-service/internal/services"

	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(
	log zerolog.Logger,
	planner *services.Planner,
	session *services.SessionState,
	fleet ports.VehicleRepository,
) http.Handler {
	mux := http.NewServeMux()

	vehicleHandler := &handlers.VehicleHandler{Repo: fleet}
	planHandler := &handlers.PlanHandler{Planner: planner, Session: session}
	importHandler := &handlers.LocationImportHandler{}
	usageHandler := &handlers.UsageHandler{Session: session}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/vehicles", vehicleHandler.Vehicles)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/plans/preview", planHandler.Preview)
	mux.HandleFunc("/plans/last/export", planHandler.Export)
	mux.HandleFunc("/locations/import", importHandler.Import)
	mux.HandleFunc("/usage", usageHandler.Usage)

	return loggingMiddleware(log, mux)
}
