package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"dispatch-planner-service/internal/api/dto"
	"dispatch-planner-service/internal/ports"

	"github.com/rs/zerolog"
)

type VehicleHandler struct {
	Repo ports.VehicleRepository
}

// Vehicles dispatches the fleet-master collection endpoint by method.
func (h *VehicleHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.upsert(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *VehicleHandler) list(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list vehicles failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.Vehicle, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, dto.VehicleFromDomain(v))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *VehicleHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.Vehicle

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	vehicle, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.UpsertVehicle(r.Context(), vehicle); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("vehicle_id", vehicle.ID).Msg("upsert vehicle failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.VehicleFromDomain(vehicle))
}
