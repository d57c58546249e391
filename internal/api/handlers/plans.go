package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dispatch-planner-service/internal/api/dto"
	"dispatch-planner-service/internal/services"

	"github.com/rs/zerolog"
)

type PlanHandler struct {
	Planner *services.Planner
	Session *services.SessionState
}

// Plan runs the full planning pipeline: travel matrix, prompt, generation,
// reconciliation.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.Planner.Plan(r.Context(), req.ToService())
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponseFromResult(result))
}

// Preview composes the prompt and conflict analysis without calling any
// external service.
func (h *PlanHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.Planner.Preview(r.Context(), req.ToService())
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponseFromResult(result))
}

// Export streams the last successful plan as CSV.
func (h *PlanHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	result, ok := h.Session.LastOutcome()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no plan has been generated yet")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	if err := services.WriteItineraryCSV(w, result.Events); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("export itinerary failed")
	}
}

func decodePlanRequest(w http.ResponseWriter, r *http.Request) (dto.PlanRequest, bool) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return req, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return req, false
	}
	return req, true
}

// Validation problems are the caller's to fix; anything else means an
// upstream dependency failed mid-pipeline.
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeError(w, r, http.StatusBadRequest, verr.Message)
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Msg("plan failed")
	writeError(w, r, http.StatusBadGateway, "外部サービスの呼び出しに失敗しました")
}
