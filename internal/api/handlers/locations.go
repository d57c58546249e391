package handlers

import (
	"io"
	"mime"
	"net/http"

	"dispatch-planner-service/internal/api/dto"
	"dispatch-planner-service/internal/services"
)

// LocationImportHandler accepts a location sheet as CSV, either raw in the
// request body or as the "file" part of a multipart form.
type LocationImportHandler struct{}

func (h *LocationImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	body, err := csvBody(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	defer body.Close()

	locations, err := services.ReadLocationsCSV(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := dto.ImportLocationsResponse{Locations: make([]dto.Location, 0, len(locations))}
	for _, loc := range locations {
		res.Locations = append(res.Locations, dto.LocationFromDomain(loc))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func csvBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	return file, nil
}
