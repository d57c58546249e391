package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch-planner-service/internal/platform/httpx"
	"dispatch-planner-service/internal/platform/obs"
	"dispatch-planner-service/internal/ports"

	"github.com/rs/zerolog"
)

// MatrixProvider implements TravelMatrixProvider using the Google Maps
// Distance Matrix web service.
//
// It coordinates request assembly (toll avoidance, traffic-aware departure
// time), response validation, and transient-failure retries. Per-pair
// failures are downgraded to warnings; only a non-OK top-level status is
// fatal. The provider is safe for concurrent use.
type MatrixProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewMatrixProvider(apiKey string) (*MatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("maps api key is empty")
	}

	return &MatrixProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
	}, nil
}

// WithBaseURL points the provider at a different endpoint. Used in tests.
func (p *MatrixProvider) WithBaseURL(base string) *MatrixProvider {
	p.baseURL = strings.TrimRight(base, "/")
	return p
}

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
			DurationInTraffic *struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration_in_traffic"`
			Distance struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// GetMatrix fetches the full pairwise matrix for the request addresses.
func (p *MatrixProvider) GetMatrix(
	ctx context.Context,
	req ports.MatrixRequest,
) (_ *ports.TravelMatrix, err error) {
	defer obs.Time(ctx, "travel.GetMatrix")(&err)

	if len(req.Addresses) < 2 {
		return nil, errors.New("get matrix: at least two addresses are required")
	}
	for _, a := range req.Addresses {
		if strings.TrimSpace(a) == "" {
			return nil, errors.New("get matrix: every location must carry an address")
		}
	}

	endpoint := p.baseURL + "/maps/api/distancematrix/json"
	joined := strings.Join(req.Addresses, "|")

	makeReq := func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		q := url.Values{}
		q.Set("origins", joined)
		q.Set("destinations", joined)
		q.Set("mode", "driving")
		q.Set("language", "ja")
		q.Set("units", "metric")
		q.Set("departure_time", strconv.FormatInt(req.DepartureTime.Unix(), 10))
		if req.AvoidTolls {
			q.Set("avoid", "tolls")
		}
		q.Set("key", p.apiKey)
		r.URL.RawQuery = q.Encode()

		return r, nil
	}

	resp, err := httpx.DoWithRetry(ctx, p.session, makeReq)
	if err != nil {
		return nil, fmt.Errorf("get matrix: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("get matrix: decode response: %w", err)
	}

	if decoded.Status != "OK" {
		msg := decoded.ErrorMessage
		if msg == "" {
			msg = decoded.Status
		}
		return nil, fmt.Errorf("get matrix: distance matrix status %q: %s", decoded.Status, msg)
	}

	if len(decoded.Rows) != len(req.Addresses) {
		return nil, fmt.Errorf(
			"get matrix: expected %d rows, got %d",
			len(req.Addresses), len(decoded.Rows),
		)
	}

	logger := zerolog.Ctx(ctx)

	out := &ports.TravelMatrix{Status: decoded.Status}
	out.Rows = make([][]ports.MatrixElement, len(decoded.Rows))
	for i, row := range decoded.Rows {
		if len(row.Elements) != len(req.Addresses) {
			return nil, fmt.Errorf(
				"get matrix: row %d has %d elements, want %d",
				i, len(row.Elements), len(req.Addresses),
			)
		}

		out.Rows[i] = make([]ports.MatrixElement, len(row.Elements))
		for j, el := range row.Elements {
			if el.Status != ports.ElementStatusOK && el.Status != ports.ElementStatusZeroResults {
				logger.Warn().
					Str("origin", req.Addresses[i]).
					Str("destination", req.Addresses[j]).
					Str("status", el.Status).
					Msg("no route found for pair")
			}

			durText, durValue := el.Duration.Text, el.Duration.Value
			// Traffic-aware durations are preferred when the service
			// returns them for the requested departure time.
			if el.DurationInTraffic != nil {
				durText, durValue = el.DurationInTraffic.Text, el.DurationInTraffic.Value
			}

			out.Rows[i][j] = ports.MatrixElement{
				Status:          el.Status,
				DurationText:    durText,
				DurationSeconds: durValue,
				DistanceText:    el.Distance.Text,
				DistanceMeters:  el.Distance.Value,
			}
		}
	}

	return out, nil
}
