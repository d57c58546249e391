package travel

import (
	"context"

	"dispatch-planner-service/internal/ports"
)

type MockPair struct {
	From, To     string
	Meters       int
	Seconds      int
	DurationText string
	DistanceText string
}

// MockMatrixProvider assembles a TravelMatrix from fixed per-pair data.
// Pairs that were never registered come back as ZERO_RESULTS elements.
type MockMatrixProvider struct {
	m     map[string]ports.MatrixElement
	Calls int
}

func NewMockMatrixProvider(pairs []MockPair) *MockMatrixProvider {
	m := make(map[string]ports.MatrixElement, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.MatrixElement{
			Status:          ports.ElementStatusOK,
			DurationText:    p.DurationText,
			DurationSeconds: p.Seconds,
			DistanceText:    p.DistanceText,
			DistanceMeters:  p.Meters,
		}
	}
	return &MockMatrixProvider{m: m}
}

func (p *MockMatrixProvider) GetMatrix(ctx context.Context, req ports.MatrixRequest) (*ports.TravelMatrix, error) {
	p.Calls++

	out := &ports.TravelMatrix{Status: "OK"}
	out.Rows = make([][]ports.MatrixElement, len(req.Addresses))
	for i, from := range req.Addresses {
		out.Rows[i] = make([]ports.MatrixElement, len(req.Addresses))
		for j, to := range req.Addresses {
			if i == j {
				out.Rows[i][j] = ports.MatrixElement{Status: ports.ElementStatusOK}
				continue
			}

			el, ok := p.m[from+"|"+to]
			if !ok {
				out.Rows[i][j] = ports.MatrixElement{Status: ports.ElementStatusZeroResults}
				continue
			}
			out.Rows[i][j] = el
		}
	}

	return out, nil
}
