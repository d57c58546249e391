package ports

import (
	"context"
	"time"
)

// One origin->destination cell of a travel matrix. Text fields carry the
// provider's human-readable rendering ("3時間40分", "325 km"); they are fed
// verbatim into planning prompts.
type MatrixElement struct {
	Status          string
	DurationText    string
	DurationSeconds int
	DistanceText    string
	DistanceMeters  int
}

// Pairwise driving distance and duration between a set of addresses,
// origin-major: Rows[i][j] is addresses[i] -> addresses[j].
type TravelMatrix struct {
	Status string
	Rows   [][]MatrixElement
}

// Per-element statuses as reported by the provider. Anything outside
// {OK, ZERO_RESULTS} is a soft warning, not a planning failure.
const (
	ElementStatusOK          = "OK"
	ElementStatusZeroResults = "ZERO_RESULTS"
)

type MatrixRequest struct {
	// Addresses serve as both origins and destinations.
	Addresses     []string
	DepartureTime time.Time
	AvoidTolls    bool
}

// Contract for retrieving the pairwise travel-time/distance matrix.
type TravelMatrixProvider interface {
	GetMatrix(ctx context.Context, req MatrixRequest) (*TravelMatrix, error)
}
