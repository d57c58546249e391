package ports

import "context"

// Cache over individual matrix cells keyed by (origin, destination, tolls).
// Implementations may expire entries aggressively: durations are
// traffic-dependent.
type MatrixCache interface {
	// Return the cached element for each (origin, destination) pair that hit.
	// Missing pairs are simply absent from the result.
	GetElements(ctx context.Context, avoidTolls bool, pairs []AddressPair) (map[AddressPair]MatrixElement, error)
	// Store elements for the given pairs.
	PutElements(ctx context.Context, avoidTolls bool, elements map[AddressPair]MatrixElement) error
}

type AddressPair struct {
	Origin      string
	Destination string
}
