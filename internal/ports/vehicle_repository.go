package ports

import (
	"context"

	"dispatch-planner-service/internal/domain"
)

// Port: a boundary for reading and updating the fleet master.
// A planning run only ever reads a snapshot; mutations happen outside any
// in-flight planning call.
type VehicleRepository interface {
	// Return all vehicles in fleet order.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	// Insert or update a single vehicle keyed by its ID.
	UpsertVehicle(ctx context.Context, v domain.Vehicle) error
}
