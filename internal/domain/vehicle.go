package domain

// Operational status of a vehicle in the fleet master.
type VehicleStatus string

const (
	StatusActive      VehicleStatus = "稼働中"
	StatusStandby     VehicleStatus = "待機中"
	StatusMaintenance VehicleStatus = "整備中"
)

// A vehicle in the fleet master. Unlike Locations, vehicles outlive a single
// planning run; a run reads a snapshot from the repository.
type Vehicle struct {
	ID          string
	TypeName    string
	MaxWeightKg int
	MaxVolumeM3 int
	Status      VehicleStatus

	// Internal-only columns. They exist for dispatchers, not for the
	// planner, and must never appear in a prompt.
	Unit string
	Note string
}

// The projection of a Vehicle that is allowed to reach the planner.
// Unit and Note are deliberately absent.
type PlannerVehicle struct {
	ID          string
	TypeName    string
	MaxWeightKg int
	MaxVolumeM3 int
}

// ForPlanner strips the internal-only columns from a vehicle.
func (v Vehicle) ForPlanner() PlannerVehicle {
	return PlannerVehicle{
		ID:          v.ID,
		TypeName:    v.TypeName,
		MaxWeightKg: v.MaxWeightKg,
		MaxVolumeM3: v.MaxVolumeM3,
	}
}
