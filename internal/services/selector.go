package services

import "dispatch-planner-service/internal/domain"

// SelectVehiclesForPlanner produces the vehicle set exposed to the planner.
//
// When the user's selection already covers the required minimum it is
// returned unchanged (in selection order). Otherwise active fleet vehicles
// not already selected are appended, in fleet order, until the minimum is
// reached or the active fleet is exhausted; running out is not an error.
//
// The result is a PlannerVehicle projection: the selection flag, free-text
// note, and organizational unit never reach the planner.
func SelectVehiclesForPlanner(
	selected []domain.Vehicle,
	fleet []domain.Vehicle,
	minRequired int,
) []domain.PlannerVehicle {
	out := make([]domain.PlannerVehicle, 0, len(selected))
	for _, v := range selected {
		out = append(out, v.ForPlanner())
	}

	if len(selected) >= minRequired {
		return out
	}

	selectedIDs := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		selectedIDs[v.ID] = struct{}{}
	}

	for _, v := range fleet {
		if len(out) >= minRequired {
			break
		}
		if v.Status != domain.StatusActive {
			continue
		}
		if _, ok := selectedIDs[v.ID]; ok {
			continue
		}
		out = append(out, v.ForPlanner())
	}

	return out
}
