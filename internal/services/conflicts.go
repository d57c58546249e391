package services

import "dispatch-planner-service/internal/domain"

// AnalyzeVehicleRequirements detects overlapping desired time windows and
// infers the minimum number of vehicles the planner must use.
//
// Locations missing either timestamp, or carrying an unparsable one, are
// silently skipped. Every unordered pair of the remaining slots is tested
// with the strict-overlap rule (touching endpoints do not conflict).
//
// The returned minimum is len(conflicts)+1, a deliberately coarse heuristic
// rather than an interval-partitioning minimum; the count feeds directly into
// the prompt wording and is kept stable for that reason.
func AnalyzeVehicleRequirements(locations []domain.Location) (int, []domain.ConflictPair) {
	slots := make([]domain.TimeSlot, 0, len(locations))
	for _, loc := range locations {
		arrival, okA := domain.ParsePlanTime(loc.DesiredArrival)
		departure, okD := domain.ParsePlanTime(loc.DesiredDeparture)
		if !okA || !okD {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			LocationName: loc.Name,
			LocationCode: loc.Code,
			Arrival:      arrival,
			Departure:    departure,
		})
	}

	var conflicts []domain.ConflictPair
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Overlaps(slots[j]) {
				conflicts = append(conflicts, domain.ConflictPair{A: slots[i], B: slots[j]})
			}
		}
	}

	if len(conflicts) == 0 {
		return 1, nil
	}
	return len(conflicts) + 1, conflicts
}
