package domain

import (
	"strings"
	"time"
)

// PlanTimeLayout is the timestamp format used throughout planning input and
// planner output ("2025/06/15 09:00").
const PlanTimeLayout = "2006/01/02 15:04"

// Represents a single stop in a one-way transport plan.
// Desired times are kept as raw strings because they come from tabular input
// and are echoed verbatim into the planning prompt; ParsePlanTime is used
// wherever a real timestamp is needed.
type Location struct {
	Name             string
	Code             string
	Address          string
	IsStart          bool
	IsEnd            bool
	DesiredArrival   string
	DesiredDeparture string
	LoadWeightKg     float64
	LoadVolumeM3     float64
	UnloadWeightKg   float64
	UnloadVolumeM3   float64

	// Human-only field. Never rendered into planner prompts.
	Remarks string
}

// ParsePlanTime parses a planning timestamp. Besides the canonical
// "YYYY/MM/DD HH:MM" layout it tolerates the dashed and seconds-bearing
// variants the planner occasionally emits.
func ParsePlanTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	layouts := []string{
		PlanTimeLayout,
		"2006/01/02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// AddressByCode builds the location-code -> address mapping used to resolve
// addresses on planner events. Locations without a code are skipped.
func AddressByCode(locations []Location) map[string]string {
	out := make(map[string]string, len(locations))
	for _, loc := range locations {
		if loc.Code == "" {
			continue
		}
		out[loc.Code] = loc.Address
	}
	return out
}
