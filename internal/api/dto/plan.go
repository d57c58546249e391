package dto

import (
	"dispatch-planner-service/internal/domain"
	"dispatch-planner-service/internal/services"
)

type PlanRequest struct {
	Locations  []Location `json:"locations"`
	VehicleIDs []string   `json:"vehicle_ids"`

	// "fastest-time", "shortest-distance", "strict-schedule" or "custom".
	Mode            string `json:"mode"`
	UseTolls        bool   `json:"use_tolls"`
	CustomDirective string `json:"custom_directive"`

	// 0 disables the continuous-driving clause.
	ContinuousDriveHours int `json:"continuous_drive_hours"`
	RestMinutes          int `json:"rest_minutes"`
	// 0 disables the daily duty clause.
	DailyDutyHours int `json:"daily_duty_hours"`
}

func (r PlanRequest) ToService() services.PlanRequest {
	locations := make([]domain.Location, 0, len(r.Locations))
	for _, loc := range r.Locations {
		locations = append(locations, loc.ToDomain())
	}

	options := services.PromptOptions{
		Mode:            services.PromptMode(r.Mode),
		UseTolls:        r.UseTolls,
		CustomDirective: r.CustomDirective,
		DailyDutyHours:  r.DailyDutyHours,
	}
	if r.ContinuousDriveHours > 0 {
		options.ContinuousDrive = &services.DriveLimit{
			Hours:       r.ContinuousDriveHours,
			RestMinutes: r.RestMinutes,
		}
	}

	return services.PlanRequest{
		Locations:          locations,
		SelectedVehicleIDs: r.VehicleIDs,
		Options:            options,
	}
}

type PlanEvent struct {
	Vehicle        string `json:"vehicle"`
	ProposedTime   string `json:"proposed_time"`
	DesiredTime    string `json:"desired_time"`
	TimeDifference string `json:"time_difference"`
	Status         string `json:"status"`
	LocationID     string `json:"location_id"`
	LocationCode   string `json:"location_code"`
	LocationName   string `json:"location_name"`
	Address        string `json:"address"`
	Remarks        string `json:"remarks"`
}

func eventFromDomain(ev domain.PlanEvent) PlanEvent {
	return PlanEvent{
		Vehicle:        ev.Vehicle,
		ProposedTime:   ev.ProposedTime,
		DesiredTime:    ev.DesiredTime,
		TimeDifference: ev.TimeDifference,
		Status:         ev.StatusLabel,
		LocationID:     ev.LocationID,
		LocationCode:   ev.LocationCode,
		LocationName:   ev.LocationName,
		Address:        ev.Address,
		Remarks:        ev.Remarks,
	}
}

type Conflict struct {
	LocationA string `json:"location_a"`
	WindowA   string `json:"window_a"`
	LocationB string `json:"location_b"`
	WindowB   string `json:"window_b"`
}

type PlannerVehicle struct {
	ID          string `json:"id"`
	TypeName    string `json:"type_name"`
	MaxWeightKg int    `json:"max_weight_kg"`
	MaxVolumeM3 int    `json:"max_volume_m3"`
}

type Itinerary struct {
	Vehicle        string      `json:"vehicle"`
	Events         []PlanEvent `json:"events"`
	ProposedTotal  string      `json:"proposed_total"`
	DesiredTotal   string      `json:"desired_total"`
	TimeDifference string      `json:"time_difference"`
	MapLink        string      `json:"map_link,omitempty"`
}

type PlanResponse struct {
	Summary     string           `json:"summary"`
	Prompt      string           `json:"prompt"`
	MinRequired int              `json:"min_required_vehicles"`
	Conflicts   []Conflict       `json:"conflicts"`
	Vehicles    []PlannerVehicle `json:"vehicles"`
	Itineraries []Itinerary      `json:"itineraries"`
	Warnings    []string         `json:"warnings,omitempty"`
}

func PlanResponseFromResult(result *services.PlanResult) PlanResponse {
	res := PlanResponse{
		Summary:     result.Summary,
		Prompt:      result.Prompt,
		MinRequired: result.MinRequired,
		Conflicts:   make([]Conflict, 0, len(result.Conflicts)),
		Vehicles:    make([]PlannerVehicle, 0, len(result.Vehicles)),
		Itineraries: make([]Itinerary, 0, len(result.Itineraries)),
		Warnings:    result.Warnings,
	}

	for _, c := range result.Conflicts {
		res.Conflicts = append(res.Conflicts, Conflict{
			LocationA: c.A.LocationName,
			WindowA:   c.A.Arrival.Format(domain.PlanTimeLayout) + " - " + c.A.Departure.Format(domain.PlanTimeLayout),
			LocationB: c.B.LocationName,
			WindowB:   c.B.Arrival.Format(domain.PlanTimeLayout) + " - " + c.B.Departure.Format(domain.PlanTimeLayout),
		})
	}

	for _, v := range result.Vehicles {
		res.Vehicles = append(res.Vehicles, PlannerVehicle{
			ID:          v.ID,
			TypeName:    v.TypeName,
			MaxWeightKg: v.MaxWeightKg,
			MaxVolumeM3: v.MaxVolumeM3,
		})
	}

	for _, it := range result.Itineraries {
		events := make([]PlanEvent, 0, len(it.Events))
		for _, ev := range it.Events {
			events = append(events, eventFromDomain(ev))
		}
		res.Itineraries = append(res.Itineraries, Itinerary{
			Vehicle:        it.Vehicle,
			Events:         events,
			ProposedTotal:  it.Totals.Proposed,
			DesiredTotal:   it.Totals.Desired,
			TimeDifference: it.Totals.Difference,
			MapLink:        it.MapLink,
		})
	}

	return res
}
