package dto

import "dispatch-planner-service/internal/domain"

type Location struct {
	Name             string  `json:"name"`
	Code             string  `json:"code"`
	Address          string  `json:"address"`
	IsStart          bool    `json:"is_start"`
	IsEnd            bool    `json:"is_end"`
	DesiredArrival   string  `json:"desired_arrival"`
	DesiredDeparture string  `json:"desired_departure"`
	LoadWeightKg     float64 `json:"load_weight_kg"`
	LoadVolumeM3     float64 `json:"load_volume_m3"`
	UnloadWeightKg   float64 `json:"unload_weight_kg"`
	UnloadVolumeM3   float64 `json:"unload_volume_m3"`
	Remarks          string  `json:"remarks"`
}

func (l Location) ToDomain() domain.Location {
	return domain.Location{
		Name:             l.Name,
		Code:             l.Code,
		Address:          l.Address,
		IsStart:          l.IsStart,
		IsEnd:            l.IsEnd,
		DesiredArrival:   l.DesiredArrival,
		DesiredDeparture: l.DesiredDeparture,
		LoadWeightKg:     l.LoadWeightKg,
		LoadVolumeM3:     l.LoadVolumeM3,
		UnloadWeightKg:   l.UnloadWeightKg,
		UnloadVolumeM3:   l.UnloadVolumeM3,
		Remarks:          l.Remarks,
	}
}

func LocationFromDomain(loc domain.Location) Location {
	return Location{
		Name:             loc.Name,
		Code:             loc.Code,
		Address:          loc.Address,
		IsStart:          loc.IsStart,
		IsEnd:            loc.IsEnd,
		DesiredArrival:   loc.DesiredArrival,
		DesiredDeparture: loc.DesiredDeparture,
		LoadWeightKg:     loc.LoadWeightKg,
		LoadVolumeM3:     loc.LoadVolumeM3,
		UnloadWeightKg:   loc.UnloadWeightKg,
		UnloadVolumeM3:   loc.UnloadVolumeM3,
		Remarks:          loc.Remarks,
	}
}

type ImportLocationsResponse struct {
	Locations []Location `json:"locations"`
}
