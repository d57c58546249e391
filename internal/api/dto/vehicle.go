package dto

import (
	"fmt"

	"dispatch-planner-service/internal/domain"
)

type Vehicle struct {
	ID          string `json:"id"`
	TypeName    string `json:"type_name"`
	MaxWeightKg int    `json:"max_weight_kg"`
	MaxVolumeM3 int    `json:"max_volume_m3"`
	Status      string `json:"status"`
	Unit        string `json:"unit"`
	Note        string `json:"note"`
}

// ToDomain validates the Japanese status label along the way.
func (v Vehicle) ToDomain() (domain.Vehicle, error) {
	status := domain.VehicleStatus(v.Status)
	switch status {
	case domain.StatusActive, domain.StatusStandby, domain.StatusMaintenance:
	default:
		return domain.Vehicle{}, fmt.Errorf("unknown vehicle status %q", v.Status)
	}
	return domain.Vehicle{
		ID:          v.ID,
		TypeName:    v.TypeName,
		MaxWeightKg: v.MaxWeightKg,
		MaxVolumeM3: v.MaxVolumeM3,
		Status:      status,
		Unit:        v.Unit,
		Note:        v.Note,
	}, nil
}

func VehicleFromDomain(v domain.Vehicle) Vehicle {
	return Vehicle{
		ID:          v.ID,
		TypeName:    v.TypeName,
		MaxWeightKg: v.MaxWeightKg,
		MaxVolumeM3: v.MaxVolumeM3,
		Status:      string(v.Status),
		Unit:        v.Unit,
		Note:        v.Note,
	}
}

type ListVehiclesResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
}
