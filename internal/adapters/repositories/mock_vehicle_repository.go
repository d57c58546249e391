package repositories

import (
	"context"

	"dispatch-planner-service/internal/domain"
)

// MockVehicleRepository serves a fixed fleet from memory.
type MockVehicleRepository struct {
	Vehicles []domain.Vehicle
	Err      error
}

func (m *MockVehicleRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Vehicle, len(m.Vehicles))
	copy(out, m.Vehicles)
	return out, nil
}

func (m *MockVehicleRepository) UpsertVehicle(ctx context.Context, v domain.Vehicle) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Vehicles {
		if existing.ID == v.ID {
			m.Vehicles[i] = v
			return nil
		}
	}
	m.Vehicles = append(m.Vehicles, v)
	return nil
}
