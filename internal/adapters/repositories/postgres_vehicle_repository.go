package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dispatch-planner-service/internal/domain"
)

// Postgres-backed implementation of the VehicleRepository port.
type PostgresVehicleRepository struct{ DB *sql.DB }

func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

// Return all vehicles in fleet order (insertion order). The selector relies
// on this ordering when augmenting an under-provisioned selection.
func (r *PostgresVehicleRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if r.DB == nil {
		return nil, errors.New("vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		type_name,
		max_weight_kg,
		max_volume_m3,
		status,
		unit,
		note
	FROM vehicles
	ORDER BY position;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 16)
	for rows.Next() {
		var v domain.Vehicle
		var status string
		if err := rows.Scan(&v.ID, &v.TypeName, &v.MaxWeightKg, &v.MaxVolumeM3, &status, &v.Unit, &v.Note); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		v.Status = domain.VehicleStatus(status)
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

// Insert or update a vehicle keyed by its ID.
func (r *PostgresVehicleRepository) UpsertVehicle(ctx context.Context, v domain.Vehicle) error {
	if r.DB == nil {
		return errors.New("vehicle repository: DB is nil")
	}

	if v.ID == "" {
		return errors.New("upsert vehicle: vehicle id must not be empty")
	}

	query := `
	INSERT INTO vehicles (vehicle_id, type_name, max_weight_kg, max_volume_m3, status, unit, note)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (vehicle_id) DO UPDATE
	SET type_name = EXCLUDED.type_name,
		max_weight_kg = EXCLUDED.max_weight_kg,
		max_volume_m3 = EXCLUDED.max_volume_m3,
		status = EXCLUDED.status,
		unit = EXCLUDED.unit,
		note = EXCLUDED.note;
	`
	if _, err := r.DB.ExecContext(ctx, query,
		v.ID, v.TypeName, v.MaxWeightKg, v.MaxVolumeM3, string(v.Status), v.Unit, v.Note,
	); err != nil {
		return fmt.Errorf("upsert vehicle %q: %w", v.ID, err)
	}

	return nil
}
