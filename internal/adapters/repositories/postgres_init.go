package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		position SERIAL,
		vehicle_id TEXT PRIMARY KEY,
		type_name TEXT NOT NULL,
		max_weight_kg INTEGER NOT NULL DEFAULT 0,
		max_volume_m3 INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT ''
	);
	`

	statements := []string{
		createVehiclesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type vehicleSeed struct {
	VehicleID   string `json:"vehicle_id"`
	TypeName    string `json:"type_name"`
	MaxWeightKg int    `json:"max_weight_kg"`
	MaxVolumeM3 int    `json:"max_volume_m3"`
	Status      string `json:"status"`
	Unit        string `json:"unit"`
	Note        string `json:"note"`
}

// SeedFromJSON loads the fleet master from a JSON file. Seeding is skipped
// when the table already has rows, so restarts do not clobber edits.
func SeedFromJSON(db *sql.DB, path string) error {
	if db == nil {
		return errors.New("seed vehicles: DB is nil")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vehicles;`).Scan(&count); err != nil {
		return fmt.Errorf("seed vehicles: count rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed vehicles: read seed file %q: %w", path, err)
	}

	var seeds []vehicleSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed vehicles: parse seed file %q: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed vehicles: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT INTO vehicles (vehicle_id, type_name, max_weight_kg, max_volume_m3, status, unit, note)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("seed vehicles: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range seeds {
		if s.VehicleID == "" {
			return errors.New("seed vehicles: seed row with empty vehicle_id")
		}
		if _, err := stmt.Exec(s.VehicleID, s.TypeName, s.MaxWeightKg, s.MaxVolumeM3, s.Status, s.Unit, s.Note); err != nil {
			return fmt.Errorf("seed vehicles: insert %q: %w", s.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed vehicles: commit tx: %w", err)
	}

	return nil
}
