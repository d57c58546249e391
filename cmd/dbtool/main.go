package main

import (
	"os"
	"strings"

	"dispatch-planner-service/internal/adapters/repositories"
	"dispatch-planner-service/internal/config"
	"dispatch-planner-service/internal/logger"
	"dispatch-planner-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool initializes the schema and seeds the fleet master. Safe to re-run:
// seeding is skipped when the vehicles table already has rows.
func main() {
	_ = godotenv.Load()

	log := logger.New(config.Get("APP_ENV", "development"))

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/vehicles.json")
	log.Info().Str("path", seedPath).Msg("seeding fleet master")
	if err := repositories.SeedFromJSON(database, seedPath); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seeding complete")
}
