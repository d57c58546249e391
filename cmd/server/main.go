package main

import (
	"net/http"
	"time"

	"dispatch-planner-service/internal/adapters/cache"
	"dispatch-planner-service/internal/adapters/planner"
	"dispatch-planner-service/internal/adapters/repositories"
	"dispatch-planner-service/internal/adapters/travel"
	"dispatch-planner-service/internal/api"
	"dispatch-planner-service/internal/config"
	"dispatch-planner-service/internal/logger"
	"dispatch-planner-service/internal/platform/db"
	"dispatch-planner-service/internal/ports"
	"dispatch-planner-service/internal/services"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Google Maps, Gemini, Redis) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("production")
		bootLog.Fatal().Err(err).Msg("configuration")
	}

	log := logger.New(cfg.Environment)

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	// Initialize schema and seed demo fleet on startup for local runs.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}
	if err := repositories.SeedFromJSON(database, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("seed fleet")
	}

	matrixProvider, err := travel.NewMatrixProvider(cfg.MapsAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("matrix provider")
	}

	// Redis is optional: without it every run pays the full matrix fetch.
	var provider ports.TravelMatrixProvider = matrixProvider
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		provider = cache.NewCachingMatrixProvider(matrixProvider, cache.NewRedisMatrixCache(rdb))
		log.Info().Str("addr", cfg.RedisAddr).Msg("matrix cache enabled")
	}

	generator, err := planner.NewGeminiPlanGenerator(cfg.GeminiAPIKey, cfg.GeminiModel, planner.DefaultGenerationConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("plan generator")
	}

	fleet := repositories.NewPostgresVehicleRepository(database)
	session := services.NewSessionState()
	routePlanner := services.NewPlanner(fleet, provider, generator, session)

	router := api.NewRouter(log, routePlanner, session, fleet)

	// Timeouts are tuned for generation latency: a full plan can take well
	// over a minute on long multi-vehicle routes.
	log.Info().Str("port", cfg.Port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
