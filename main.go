// File: /main.go
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"chatmini-api/config"
	"chatmini-api/database"
	"chatmini-api/jobs"
	"chatmini-api/logging"
	"chatmini-api/middleware"
	"chatmini-api/routes"
	"chatmini-api/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Init(cfg.Env)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Warn().Err(err).Msg("failed to seed database")
	}

	if cfg.Env == "dev" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	hub := ws.NewHub()
	routes.SetupRoutes(router, db, cfg, hub)

	// Periodic expired-session sweep
	cleanupJob := jobs.NewSessionCleanupJob(db, 5*time.Minute)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	log.Info().Str("port", cfg.Port).Msg("starting chat-mini API server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
