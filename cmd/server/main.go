package main

import (
	"log"

	"github.com/alkime/podcasts/internal/config"
	"github.com/alkime/podcasts/internal/logger"
	"github.com/alkime/podcasts/internal/podcast"
	"github.com/alkime/podcasts/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	appLog := logger.SetupLogger(cfg)

	// Log startup information
	appLog.Info("Starting podcasts server",
		"env", cfg.Env,
		"port", cfg.Port,
		"base_path", cfg.BasePath,
		"base_origin", cfg.BaseOrigin,
	)

	client := podcast.NewClient(cfg.BaseOrigin, podcast.WithLogger(appLog))

	srv := server.New(cfg, appLog, client)
	if err := server.Run(srv); err != nil {
		appLog.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
