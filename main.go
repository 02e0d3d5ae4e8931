// main.go
package main

import (
	"context"
	"log"
	"time"

	"movie-booking/cmd"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/wire"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/database"
	"movie-booking/pkg/events"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	// Redis opsional: tanpa Redis, cache mati dan rate limit pakai memory
	rdb, err := cache.NewRedisClient(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without it", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	publisher, err := events.NewPublisher(config.RabbitMQ.URL, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, events disabled", zap.Error(err))
		publisher = events.NopPublisher{}
	}
	defer publisher.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, wire.Infra{Redis: rdb, Publisher: publisher}, config, logger)

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	cmd.StartSessionCleanup(cleanupCtx, repos.Session, time.Hour, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
