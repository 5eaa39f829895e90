package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"IdentityIntake/internal/adapters/httpserver"
	"IdentityIntake/internal/adapters/memqueue"
	"IdentityIntake/internal/adapters/natsqueue"
	"IdentityIntake/internal/adapters/postgres"
	"IdentityIntake/internal/adapters/s3"
	"IdentityIntake/internal/adapters/security"
	"IdentityIntake/internal/core/ports"
	"IdentityIntake/internal/core/services"
	"IdentityIntake/internal/shared/config"
	"IdentityIntake/internal/shared/logger"
)

func main() {
	// 1. Load configuration once; everything downstream gets it injected.
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	baseLogger := logger.New(cfg.AppEnv)
	baseLogger.Info().Str("app_env", cfg.AppEnv).Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Database: migrate, then open the pool the record store uses.
	if err := postgres.RunMigrations(ctx, cfg.DatabaseURL, &baseLogger); err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	db, err := postgres.NewDB(ctx, cfg.DatabaseURL, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// 4. Object store
	objects, err := s3.NewObjectStore(ctx, cfg.S3, cfg.Timeouts.Upload, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize object store")
	}

	// 5. Notification publisher: the broker when configured, otherwise
	// the in-process fallback for local development.
	var publisher ports.NotificationPublisher
	if cfg.Queue.URL != "" {
		publisher, err = natsqueue.NewPublisher(ctx, cfg.Queue, cfg.Timeouts.Publish, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize notification publisher")
		}
	} else {
		baseLogger.Warn().Msg("NATS_URL not set, using in-process publisher")
		publisher = memqueue.NewPublisher(&baseLogger)
	}
	defer publisher.Close()

	// 6. Core wiring
	hasher := security.NewSHAHasher(&baseLogger)
	records := postgres.NewUserRecordRepository(db, &baseLogger)
	intake := services.NewIntakeService(hasher, objects, records, publisher, cfg.S3.Bucket, cfg.Timeouts.DB, &baseLogger)

	// 7. HTTP surface
	handler := httpserver.NewHandler(intake, &baseLogger)
	server := httpserver.NewServer(cfg.HTTPAddr, handler, cfg.Timeouts.Shutdown, &baseLogger)

	baseLogger.Info().Msg("All services initialized successfully")

	if err := server.Start(ctx); err != nil {
		baseLogger.Fatal().Err(err).Msg("HTTP server failed")
	}

	baseLogger.Info().Msg("Server exited")
}
