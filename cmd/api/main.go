// Copyright (c) 2026 Savora. All rights reserved.

// Command api is the entry point for the Savora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Wire the access resolver and domain services.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/api"
	"github.com/savora-app/savora/internal/platform/config"
	"github.com/savora-app/savora/internal/platform/constants"
	"github.com/savora-app/savora/internal/platform/migration"
	pgstore "github.com/savora-app/savora/internal/platform/postgres"
	"github.com/savora-app/savora/internal/platform/sec"
	"github.com/savora-app/savora/internal/recipe"
	"github.com/savora-app/savora/internal/upload"
	"github.com/savora-app/savora/internal/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Savora] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Session Tokens ─────────────────────────────────────────────────
	tokenCodec, err := sec.NewTokenCodec(cfg.TokenSecret, constants.AuthIssuer, cfg.TokenTTL)
	must(log, err, "initialize token codec")

	// ── 6. Image Host ─────────────────────────────────────────────────────
	imageHost, err := upload.NewS3Host(startupCtx, upload.S3HostConfig{
		Bucket:        cfg.ImageBucket,
		Region:        cfg.ImageRegion,
		AccessKey:     cfg.ImageAccessKey,
		SecretKey:     cfg.ImageSecretKey,
		Endpoint:      cfg.ImageEndpoint,
		PublicBaseURL: cfg.ImagePublicBaseURL,
	})
	must(log, err, "initialize image host")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := user.NewPostgresRepository(pool)
	recipeRepository := recipe.NewPostgresRepository(pool)

	// The resolver turns bearer tokens into actors; every protected route
	// group shares this single instance.
	resolver := access.NewResolver(tokenCodec, user.NewActorSource(userRepository))

	userService := user.NewService(userRepository, recipeRepository, tokenCodec, log)
	recipeService := recipe.NewService(recipeRepository, userRepository, log)
	uploadService := upload.NewService(imageHost, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		User:      user.NewHandler(userService, resolver),
		Recipe:    recipe.NewHandler(recipeService, resolver),
		Upload:    upload.NewHandler(uploadService, resolver),
	}

	server := api.NewServer(cfg, log, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
