// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the MADR HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when REDIS_URL is set.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/eduardoklosowski/madr/internal/api"
	"github.com/eduardoklosowski/madr/internal/core/author"
	"github.com/eduardoklosowski/madr/internal/core/book"
	"github.com/eduardoklosowski/madr/internal/platform/config"
	"github.com/eduardoklosowski/madr/internal/platform/constants"
	"github.com/eduardoklosowski/madr/internal/platform/metrics"
	"github.com/eduardoklosowski/madr/internal/platform/migration"
	pgstore "github.com/eduardoklosowski/madr/internal/platform/postgres"
	redisstore "github.com/eduardoklosowski/madr/internal/platform/redis"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
	"github.com/eduardoklosowski/madr/internal/users/account"
	"github.com/eduardoklosowski/madr/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A deadline catches misconfiguration quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.DefaultOptions(), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	health := api.HealthDependencies{Database: pgstore.Checker{Pool: pool}}
	metric := metrics.New()
	authOptions := []auth.ServiceOption{auth.WithLoginRecorder(metric)}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		health.Extra = append(health.Extra, redisstore.Checker{Client: rdb})
		authOptions = append(authOptions, auth.WithAttemptGuard(
			auth.NewRedisAttemptGuard(rdb, cfg.LoginMaxAttempts, cfg.LoginLockoutWindow),
		))
	} else {
		log.Warn("login_throttling_disabled", slog.String("reason", "REDIS_URL not set"))
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	if cfg.RunMigrations {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SecretKey, cfg.AccessTokenAlgorithm, cfg.AccessTokenTTL())
	must(log, err, "initialize token service")

	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokens, log, authOptions...)

	info, liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Info:      info,
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metric,
		Token:     auth.NewHandler(authService),
		Account:   account.NewHandler(account.NewService(userRepository, log)),
		Author:    author.NewHandler(author.NewService(author.NewPostgresRepository(pool), log)),
		Book:      book.NewHandler(book.NewService(book.NewPostgresRepository(pool), log)),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, authService, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "madr"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
