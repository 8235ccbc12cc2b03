// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

// Command api is the entry point for the Reelo HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
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

	"github.com/minhle/reelo/internal/api"
	"github.com/minhle/reelo/internal/comment"
	"github.com/minhle/reelo/internal/feed"
	"github.com/minhle/reelo/internal/platform/config"
	"github.com/minhle/reelo/internal/platform/constants"
	"github.com/minhle/reelo/internal/platform/mail"
	"github.com/minhle/reelo/internal/platform/migration"
	pgstore "github.com/minhle/reelo/internal/platform/postgres"
	redisstore "github.com/minhle/reelo/internal/platform/redis"
	"github.com/minhle/reelo/internal/platform/sec"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/internal/users/profile"
	"github.com/minhle/reelo/internal/video"
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

	log.Info("[Reelo] service_initializing")

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

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Outbound Mail ───────────────────────────────────────
	tokenService := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.JWTTTL)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	cookieTTL := time.Duration(cfg.JWTCookieTTLDays) * 24 * time.Hour
	secureCookies := cfg.IsProduction()

	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService, mailer, cfg.BaseURL)
	authHandler := auth.NewHandler(authService, cookieTTL, secureCookies)

	profileRepository := profile.NewProfileRepository(pool)
	profileService := profile.NewService(profileRepository, userRepository, log)
	profileHandler := profile.NewHandler(profileService, authService)

	videoRepository := video.NewVideoRepository(pool)
	videoService := video.NewService(videoRepository, log)
	videoHandler := video.NewHandler(videoService, authService)

	commentRepository := comment.NewCommentRepository(pool)
	commentService := comment.NewService(commentRepository)
	commentHandler := comment.NewHandler(commentService, authService)

	feedRepository := feed.NewFeedRepository(pool)
	sampleCache := feed.NewSampleCache(rdb)
	feedService := feed.NewService(feedRepository, sampleCache, log)
	feedHandler := feed.NewHandler(feedService, authService, secureCookies)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Profile:   profileHandler,
		Video:     videoHandler,
		Comment:   commentHandler,
		Feed:      feedHandler,
	}

	// The server context outlives startup: it bounds the lifetime of the
	// rate limiter's cleanup goroutine.
	server := api.NewServer(context.Background(), cfg, log, handlers)

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
