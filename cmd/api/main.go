// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Readlog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire stores, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/readlog/internal/api"
	"github.com/taibuivan/readlog/internal/core/book"
	"github.com/taibuivan/readlog/internal/core/catalog"
	"github.com/taibuivan/readlog/internal/library/note"
	"github.com/taibuivan/readlog/internal/library/progress"
	"github.com/taibuivan/readlog/internal/library/stats"
	"github.com/taibuivan/readlog/internal/platform/config"
	"github.com/taibuivan/readlog/internal/platform/constants"
	"github.com/taibuivan/readlog/internal/platform/middleware"
	"github.com/taibuivan/readlog/internal/platform/migration"
	pgstore "github.com/taibuivan/readlog/internal/platform/postgres"
	redisstore "github.com/taibuivan/readlog/internal/platform/redis"
	"github.com/taibuivan/readlog/internal/platform/sec"
	"github.com/taibuivan/readlog/internal/users/account"
	"github.com/taibuivan/readlog/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "readlog"))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})).With(slog.String("app", "readlog"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Misconfiguration should fail fast instead of hanging on a dial.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token service")

	authLimiter, err := middleware.NewRedisWindowLimiter(rdb, constants.RedisPrefixAuthThrottle,
		constants.AuthThrottleLimit, constants.AuthThrottleWindow, log)
	must(log, err, "initialize auth throttle")

	// Process-scoped context; cancelled on shutdown to stop background sweepers.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	ipLimiter := middleware.NewIPRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	go ipLimiter.RunCleanup(appCtx)

	// ── 7. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	catalogSource := catalog.NewCachedSource(
		catalog.NewGoogleBooks(cfg.CatalogBaseURL, cfg.CatalogAPIKey, cfg.CatalogTimeout, log),
		catalog.NewRedisCache(rdb),
		cfg.SearchCacheTTL,
		log,
	)

	bookStore := book.NewPostgresStore(pool)

	progressService := progress.NewService(progress.NewPostgresStore(pool), bookStore, log)
	bookService := book.NewService(bookStore, catalogSource, progressService, log)
	noteService := note.NewService(note.NewPostgresStore(pool), bookStore, log)
	statsService := stats.NewService(stats.NewPostgresStore(pool))

	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewSessionRepository(pool),
		tokenService,
		log,
	)
	accountService := account.NewService(account.NewProfileRepository(pool), account.NewSessionRepository(pool), log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, middleware.Throttle(authLimiter), !cfg.IsDevelopment()),
		Account:   account.NewHandler(accountService),
		Book:      book.NewHandler(bookService),
		Progress:  progress.NewHandler(progressService),
		Note:      note.NewHandler(noteService),
		Stats:     stats.NewHandler(statsService),
	}

	server := api.NewServer(cfg, log, tokenService, ipLimiter, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	appCancel()

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Only used during startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
