// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

// Command api is the entry point for the Travia HTTP API server.
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

	"github.com/minhngo/travia/internal/api"
	blogcategory "github.com/minhngo/travia/internal/blog/category"
	blogpost "github.com/minhngo/travia/internal/blog/post"
	mediafile "github.com/minhngo/travia/internal/media/file"
	mediafolder "github.com/minhngo/travia/internal/media/folder"
	medialibrary "github.com/minhngo/travia/internal/media/library"
	"github.com/minhngo/travia/internal/menu"
	"github.com/minhngo/travia/internal/platform/config"
	"github.com/minhngo/travia/internal/platform/constants"
	"github.com/minhngo/travia/internal/platform/migration"
	pgstore "github.com/minhngo/travia/internal/platform/postgres"
	redisstore "github.com/minhngo/travia/internal/platform/redis"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/internal/procedure"
	tourcategory "github.com/minhngo/travia/internal/tour/category"
	tourdeparture "github.com/minhngo/travia/internal/tour/departure"
	tourdestination "github.com/minhngo/travia/internal/tour/destination"
	tourdetail "github.com/minhngo/travia/internal/tour/detail"
	"github.com/minhngo/travia/internal/users/account"
	"github.com/minhngo/travia/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "travia"))
	slog.SetDefault(log)

	log.Info("[Travia] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "travia"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context outlives startup: background middleware (rate limiter
	// cleanup) is tied to it.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
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

	// ── 6. Security Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	uploadStorage, err := mediafile.NewLocalStorage(cfg.UploadDir)
	must(log, err, "initialize upload storage")

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
	// Identity & access
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	verifyTokenRepository := auth.NewVerificationTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, verifyTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(
		account.NewAccountRepository(pool),
		account.NewSessionRepository(pool),
		log,
	)
	accountHandler := account.NewHandler(accountService)

	// Blog
	blogCategoryRepository := blogcategory.NewPostgresRepository(pool)
	blogCategoryService := blogcategory.NewService(blogCategoryRepository, log)
	blogCategoryHandler := blogcategory.NewHandler(blogCategoryService)

	blogPostService := blogpost.NewService(blogpost.NewPostgresRepository(pool), blogCategoryRepository, log)
	blogPostHandler := blogpost.NewHandler(blogPostService)

	// Tours
	tourCategoryRepository := tourcategory.NewPostgresRepository(pool)
	tourCategoryService := tourcategory.NewService(tourCategoryRepository, log)
	tourCategoryHandler := tourcategory.NewHandler(tourCategoryService)

	tourDetailService := tourdetail.NewService(tourdetail.NewPostgresRepository(pool), tourCategoryRepository, log)
	tourDetailHandler := tourdetail.NewHandler(tourDetailService)

	destinationService := tourdestination.NewService(tourdestination.NewPostgresRepository(pool), log)
	destinationHandler := tourdestination.NewHandler(destinationService)

	departureService := tourdeparture.NewService(tourdeparture.NewPostgresRepository(pool), log)
	departureHandler := tourdeparture.NewHandler(departureService)

	// Media library
	folderService := mediafolder.NewService(mediafolder.NewPostgresRepository(pool), log)
	folderHandler := mediafolder.NewHandler(folderService)

	fileService := mediafile.NewService(mediafile.NewPostgresRepository(pool), uploadStorage, log)
	fileHandler := mediafile.NewHandler(fileService)

	libraryService := medialibrary.NewService(medialibrary.NewPostgresRepository(pool), log)
	libraryHandler := medialibrary.NewHandler(libraryService)

	// Site
	menuService := menu.NewService(menu.NewPostgresRepository(pool), log)
	menuHandler := menu.NewHandler(menuService)

	procedureService := procedure.NewService(procedure.NewPostgresRunner(pool), log)
	procedureHandler := procedure.NewHandler(procedureService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Account:      accountHandler,
		BlogCategory: blogCategoryHandler,
		BlogPost:     blogPostHandler,
		TourCategory: tourCategoryHandler,
		TourDetail:   tourDetailHandler,
		Destination:  destinationHandler,
		Departure:    departureHandler,
		MediaFolder:  folderHandler,
		MediaFile:    fileHandler,
		MediaLibrary: libraryHandler,
		Menu:         menuHandler,
		Procedure:    procedureHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

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
