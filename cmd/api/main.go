// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the RevenueGear HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Load the deck catalogue and start the deck directory watcher.
//  6. Wire HTTP handlers and the session sweeper.
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

	"github.com/taibuivan/revenuegear/internal/admin"
	"github.com/taibuivan/revenuegear/internal/api"
	"github.com/taibuivan/revenuegear/internal/contact"
	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/platform/config"
	"github.com/taibuivan/revenuegear/internal/platform/constants"
	"github.com/taibuivan/revenuegear/internal/platform/middleware"
	"github.com/taibuivan/revenuegear/internal/platform/migration"
	pgstore "github.com/taibuivan/revenuegear/internal/platform/postgres"
	redisstore "github.com/taibuivan/revenuegear/internal/platform/redis"
	"github.com/taibuivan/revenuegear/internal/platform/sec"
	"github.com/taibuivan/revenuegear/internal/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Background work (watcher, sweeper, rate limiter cleanup) stops with this context.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, redisstore.Settings{
		URL:      cfg.RedisURL,
		PoolSize: cfg.RedisPoolSize,
	}, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Decks ──────────────────────────────────────────────────────────
	deckService := deck.NewService(deck.NewPostgresRepository(pool), log, cfg.DefaultDeck)
	must(log, deckService.Load(startupCtx), "load decks")

	if cfg.DeckDir != "" {
		count, err := deckService.ImportDir(startupCtx, cfg.DeckDir)
		must(log, err, "import deck directory")
		log.Info("deck_directory_imported", slog.String("dir", cfg.DeckDir), slog.Int("count", count))

		go func() {
			if err := deckService.Watch(rootCtx, cfg.DeckDir); err != nil {
				log.Error("deck_watch_stopped", slog.Any("error", err))
			}
		}()
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	sessionService := session.NewService(deckService, session.NewRedisRepository(rdb), log, session.Options{
		Timing: cfg.Timing(),
		TTL:    cfg.SessionTTL,
	})
	go sessionService.RunSweeper(rootCtx, constants.SessionSweepInterval)

	var mailer contact.Mailer
	if cfg.EmailUser == "" {
		log.Warn("smtp_relay_disabled", slog.String("reason", "EMAIL_USER is empty; relayed leads are only logged"))
		mailer = contact.NewLogMailer(log)
	} else {
		smtpMailer, err := contact.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPassword)
		must(log, err, "initialize smtp relay")
		mailer = smtpMailer
	}

	contactService := contact.NewService(contact.NewPostgresRepository(pool), mailer, log, contact.Options{
		From:            cfg.EmailUser,
		Recipient:       cfg.ContactRecipient,
		MailtoRecipient: cfg.MailtoRecipient,
	})
	contactLimiter := middleware.NewIPLimiter(rootCtx, constants.ContactRateLimitRPS, constants.ContactRateLimitBurst)

	adminService := admin.NewService(admin.Credentials{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	}, jwtSvc, log, constants.AdminTokenTTL)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
		ActiveSessions: sessionService.Len,
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Decks:     deck.NewHandler(deckService),
		Readers:   session.NewHandler(sessionService),
		Contact:   contact.NewHandler(contactService, contactLimiter),
		Admin:     admin.NewHandler(adminService),
	}

	server := api.NewServer(rootCtx, api.Settings{Port: cfg.ServerPort, CORS: cfg}, log, jwtSvc, handlers)

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

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		rootCancel()
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", "revenuegear"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
