// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/bigganboloy/bigganboloy/internal/assist"
	"github.com/bigganboloy/bigganboloy/internal/bus"
	"github.com/bigganboloy/bigganboloy/internal/cache"
	"github.com/bigganboloy/bigganboloy/internal/config"
	"github.com/bigganboloy/bigganboloy/internal/feed"
	"github.com/bigganboloy/bigganboloy/internal/handler"
	"github.com/bigganboloy/bigganboloy/internal/identity"
	"github.com/bigganboloy/bigganboloy/internal/logging"
	"github.com/bigganboloy/bigganboloy/internal/middleware"
	"github.com/bigganboloy/bigganboloy/internal/scheduler"
	"github.com/bigganboloy/bigganboloy/internal/session"
	"github.com/bigganboloy/bigganboloy/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "bigganboloy - বিজ্ঞানবলয় science blog server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BB_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BB_DB_PATH           SQLite database path (default: ./data/bigganboloy.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BB_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BB_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BB_ADMIN_EMAIL       Moderator account email\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BB_OPENAI_API_KEY    OpenAI key for the writing assistant (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BB_REDIS_URL         Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("bigganboloy %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.AdminEmail); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db, cfg.AdminEmail); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	// Cache: Redis when configured, in-memory otherwise
	cacheCfg := cache.DefaultConfig()
	cacheCfg.RedisURL = cfg.RedisURL
	cacheCfg.Prefix = cfg.CachePrefix
	cacheCfg.DefaultTTL = time.Duration(cfg.CacheTTL) * time.Second
	cacheCfg.MaxSize = cfg.CacheMaxSize
	appCache, err := cache.New(cacheCfg)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache ready", "backend", map[bool]string{true: "redis", false: "memory"}[cfg.UseRedisCache()])

	// Post change bus and feed synchronizer
	postBus := bus.New(logger)
	defer postBus.Close()

	queries := store.New(db)
	feedSync := feed.NewSynchronizer(queries, postBus, appCache, logger)
	feedSync.Start(ctx)
	defer feedSync.Stop()

	// AI writing assistant (disabled without an API key)
	var generator *assist.Generator
	if cfg.AssistEnabled() {
		generator = assist.NewGenerator(assist.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), logger)
		slog.Info("writing assistant enabled", "model", cfg.OpenAIModel)
	} else {
		slog.Info("writing assistant disabled, no API key configured")
	}

	// Background jobs
	sched := scheduler.New(db, feedSync, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	sessionManager := session.New(db, cfg.IsDevelopment())
	resolver := identity.NewResolver(queries, cfg.AdminEmail, logger)

	r := buildRouter(cfg, db, sessionManager, resolver, feedSync, appCache, postBus, generator, logger)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func buildRouter(
	cfg *config.Config,
	db *sql.DB,
	sm *scs.SessionManager,
	resolver *identity.Resolver,
	feedSync *feed.Synchronizer,
	appCache cache.Cache,
	postBus *bus.Bus,
	generator *assist.Generator,
	logger *slog.Logger,
) chi.Router {
	authH := handler.NewAuthHandler(db, sm, resolver, logger)
	feedH := handler.NewFeedHandler(feedSync, appCache, logger)
	postH := handler.NewPostHandler(db, feedSync, postBus, logger)
	commentH := handler.NewCommentHandler(db, feedSync, postBus, logger)
	assistH := handler.NewAssistHandler(generator, logger)
	profileH := handler.NewProfileHandler(db, logger)
	adminH := handler.NewAdminHandler(db, postBus, logger)
	healthH := handler.NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(sm.LoadAndSave)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(middleware.LoadUser(sm, db))

	r.Get("/health", healthH.Health)

	r.Route("/auth", func(r chi.Router) {
		// Tight per-IP budget on the credential endpoints
		r.With(middleware.IPRateLimit(1, 5)).Post("/register", authH.Register)
		r.With(middleware.IPRateLimit(1, 5)).Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)
		r.Get("/me", authH.Me)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.IPRateLimit(20, 40))

		r.Get("/feed", feedH.Feed)
		r.Get("/posts/{id}", postH.Get)
		r.Post("/posts/{id}/view", postH.View)
		r.Get("/posts/{id}/comments", commentH.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser())

			r.Post("/posts", postH.Create)
			r.Post("/posts/{id}/comments", commentH.Create)
		})

		// The profile page redirects signed-out visitors home rather
		// than showing an inline message.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireProfile())

			r.Get("/profile", profileH.Get)
			r.Put("/profile", profileH.Update)
		})

		// Like has its own gate so the denial carries the like-specific
		// message.
		r.Post("/posts/{id}/like", postH.Like)

		r.Route("/assist", func(r chi.Router) {
			r.Use(middleware.RequireUser())
			r.Use(middleware.UserRateLimit(0.2, 3))

			r.Post("/draft", assistH.Draft)
			r.Post("/tags", assistH.Tags)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Get("/posts", adminH.Posts)
			r.Get("/stats", adminH.Stats)
			r.Post("/posts/{id}/approve", adminH.Approve)
			r.Delete("/posts/{id}", adminH.Delete)
		})
	})

	return r
}
