// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Archis03007/linked-notes-app/internal/api"
	"github.com/Archis03007/linked-notes-app/internal/auth"
	"github.com/Archis03007/linked-notes-app/internal/cache"
	"github.com/Archis03007/linked-notes-app/internal/mcpserver"
	"github.com/Archis03007/linked-notes-app/internal/noteservice"
	"github.com/Archis03007/linked-notes-app/internal/session"
	"github.com/Archis03007/linked-notes-app/internal/sse"
	"github.com/Archis03007/linked-notes-app/internal/store"
	pkgconfig "github.com/Archis03007/linked-notes-app/pkg/config"
)

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger with a runtime-adjustable level.
	levelVar := new(slog.LevelVar)
	levelVar.Set(cfg.App.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelVar,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("cache_path", cfg.Cache.Path),
		slog.Duration("debounce", cfg.Editor.Debounce()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize SQLite store.
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	// SSE broker.
	broker := sse.NewBroker(cfg.Editor.SSERefresh())
	defer broker.Close()

	// Local snapshot cache, service, and the editing session.
	snap := cache.New(cfg.Cache.Path)
	authp := auth.Static{ID: cfg.Auth.OwnerID}
	svc := noteservice.NewService(db, snap, broker)
	sess := session.New(svc, snap, broker, authp, cfg.Editor.Debounce())
	defer sess.Close()

	if err := sess.Load(ctx); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	apiRouter := api.NewRouter(sess, svc, authp, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Hot reload of tunable settings.
	if app.configFile != "" {
		g.Go(func() error {
			return pkgconfig.Watch(gCtx, app.configFile, func(fresh *Config) {
				levelVar.Set(fresh.App.LogLevel)
				sess.SetDebounce(fresh.Editor.Debounce())
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the note tools over MCP stdio instead of HTTP.
func RunMCP(cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	svc := noteservice.NewService(db, cache.New(cfg.Cache.Path), nil)
	srv := mcpserver.New(svc, auth.Static{ID: cfg.Auth.OwnerID})
	logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
