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

	"github.com/starford/raido/internal/api"
	"github.com/starford/raido/internal/bridge"
	"github.com/starford/raido/internal/importer"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/projectservice"
	"github.com/starford/raido/internal/sse"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/store"
	"github.com/starford/raido/internal/view"
)

// buildAdapter constructs the capability adapter for the configured
// backend. The returned closer is nil for backends with nothing to
// release. Selection happens once here; nothing downstream branches on
// the backend again.
func buildAdapter(cfg *Config, logger *slog.Logger) (projectservice.Adapter, *projectservice.Service, func() error, error) {
	switch cfg.Store.Backend {
	case BackendMemory:
		svc := projectservice.NewService(store.NewMemory())
		return svc, svc, nil, nil

	case BackendSQLite:
		st, err := store.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init store: %w", err)
		}
		svc := projectservice.NewService(st)
		return svc, svc, st.Close, nil

	case BackendBridge:
		// A local in-memory stand-in picks up writes whenever the
		// remote is unreachable.
		local := projectservice.NewService(store.NewMemory())
		remote := bridge.New(cfg.Store.Bridge.URL, cfg.Store.Bridge.Token)
		logger.Info("bridge backend selected", slog.String("url", cfg.Store.Bridge.URL))
		return projectservice.NewFallback(remote, local), local, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_backend", cfg.Store.Backend),
		slog.String("log_level", cfg.App.LogLevel.String()))

	adapter, local, closeStore, err := buildAdapter(cfg, logger)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				logger.Error("store close error", slog.String("error", err.Error()))
			}
		}()
	}

	// SSE broker, fed by service change events.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()
	local.SetNotify(broker.PublishChange)

	viewCfg := view.Config{ReviewBucket: cfg.View.ReviewBucket}
	apiRouter := api.NewRouter(adapter, viewCfg, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

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

	// Start snapshot importer when a drop directory is configured.
	if cfg.Import.Enabled() {
		drop, err := storage.NewFS(cfg.Import.Dir)
		if err != nil {
			return fmt.Errorf("init import dir: %w", err)
		}
		imp := importer.New(drop, local, logger)
		g.Go(func() error {
			imp.Sweep(gCtx)
			return imp.Watch(gCtx, cfg.Import.Dir)
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

// RunMCP starts the MCP server on stdio against the configured backend.
// Logs go to stderr so stdout stays clean for the protocol stream.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	adapter, _, closeStore, err := buildAdapter(cfg, logger)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				logger.Error("store close error", slog.String("error", err.Error()))
			}
		}()
	}

	srv := mcpserver.New(adapter, view.Config{ReviewBucket: cfg.View.ReviewBucket})
	logger.Info("MCP server starting on stdio", slog.String("store_backend", cfg.Store.Backend))
	return srv.ServeStdio()
}
