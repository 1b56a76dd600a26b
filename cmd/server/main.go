package main

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

	"nursery-locator/internal/adapters/boundary"
	"nursery-locator/internal/adapters/distance"
	"nursery-locator/internal/adapters/repositories"
	"nursery-locator/internal/adapters/sessions"
	"nursery-locator/internal/api"
	"nursery-locator/internal/api/handlers"
	"nursery-locator/internal/config"
	"nursery-locator/internal/platform/db"
	"nursery-locator/internal/platform/logging"
	"nursery-locator/internal/platform/telemetry"
	"nursery-locator/internal/ports"
	"nursery-locator/internal/services"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "nursery-locator"

var version = "dev"

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat, nil)
	if envErr != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry.InitMetrics()

	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer(ctx, serviceName, version, os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				slog.Warn("tracer shutdown failed", "err", err)
			}
		}()
	}

	repo, closeRepo, err := openFacilities(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	region, err := boundary.Load(cfg.BoundaryPath)
	if err != nil {
		return err
	}
	if region == nil {
		slog.Info("no boundary configured")
	}

	calc, err := distance.New(cfg.DistanceMethod)
	if err != nil {
		return err
	}

	store, closeStore, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	hub := handlers.NewViewHub()
	locator, err := services.NewLocator(ctx, services.LocatorConfig{
		Facilities: repo,
		Boundary:   region,
		Calculator: calc,
		Sessions:   store,
		Fallback: services.Fallback{
			Coordinates: cfg.Fallback(),
			Label:       cfg.FallbackLabel,
		},
		Publisher: hub,
	})
	if err != nil {
		return err
	}
	slog.Info("facilities loaded",
		"count", len(locator.Facilities()),
		"backend", cfg.FacilityBackend,
		"distance", cfg.DistanceMethod,
		"sessions", cfg.SessionBackend,
	)

	var handler http.Handler = api.NewRouter(api.RouterConfig{
		Locator:     locator,
		Hub:         hub,
		CORSOrigins: cfg.CORSOrigins,
	})
	if cfg.TracingEnabled {
		handler = otelhttp.NewHandler(handler, serviceName)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openFacilities(ctx context.Context, cfg *config.Config) (ports.FacilityRepository, func(), error) {
	switch cfg.FacilityBackend {
	case config.BackendPostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewPostgresFacilityRepository(conn), func() { _ = conn.Close() }, nil
	default:
		repo, err := repositories.NewSpreadsheetFacilityRepository(cfg.FacilitySource, cfg.FacilitySheet)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}
}

func openSessions(ctx context.Context, cfg *config.Config) (ports.SessionStore, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionsRedis:
		rdb, err := sessions.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return sessions.NewRedisStore(rdb, cfg.SessionTTL), func() { _ = rdb.Close() }, nil
	default:
		return sessions.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}
}
