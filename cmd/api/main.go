package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bluehands/branchfinder/internal/adapters/export"
	"github.com/bluehands/branchfinder/internal/api/handlers"
	"github.com/bluehands/branchfinder/internal/api/routes"
	"github.com/bluehands/branchfinder/internal/app"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/infrastructure/observability"
	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env, cfg.Log.Level)

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	application := app.New(ctx, cfg, metrics)
	defer func() {
		if err := application.Close(); err != nil {
			log.Error().Err(err).Msg("error closing clients")
		}
	}()

	if application.Postgres != nil {
		go func() {
			if _, err := services.NewCacheWarmingService(application.Branches).WarmCache(ctx); err != nil {
				log.Warn().Err(err).Msg("cache warming failed")
			}
		}()
	}

	if err := application.ListenForChanges(); err != nil {
		log.Warn().Err(err).Msg("branch change events disabled")
	}

	checks := map[string]handlers.HealthCheck{}
	if application.Postgres != nil {
		checks["postgres"] = application.Postgres.Ping
	} else {
		checks["postgres"] = func(context.Context) error { return fmt.Errorf("not connected") }
	}
	if application.Redis != nil {
		checks["redis"] = application.Redis.Ping
	}

	router := routes.NewRouter(
		handlers.NewBranchHandler(application.Search, export.NewExcelExporter()),
		handlers.NewHealthHandler(checks),
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("backend", cfg.Search.Backend).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
