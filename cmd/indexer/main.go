package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bluehands/branchfinder/internal/adapters/database"
	"github.com/bluehands/branchfinder/internal/app"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/postgres"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/typesense"
	"github.com/bluehands/branchfinder/internal/infrastructure/observability"
	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("branchfinder-indexer", cfg.Server.Env, cfg.Log.Level)

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	if os.Getenv("RESET_TYPESENSE") == "true" {
		reset = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("next_in", interval).Msg("reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		return err
	}

	indexed, err := indexBranches(ctx, database.NewBranchAdapter(pgClient), tsClient, reset)
	if err != nil {
		return err
	}
	log.Info().Int("branches", indexed).Msg("branches indexed")

	app.Announce(ctx, cfg, entities.BranchEventReindexed, "indexer", indexed)
	return nil
}
