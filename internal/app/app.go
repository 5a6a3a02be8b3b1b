// Package app assembles the branch search pipeline from configuration.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/bluehands/branchfinder/internal/adapters/cache"
	"github.com/bluehands/branchfinder/internal/adapters/database"
	"github.com/bluehands/branchfinder/internal/adapters/events"
	"github.com/bluehands/branchfinder/internal/adapters/search"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/postgres"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/redis"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/typesense"
	"github.com/bluehands/branchfinder/internal/infrastructure/observability"
	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/rs/zerolog/log"
)

const memoryCacheSize = 10000

// App holds the wired search pipeline and the clients behind it.
// Any client may be nil when its dependency was unreachable or disabled.
type App struct {
	Search   *services.BranchSearchService
	Branches *database.CachedBranchAdapter
	Cache    providers.CacheProvider

	Postgres  *postgres.Client
	Redis     *redis.Client
	Typesense *typesense.Client
	Events    *events.RedisEventBus

	closers []func() error
}

// New connects to every configured dependency and builds the search service.
// It never fails: an unreachable database yields a pipeline that reports
// repository_unavailable, and a missing Redis falls back to an in-memory cache.
func New(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) *App {
	a := &App{}

	var store repositories.BranchRepository
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("branch database unavailable, searches will report it")
		store = database.NewUnavailableBranchAdapter(err)
	} else {
		a.Postgres = pgClient
		a.closers = append(a.closers, pgClient.Close)
		if cfg.Database.MigrateOnStart {
			if ver, err := pgClient.Migrate(); err != nil {
				log.Error().Err(err).Msg("schema migration failed")
			} else {
				log.Info().Uint("version", ver).Msg("schema migrated")
			}
		}
		store = database.NewBranchAdapter(pgClient)
	}

	if cfg.Search.Backend == config.BackendTypesense && a.Postgres != nil {
		store = a.withTypesense(ctx, cfg, store)
	}

	a.Cache = a.newCache(ctx, cfg)
	a.Branches = database.NewCachedBranchAdapter(store, a.Cache, cfg.Search.RegionsTTL, cfg.Search.ResultsTTL, metrics)

	sessions := services.NewPageSessionService(cache.NewPageSessionStore(a.Cache, cfg.Search.SessionTTL))
	a.Search = services.NewBranchSearchService(a.Branches, sessions, SearchOptions(cfg.Search), metrics)

	return a
}

func (a *App) withTypesense(ctx context.Context, cfg *config.Config, primary repositories.BranchRepository) repositories.BranchRepository {
	if !cfg.Typesense.Enabled {
		return primary
	}
	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("typesense unavailable, searching postgres directly")
		return primary
	}
	a.Typesense = tsClient
	log.Info().Str("collection", typesense.BranchesCollection).Msg("serving searches from typesense")
	return search.NewTypesenseBranchAdapter(tsClient, primary)
}

func (a *App) newCache(ctx context.Context, cfg *config.Config) providers.CacheProvider {
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err == nil {
			a.Redis = redisClient
			a.closers = append(a.closers, redisClient.Close)
			a.Events = events.NewRedisEventBus(redisClient)
			a.closers = append(a.closers, a.Events.Close)
			return cache.NewRedisAdapter(redisClient)
		}
		log.Warn().Err(err).Msg("redis unavailable, caching in memory")
	}

	mem := cache.NewMemoryAdapter(memoryCacheSize, longestTTL(cfg.Search))
	a.closers = append(a.closers, func() error {
		mem.Close()
		return nil
	})
	return mem
}

// longestTTL bounds in-memory entries by the longest configured lifetime
func longestTTL(cfg config.SearchConfig) time.Duration {
	return max(cfg.RegionsTTL, cfg.ResultsTTL, cfg.SessionTTL)
}

// ListenForChanges invalidates the branch cache whenever another process
// publishes a branch change. Without Redis there is no bus and it does nothing.
func (a *App) ListenForChanges() error {
	if a.Events == nil {
		return nil
	}
	svc := services.NewCacheInvalidationService(a.Branches, a.Events)
	if err := svc.Start(); err != nil {
		return err
	}
	a.closers = append(a.closers, func() error {
		svc.Stop()
		return nil
	})
	return nil
}

// SearchOptions maps search configuration onto service options
func SearchOptions(cfg config.SearchConfig) services.SearchOptions {
	return services.SearchOptions{
		PageSize:        cfg.PageSize,
		BlockSize:       cfg.BlockSize,
		FallbackCenter:  entities.Coordinate{Latitude: cfg.FallbackLat, Longitude: cfg.FallbackLng},
		FallbackRegions: cfg.FallbackRegions,
		RequireCriteria: cfg.RequireCriteria,
	}
}

// Close releases every client in reverse order of creation
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
