package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	"github.com/rs/zerolog/log"
)

// CacheWarmingService preloads the region list and the per-region result
// sets, the queries most users start with
type CacheWarmingService struct {
	repo repositories.BranchRepository
}

// NewCacheWarmingService creates a new cache warming service. repo should be
// the caching decorator so that every lookup lands in the cache.
func NewCacheWarmingService(repo repositories.BranchRepository) *CacheWarmingService {
	return &CacheWarmingService{repo: repo}
}

// WarmCache loads regions then searches each region once. It returns the
// number of region result sets warmed.
func (s *CacheWarmingService) WarmCache(ctx context.Context) (int, error) {
	start := time.Now()

	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to warm regions: %w", err)
	}

	warmed := 0
	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}
		query, err := BuildQuery(entities.SearchCriteria{Region: region})
		if err != nil {
			continue
		}
		if _, err := s.repo.Search(ctx, query); err != nil {
			log.Warn().Err(err).Str("region", region).Msg("failed to warm region results")
			continue
		}
		warmed++
	}

	log.Info().Int("regions", warmed).Dur("took", time.Since(start)).Msg("cache warming completed")
	return warmed, nil
}
