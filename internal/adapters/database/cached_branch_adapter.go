package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bluehands/branchfinder/internal/adapters/cache"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	"github.com/bluehands/branchfinder/internal/infrastructure/observability"
)

// Default cache TTLs
const (
	DefaultRegionsTTL = time.Hour
	DefaultResultsTTL = 10 * time.Minute
)

const (
	regionsCacheKey   = "branches:regions"
	searchCachePrefix = "branches:search:"
	cacheName         = "branches"
)

func searchCacheKey(q repositories.QueryDescriptor) string {
	return fmt.Sprintf("%s%s", searchCachePrefix, q.CacheKey())
}

// CachedBranchAdapter wraps a BranchRepository with get-or-compute caching
type CachedBranchAdapter struct {
	adapter    repositories.BranchRepository
	cache      providers.CacheProvider
	regionsTTL time.Duration
	resultsTTL time.Duration
	metrics    *observability.Metrics
}

// NewCachedBranchAdapter creates a new cached branch adapter.
// Non-positive TTLs fall back to the defaults.
func NewCachedBranchAdapter(adapter repositories.BranchRepository, c providers.CacheProvider, regionsTTL, resultsTTL time.Duration, metrics *observability.Metrics) *CachedBranchAdapter {
	if regionsTTL <= 0 {
		regionsTTL = DefaultRegionsTTL
	}
	if resultsTTL <= 0 {
		resultsTTL = DefaultResultsTTL
	}
	return &CachedBranchAdapter{
		adapter:    adapter,
		cache:      c,
		regionsTTL: regionsTTL,
		resultsTTL: resultsTTL,
		metrics:    metrics,
	}
}

// ListRegions returns cached region names
func (a *CachedBranchAdapter) ListRegions(ctx context.Context) ([]string, error) {
	regions, outcome, err := cache.GetOrCompute(ctx, a.cache, regionsCacheKey, a.regionsTTL, a.adapter.ListRegions)
	a.record(ctx, outcome, err)
	return regions, err
}

// Search returns cached records for the descriptor
func (a *CachedBranchAdapter) Search(ctx context.Context, q repositories.QueryDescriptor) ([]entities.BranchRecord, error) {
	records, outcome, err := cache.GetOrCompute(ctx, a.cache, searchCacheKey(q), a.resultsTTL,
		func(ctx context.Context) ([]entities.BranchRecord, error) {
			return a.adapter.Search(ctx, q)
		})
	a.record(ctx, outcome, err)
	return records, err
}

// Invalidate drops the cached region list and every cached search result
func (a *CachedBranchAdapter) Invalidate(ctx context.Context) (int, error) {
	if err := a.cache.Delete(ctx, regionsCacheKey); err != nil {
		return 0, err
	}
	return a.cache.DeletePrefix(ctx, searchCachePrefix)
}

func (a *CachedBranchAdapter) record(ctx context.Context, outcome cache.Outcome, err error) {
	if err != nil {
		return
	}
	if outcome == cache.Hit {
		observability.RecordCacheHit(ctx, a.metrics, cacheName)
		return
	}
	observability.RecordCacheMiss(ctx, a.metrics, cacheName)
}
