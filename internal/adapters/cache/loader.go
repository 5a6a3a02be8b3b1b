package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

// Outcome reports where a GetOrCompute value came from
type Outcome int

const (
	Miss Outcome = iota
	Hit
)

// GetOrCompute returns the cached value for key, or calls compute and stores
// its result for ttl. Errors from compute are returned and never cached.
// Cache read and write failures fall through to compute.
func GetOrCompute[T any](ctx context.Context, cache providers.CacheProvider, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, Outcome, error) {
	if cache != nil {
		data, err := cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached T
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, Hit, nil
			}
			log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
			_ = cache.Delete(ctx, key)
		case !errors.Is(err, providers.ErrCacheMiss):
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, Miss, err
	}

	if cache != nil {
		if data, err := json.Marshal(value); err == nil {
			if err := cache.Set(ctx, key, data, ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		}
	}
	return value, Miss, nil
}
