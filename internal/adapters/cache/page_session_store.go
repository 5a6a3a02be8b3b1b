package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
)

const pageSessionPrefix = "page_session:"

// PageSessionStore keeps page sessions in a CacheProvider with a sliding TTL
type PageSessionStore struct {
	cache providers.CacheProvider
	ttl   time.Duration
}

// NewPageSessionStore creates a session store over cache
func NewPageSessionStore(cache providers.CacheProvider, ttl time.Duration) *PageSessionStore {
	return &PageSessionStore{cache: cache, ttl: ttl}
}

// Load returns the stored session or providers.ErrCacheMiss
func (s *PageSessionStore) Load(ctx context.Context, id string) (*entities.PageSession, error) {
	data, err := s.cache.Get(ctx, pageSessionPrefix+id)
	if err != nil {
		return nil, err
	}

	var session entities.PageSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode page session: %w", err)
	}
	return &session, nil
}

// Save writes the session and resets its expiry
func (s *PageSessionStore) Save(ctx context.Context, session *entities.PageSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode page session: %w", err)
	}
	return s.cache.Set(ctx, pageSessionPrefix+session.ID, data, s.ttl)
}
