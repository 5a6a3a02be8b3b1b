package providers

import (
	"context"
	"errors"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider defines the interface for caching operations
type CacheProvider interface {
	// Get retrieves a value from cache; ErrCacheMiss when absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// DeletePrefix removes every key starting with prefix and returns how many were removed
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// PageSessionStore persists page sessions between requests
type PageSessionStore interface {
	// Load returns the session, or ErrCacheMiss when it is unknown or expired
	Load(ctx context.Context, id string) (*entities.PageSession, error)

	// Save stores the session and refreshes its expiry
	Save(ctx context.Context, session *entities.PageSession) error
}
