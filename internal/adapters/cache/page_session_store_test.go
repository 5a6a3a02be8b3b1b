package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSessionStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	m, clock := newMemoryAdapter(t, 0)
	store := NewPageSessionStore(m, 30*time.Minute)

	session := &entities.PageSession{ID: "abc", CriteriaKey: "fp", PageIndex: 3, UpdatedAt: clock.Now()}
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, got.PageIndex)
	assert.Equal(t, "fp", got.CriteriaKey)

	clock.Advance(31 * time.Minute)
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestPageSessionStore_UnknownSession(t *testing.T) {
	m, _ := newMemoryAdapter(t, 0)
	store := NewPageSessionStore(m, time.Minute)

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}
