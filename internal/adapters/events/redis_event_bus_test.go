package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
	redisclient "github.com/bluehands/branchfinder/internal/infrastructure/clients/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ providers.EventBus = (*RedisEventBus)(nil)

func newEventBus(t *testing.T) *RedisEventBus {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	bus := NewRedisEventBus(redisclient.Wrap(rdb))
	t.Cleanup(func() {
		_ = bus.Close()
		_ = rdb.Close()
	})
	return bus
}

func receive(t *testing.T, ch <-chan *entities.BranchEvent) *entities.BranchEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestRedisEventBus_PublishSubscribe(t *testing.T) {
	bus := newEventBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := bus.Subscribe(ctx, providers.EventChannelBranchUpdates)
	require.NoError(t, err)
	second, err := bus.Subscribe(ctx, providers.EventChannelBranchUpdates)
	require.NoError(t, err)

	sent := entities.NewBranchEvent(entities.BranchEventReindexed, "indexer", 42)
	require.NoError(t, bus.Publish(ctx, providers.EventChannelBranchUpdates, sent))

	for _, ch := range []<-chan *entities.BranchEvent{first, second} {
		got := receive(t, ch)
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, entities.BranchEventReindexed, got.Type)
		assert.Equal(t, 42, got.Branches)
	}
}

func TestRedisEventBus_ContextCancelClosesChannel(t *testing.T) {
	bus := newEventBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscribe(ctx, providers.EventChannelBranchUpdates)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber channel was not closed")
	}
}

func TestRedisEventBus_CloseClosesSubscribers(t *testing.T) {
	bus := newEventBus(t)

	ch, err := bus.Subscribe(context.Background(), providers.EventChannelBranchUpdates)
	require.NoError(t, err)

	require.NoError(t, bus.Close())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber channel was not closed")
	}
}
