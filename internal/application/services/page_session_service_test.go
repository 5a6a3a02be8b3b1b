package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]entities.PageSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]entities.PageSession)}
}

func (m *memorySessionStore) Load(_ context.Context, id string) (*entities.PageSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return &s, nil
}

func (m *memorySessionStore) Save(_ context.Context, s *entities.PageSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func newTestSessionService(store providers.PageSessionStore) *PageSessionService {
	svc := NewPageSessionService(store)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestPageSessionService_NewSessionStartsOnFirstPage(t *testing.T) {
	svc := newTestSessionService(newMemorySessionStore())

	s := svc.Resolve(context.Background(), PageRequest{CriteriaKey: "a", TotalPages: 5, BlockSize: 10})

	assert.Equal(t, "session-1", s.ID)
	assert.Equal(t, 1, s.PageIndex)
}

func TestPageSessionService_NavigationPersists(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(newMemorySessionStore())

	s := svc.Resolve(ctx, PageRequest{CriteriaKey: "a", TotalPages: 25, BlockSize: 10, Navigation: entities.GoToPage(4)})
	require.Equal(t, 4, s.PageIndex)

	s = svc.Resolve(ctx, PageRequest{SessionID: s.ID, CriteriaKey: "a", TotalPages: 25, BlockSize: 10,
		Navigation: entities.Navigation{Kind: entities.NavigateNextBlock}})
	assert.Equal(t, 11, s.PageIndex)

	s = svc.Resolve(ctx, PageRequest{SessionID: s.ID, CriteriaKey: "a", TotalPages: 25, BlockSize: 10})
	assert.Equal(t, 11, s.PageIndex, "no navigation keeps the stored page")
}

func TestPageSessionService_CriteriaChangeResetsPage(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(newMemorySessionStore())

	s := svc.Resolve(ctx, PageRequest{CriteriaKey: "a", TotalPages: 5, BlockSize: 10, Navigation: entities.GoToPage(3)})
	require.Equal(t, 3, s.PageIndex)

	s = svc.Resolve(ctx, PageRequest{SessionID: s.ID, CriteriaKey: "b", TotalPages: 5, BlockSize: 10, Navigation: entities.GoToPage(4)})
	assert.Equal(t, 1, s.PageIndex)
	assert.Equal(t, "b", s.CriteriaKey)
	assert.Equal(t, "session-1", s.ID)
}

func TestPageSessionService_StoredPageReclampedToNewTotal(t *testing.T) {
	ctx := context.Background()
	store := newMemorySessionStore()
	svc := newTestSessionService(store)
	require.NoError(t, store.Save(ctx, &entities.PageSession{ID: "s", CriteriaKey: "a", PageIndex: 9}))

	s := svc.Resolve(ctx, PageRequest{SessionID: "s", CriteriaKey: "a", TotalPages: 4, BlockSize: 10})
	assert.Equal(t, 4, s.PageIndex)
}

func TestPageSessionService_UnknownSessionGetsFreshID(t *testing.T) {
	svc := newTestSessionService(newMemorySessionStore())

	s := svc.Resolve(context.Background(), PageRequest{SessionID: "expired", CriteriaKey: "a", TotalPages: 3, BlockSize: 10})
	assert.Equal(t, "session-1", s.ID)
}

func TestPageSessionService_ConcurrentSessionsDoNotInterfere(t *testing.T) {
	ctx := context.Background()
	store := newMemorySessionStore()
	svc := NewPageSessionService(store)

	ids := make([]string, 8)
	for i := range ids {
		ids[i] = svc.Resolve(ctx, PageRequest{CriteriaKey: "a", TotalPages: 10, BlockSize: 10}).ID
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(page int, id string) {
			defer wg.Done()
			svc.Resolve(ctx, PageRequest{SessionID: id, CriteriaKey: "a", TotalPages: 10, BlockSize: 10, Navigation: entities.GoToPage(page)})
		}(i+1, id)
	}
	wg.Wait()

	for i, id := range ids {
		s, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, i+1, s.PageIndex)
	}
}
