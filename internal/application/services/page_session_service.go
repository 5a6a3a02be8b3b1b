package services

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sessionLockStripes = 64

// PageSessionService tracks the current page for each client's result set
type PageSessionService struct {
	store providers.PageSessionStore
	locks [sessionLockStripes]sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewPageSessionService creates a new page session service
func NewPageSessionService(store providers.PageSessionStore) *PageSessionService {
	return &PageSessionService{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// PageRequest describes one pagination step for a session
type PageRequest struct {
	SessionID   string
	CriteriaKey string
	TotalPages  int
	BlockSize   int
	Navigation  entities.Navigation
}

// Resolve returns the session with its page index updated for req.
// Unknown sessions start on page 1 with a fresh ID. When the criteria
// fingerprint differs from the stored one the page resets to 1 and the
// navigation is ignored. Store failures are logged and do not fail the call.
func (s *PageSessionService) Resolve(ctx context.Context, req PageRequest) *entities.PageSession {
	id := req.SessionID
	if id == "" {
		id = s.newID()
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil && !errors.Is(err, providers.ErrCacheMiss) {
		log.Warn().Err(err).Str("session_id", id).Msg("failed to load page session, starting a new one")
	}

	switch {
	case session == nil:
		if req.SessionID != "" {
			id = s.newID()
		}
		session = &entities.PageSession{
			ID:          id,
			CriteriaKey: req.CriteriaKey,
			PageIndex:   Navigate(1, req.TotalPages, req.BlockSize, req.Navigation),
		}
	case session.CriteriaKey != req.CriteriaKey:
		session.CriteriaKey = req.CriteriaKey
		session.PageIndex = 1
	default:
		current := ClampPage(session.PageIndex, req.TotalPages)
		session.PageIndex = Navigate(current, req.TotalPages, req.BlockSize, req.Navigation)
	}
	session.UpdatedAt = s.now()

	if s.store != nil {
		if err := s.store.Save(ctx, session); err != nil {
			log.Warn().Err(err).Str("session_id", session.ID).Msg("failed to save page session")
		}
	}
	return session
}

func (s *PageSessionService) load(ctx context.Context, id string) (*entities.PageSession, error) {
	if s.store == nil {
		return nil, providers.ErrCacheMiss
	}
	return s.store.Load(ctx, id)
}

func (s *PageSessionService) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%sessionLockStripes]
}
