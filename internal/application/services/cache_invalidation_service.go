package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

// BranchCacheInvalidator drops cached branch data
type BranchCacheInvalidator interface {
	Invalidate(ctx context.Context) (int, error)
}

// CacheInvalidationService clears cached regions and search results whenever
// another process announces a branch directory change
type CacheInvalidationService struct {
	cache    BranchCacheInvalidator
	eventBus providers.EventBus
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache BranchCacheInvalidator, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		timeout:  5 * time.Second,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for branch events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelBranchUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to branch updates: %w", err)
	}

	s.done.Add(1)
	go s.processEvents(eventChan)
	log.Info().Str("channel", providers.EventChannelBranchUpdates).Msg("cache invalidation service started")
	return nil
}

// Stop stops listening and waits for the event loop to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	s.done.Wait()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.BranchEvent) {
	defer s.done.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.BranchEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.cache.Invalidate(ctx)
	if err != nil {
		log.Warn().Err(err).Str("event_id", event.ID).Str("type", string(event.Type)).Msg("failed to invalidate branch cache")
		return
	}
	log.Info().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Str("source", event.Source).
		Int("search_entries", n).
		Msg("invalidated branch cache")
}

// PublishBranchChange announces a branch change; a nil bus is a no-op
func PublishBranchChange(ctx context.Context, bus providers.EventBus, eventType entities.BranchEventType, source string, branches int) {
	if bus == nil {
		return
	}
	event := entities.NewBranchEvent(eventType, source, branches)
	if err := bus.Publish(ctx, providers.EventChannelBranchUpdates, event); err != nil {
		log.Warn().Err(err).Str("type", string(eventType)).Msg("failed to publish branch change")
	}
}
