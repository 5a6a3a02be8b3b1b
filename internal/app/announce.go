package app

import (
	"context"

	"github.com/bluehands/branchfinder/internal/adapters/events"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/redis"
	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/rs/zerolog/log"
)

// Announce tells running API servers to drop cached branch data. It is a
// no-op when Redis is disabled and only logs when Redis is unreachable.
func Announce(ctx context.Context, cfg *config.Config, eventType entities.BranchEventType, source string, branches int) {
	if !cfg.Redis.Enabled {
		return
	}
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Str("event", string(eventType)).Msg("skipping branch change event")
		return
	}
	defer redisClient.Close()

	bus := events.NewRedisEventBus(redisClient)
	defer bus.Close()
	services.PublishBranchChange(ctx, bus, eventType, source, branches)
}
