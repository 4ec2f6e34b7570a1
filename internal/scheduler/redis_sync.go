package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	"github.com/MrSnakeDoc/stashlink/internal/metrics"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
	redisstore "github.com/MrSnakeDoc/stashlink/internal/store/redis"
)

// RedisSyncer restores the last applied settings from Redis on startup
type RedisSyncer struct {
	store  *redisstore.Store
	holder *linker.Holder
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	holder *linker.Holder,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		holder: holder,
		logger: log,
	}
}

// Sync loads the stored snapshot from Redis and publishes it
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("restoring settings from redis")

	snap, err := rs.store.LoadSettings(ctx)
	metrics.RecordReload(settings.SourceRedis, err)
	if err != nil {
		return err
	}

	if snap == nil {
		rs.logger.Info("no settings found in redis")
		return nil
	}

	snap.Source = settings.SourceRedis
	Apply(ctx, rs.holder, rs.store, snap, rs.logger)

	rs.logger.Info("restored settings from redis",
		logger.String("default_endpoint", snap.EffectiveDefaultEndpoint()))

	return nil
}
