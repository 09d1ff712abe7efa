package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

// SourceRedis labels a snapshot restored from Redis.
const SourceRedis = "redis"

// RedisSyncer restores the last stored snapshot into the index so the API
// can answer before the first load from the source finishes.
type RedisSyncer struct {
	store  SnapshotStore
	index  *index.MemoryIndex
	logger logger.Logger
	now    func() time.Time
}

func NewRedisSyncer(store SnapshotStore, idx *index.MemoryIndex, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{store: store, index: idx, logger: log, now: time.Now}
}

// Sync does nothing when the index already holds a snapshot or the store is
// empty.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	if rs.index.Ready() {
		return nil
	}

	cfg, meta, err := rs.store.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore sidebars snapshot: %w", err)
	}
	if cfg == nil {
		rs.logger.Info("no sidebars snapshot in redis yet")
		return nil
	}

	rs.index.Update(cfg, SourceRedis)

	fields := []zap.Field{
		logger.Strings("sidebars", cfg.Names()),
		logger.String("origin", meta.Source),
	}
	if !meta.SavedAt.IsZero() {
		fields = append(fields, logger.Duration("age", rs.now().Sub(meta.SavedAt).Round(time.Second)))
	}
	rs.logger.Info("restored sidebars snapshot from redis", fields...)
	return nil
}
