package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/sources"
	redisstore "github.com/MrSnakeDoc/docnav/internal/store/redis"
)

// SnapshotStore persists loaded configurations. *redisstore.Store implements it.
type SnapshotStore interface {
	SaveConfig(ctx context.Context, cfg *domain.Config, source string) (bool, error)
	LoadConfig(ctx context.Context) (*domain.Config, redisstore.Meta, error)
}

// Reloader loads the sidebar configuration into the index, then keeps it
// fresh on a ticker and on manual triggers.
type Reloader struct {
	source        sources.Source
	store         SnapshotStore // nil when persistence is disabled
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration // 0 disables the ticker
	manualTrigger <-chan struct{}

	mu       sync.Mutex // serializes Reload
	stopCh   chan struct{}
	stopOnce sync.Once
	started  bool
	done     chan struct{}
}

// NewReloader creates a new reloader
func NewReloader(
	source sources.Source,
	store SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *Reloader {
	return &Reloader{
		source:        source,
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start loads once (failure is fatal) and then reloads in the background
func (r *Reloader) Start(ctx context.Context) error {
	if err := r.Reload(ctx); err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}

	r.started = true
	go func() {
		defer close(r.done)

		var tick <-chan time.Time
		if r.interval > 0 {
			ticker := time.NewTicker(r.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-tick:
				r.reloadLogged(ctx, "interval")
			case <-r.manualTrigger:
				r.reloadLogged(ctx, "trigger")
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the background loop and waits for it
func (r *Reloader) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	if r.started {
		<-r.done
	}
}

func (r *Reloader) reloadLogged(ctx context.Context, reason string) {
	r.logger.Info("reload requested", logger.String("reason", reason))
	if err := r.Reload(ctx); err != nil {
		// Keep serving the previous snapshot.
		r.logger.Error("failed to reload sidebars, keeping previous snapshot",
			logger.String("source", r.source.Name()),
			logger.Error(err))
	}
}

// Reload loads from the source and replaces the index snapshot. The store
// write is best effort.
func (r *Reloader) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	cfg, err := r.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sidebars from %s: %w", r.source.Name(), err)
	}

	r.index.Update(cfg, r.source.Name())

	r.logger.Info("sidebars loaded",
		logger.String("source", r.source.Name()),
		logger.Strings("sidebars", cfg.Names()),
		logger.Int("docs", r.index.DocCount()),
		logger.Duration("took", time.Since(start)))

	if r.store != nil {
		changed, err := r.store.SaveConfig(ctx, cfg, r.source.Name())
		switch {
		case err != nil:
			// Don't fail - memory index is the primary source
			r.logger.Warn("failed to save sidebars to redis", logger.Error(err))
		case changed:
			r.logger.Info("sidebars saved to redis")
		default:
			r.logger.Debug("sidebars unchanged, redis snapshot kept")
		}
	}

	return nil
}
