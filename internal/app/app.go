package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/docnav/internal/config"
	"github.com/MrSnakeDoc/docnav/internal/httpserver"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/redis"
	"github.com/MrSnakeDoc/docnav/internal/scheduler"
	"github.com/MrSnakeDoc/docnav/internal/sources"
	redisstore "github.com/MrSnakeDoc/docnav/internal/store/redis"
	"github.com/MrSnakeDoc/docnav/internal/version"
)

// App is the long-running serve mode: reloader, optional watcher and Redis
// store, and the HTTP API over the memory index.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	index       *index.MemoryIndex
	reloader    *scheduler.Reloader
	watcher     *scheduler.Watcher
}

// New wires the application. Redis is contacted here so a misconfigured
// store fails fast.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	source, err := sources.New(sources.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	memIndex := index.NewMemoryIndex()

	var (
		redisClient *goredis.Client
		store       scheduler.SnapshotStore
	)
	if cfg.RedisEnabled() {
		redisClient, err = redis.Connect(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = redisstore.NewStore(redisClient)

		// Serve the last known snapshot until the first load completes
		syncer := scheduler.NewRedisSyncer(store, memIndex, log)
		if err := syncer.Sync(ctx); err != nil {
			log.Warn("failed to sync from redis on startup, will load from source",
				logger.Error(err))
		}
	} else {
		log.Info("redis not configured, snapshot persistence disabled")
	}

	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewReloader(
		source,
		store,
		memIndex,
		log,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	var watcher *scheduler.Watcher
	if cfg.Watch {
		w, ok := source.(sources.Watchable)
		if !ok {
			log.Warn("watch requested but source has nothing to watch",
				logger.String("source", source.Name()))
		} else {
			paths, err := w.WatchPaths()
			if err != nil {
				if redisClient != nil {
					_ = redisClient.Close()
				}
				return nil, fmt.Errorf("failed to resolve watch paths: %w", err)
			}
			watcher = scheduler.NewWatcher(paths, reloadTrigger, log, scheduler.DefaultWatchDebounce)
		}
	}

	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		Source:        source.Name(),
		Index:         memIndex,
		RedisClient:   redisClient,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      httpserver.New(cfg.ListenPort, d),
		redisClient: redisClient,
		index:       memIndex,
		reloader:    reloader,
		watcher:     watcher,
	}, nil
}

// Run serves until ctx is cancelled or the HTTP server fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenPort)

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reloader: %w", err)
	}
	a.logger.Info("reloader started",
		logger.String("source", a.cfg.Source),
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			a.reloader.Stop()
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		a.logger.Info("file watcher started")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop watcher", logger.Error(err))
		}
	}
	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if runErr == nil {
		a.logger.Info("✅ docnav stopped cleanly")
	}
	return runErr
}
