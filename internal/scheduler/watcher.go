package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/docnav/internal/logger"
)

// DefaultWatchDebounce groups bursts of editor writes into one reload.
const DefaultWatchDebounce = 250 * time.Millisecond

// Watcher turns filesystem changes under paths into reload triggers.
type Watcher struct {
	paths    []string
	trigger  chan<- struct{}
	logger   logger.Logger
	debounce time.Duration

	fw       *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher creates a watcher. trigger is shared with the manual reload
// endpoint; sends never block.
func NewWatcher(paths []string, trigger chan<- struct{}, log logger.Logger, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &Watcher{
		paths:    paths,
		trigger:  trigger,
		logger:   log,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start registers the paths and begins forwarding events.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	for _, p := range w.paths {
		if err := fw.Add(p); err != nil {
			_ = fw.Close()
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	w.fw = fw

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("file change detected",
				logger.String("path", event.Name),
				logger.String("op", event.Op.String()))

			// New directories under an autogen tree need their own watch.
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.fw.Add(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory",
							logger.String("path", event.Name), logger.Error(err))
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.trigger <- struct{}{}:
				w.logger.Info("reload triggered by file change")
			default:
				// A reload is already pending.
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", logger.Error(err))

		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Stop closes the underlying watcher and waits for the loop to exit.
func (w *Watcher) Stop() error {
	if w.fw == nil {
		return nil
	}
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
	return w.fw.Close()
}
