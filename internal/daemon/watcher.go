package daemon

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher calls reload whenever the config file changes. Editors often
// save through several events (truncate, write, rename), so changes are
// debounced.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	reload   func() error
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	running bool
	done    chan struct{}
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, reload func() error, logger *slog.Logger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ConfigWatcher{
		watcher:  watcher,
		path:     path,
		reload:   reload,
		logger:   logger,
		debounce: 250 * time.Millisecond,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// that atomic saves (write temp, rename over) are seen.
func (cw *ConfigWatcher) Start() error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return err
	}

	go cw.watch()
	cw.logger.Debug("config watcher started", "path", cw.path)
	return nil
}

func (cw *ConfigWatcher) watch() {
	filename := filepath.Base(cw.path)

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				cw.schedule()
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("config watcher error", "error", err)

		case <-cw.done:
			return
		}
	}
}

func (cw *ConfigWatcher) schedule() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if !cw.running {
		return
	}
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, cw.fire)
}

func (cw *ConfigWatcher) fire() {
	cw.logger.Info("config file changed, reloading", "path", cw.path)
	if err := cw.reload(); err != nil {
		// Keep the previous configuration; the next save retries.
		cw.logger.Warn("config reload failed", "path", cw.path, "error", err)
	}
}

// Stop stops the watcher.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}
	cw.running = false
	if cw.timer != nil {
		cw.timer.Stop()
	}
	close(cw.done)
	return cw.watcher.Close()
}
