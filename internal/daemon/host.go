// Package daemon hosts a window manager for one display: it serialises
// access from IPC, hotkeys and the reconciler, and pushes every resulting
// layout to the window system.
package daemon

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/stackwm/internal/config"
	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/metrics"
	"github.com/1broseidon/stackwm/internal/platform"
	"github.com/1broseidon/stackwm/internal/wm"
)

// ErrNoConfigSource is returned by Reload when the host was built without a
// loader.
var ErrNoConfigSource = errors.New("no configuration source")

// HostConfig holds what a Host is built from. Only Config is required.
type HostConfig struct {
	Config *config.Config
	// Backend receives layouts. Nil runs the host headless.
	Backend platform.Backend
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Level, when set, follows log_level across reloads.
	Level *slog.LevelVar
	// Loader reads a fresh configuration for Reload.
	Loader func() (*config.Config, error)
}

// Host owns a wm.Manager and is safe for concurrent use.
type Host struct {
	mu      sync.Mutex
	mgr     *wm.Manager
	cfg     *config.Config
	backend platform.Backend
	metrics *metrics.Metrics
	logger  *slog.Logger
	level   *slog.LevelVar
	loader  func() (*config.Config, error)

	// display is the work area the manager's screen maps onto.
	display     platform.Display
	lastScreen  wm.Screen
	lastActive  platform.WindowID
	iconified   map[wm.Window]bool
	reloadHooks []func(*config.Config)
}

var _ ipc.Controller = (*Host)(nil)

// NewHost creates a host whose screen starts at the configured fallback size.
// The first Sync replaces it with the size of the display.
func NewHost(hc HostConfig) *Host {
	cfg := hc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := hc.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &Host{
		mgr:       wm.New(cfg.Screen, wm.WithLogger(logger.With("component", "wm"))),
		cfg:       cfg,
		backend:   hc.Backend,
		metrics:   hc.Metrics,
		logger:    logger,
		level:     hc.Level,
		loader:    hc.Loader,
		iconified: make(map[wm.Window]bool),
	}
	h.publishLocked()
	return h
}

// Do runs fn against the manager under the host lock. On success the new
// layout is pushed to the backend. Every call is counted under op.
func (h *Host) Do(op string, fn func(*wm.Manager) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.doLocked(op, fn)
}

func (h *Host) doLocked(op string, fn func(*wm.Manager) error) error {
	start := time.Now()
	err := fn(h.mgr)
	if err == nil {
		h.applyLocked()
	} else {
		h.logger.Debug("operation failed", "op", op, "error", err)
	}
	h.metrics.ObserveOperation(op, err, time.Since(start))
	h.publishLocked()
	return err
}

func (h *Host) view(fn func(*wm.Manager)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.mgr)
}

// applyLocked renders the current layout on the backend. Individual
// failures are logged: a window may disappear between a layout change and
// the next reconcile pass.
func (h *Host) applyLocked() {
	if h.backend == nil || !h.cfg.ApplyLayout {
		return
	}

	for w := range h.iconified {
		if !h.mgr.IsManaged(w) {
			delete(h.iconified, w)
		}
	}

	layout := h.mgr.Layout()
	for _, p := range layout.Windows {
		id := platform.WindowID(p.Window)
		if h.iconified[p.Window] {
			if err := h.backend.Activate(id); err != nil {
				h.logger.Warn("restore failed", "window", p.Window, "error", err)
			}
			delete(h.iconified, p.Window)
		}
		if err := h.backend.MoveResize(id, h.toDisplay(p.Geometry)); err != nil {
			h.logger.Warn("move/resize failed", "window", p.Window, "error", err)
		}
	}

	for _, w := range h.mgr.MinimisedWindows() {
		if h.iconified[w] {
			continue
		}
		if err := h.backend.Minimize(platform.WindowID(w)); err != nil {
			h.logger.Warn("minimize failed", "window", w, "error", err)
			continue
		}
		h.iconified[w] = true
	}

	if w, ok := layout.FocusedWindow(); ok {
		if err := h.backend.Activate(platform.WindowID(w)); err != nil {
			h.logger.Warn("activate failed", "window", w, "error", err)
		}
	}
}

func (h *Host) publishLocked() {
	if h.metrics == nil {
		return
	}
	c := h.countsLocked()
	h.metrics.SetWindows(c.tiled, c.floating, c.minimised, c.fullscreen)
}

type counts struct {
	tiled, floating, minimised int
	fullscreen                 bool
}

func (h *Host) countsLocked() counts {
	var c counts
	for _, w := range h.mgr.Windows() {
		if h.mgr.IsFloating(w) {
			c.floating++
		} else {
			c.tiled++
		}
	}
	c.minimised = len(h.mgr.MinimisedWindows())
	_, c.fullscreen = h.mgr.FullscreenWindow()
	return c
}

// toDisplay maps a screen-relative rectangle onto root coordinates.
func (h *Host) toDisplay(g wm.Geometry) platform.Rect {
	return platform.Rect{
		X:      g.X + h.display.Usable.X,
		Y:      g.Y + h.display.Usable.Y,
		Width:  int(g.Width),
		Height: int(g.Height),
	}
}

// fromDisplay maps root coordinates into the manager's screen.
func (h *Host) fromDisplay(r platform.Rect) wm.Geometry {
	return wm.Geometry{
		X:      r.X - h.display.Usable.X,
		Y:      r.Y - h.display.Usable.Y,
		Width:  uint(max(r.Width, 0)),
		Height: uint(max(r.Height, 0)),
	}
}

// Config returns the configuration currently in effect.
func (h *Host) Config() *config.Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

// OnReload registers fn to run after every successful configuration change.
func (h *Host) OnReload(fn func(*config.Config)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reloadHooks = append(h.reloadHooks, fn)
}

// Reload reads the configuration through the loader and applies it.
func (h *Host) Reload() error {
	if h.loader == nil {
		return ErrNoConfigSource
	}
	cfg, err := h.loader()
	h.metrics.ObserveReload(err)
	if err != nil {
		return err
	}
	h.ApplyConfig(cfg)
	return nil
}

// ApplyConfig switches to cfg. Without a backend the fallback screen size
// takes effect immediately; with one, the display keeps deciding the size.
func (h *Host) ApplyConfig(cfg *config.Config) {
	h.mu.Lock()
	h.cfg = cfg
	if h.level != nil {
		h.level.Set(cfg.SlogLevel())
	}
	if h.backend == nil && h.mgr.Screen() != cfg.Screen {
		h.doLocked("resize_screen", func(m *wm.Manager) error {
			m.ResizeScreen(cfg.Screen)
			return nil
		})
	}
	hooks := append([]func(*config.Config){}, h.reloadHooks...)
	h.mu.Unlock()

	h.logger.Info("configuration applied", "floating_classes", len(cfg.FloatingClasses), "apply_layout", cfg.ApplyLayout)
	for _, fn := range hooks {
		fn(cfg)
	}
}
