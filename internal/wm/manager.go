package wm

import (
	"io"
	"log/slog"
)

// Manager owns the managed windows of one screen.
type Manager struct {
	screen    Screen
	store     store
	minimised ledger
	overlay   overlay
	focus     int // position in store, -1 when nothing is focused
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for operation traces (Debug level).
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates an empty manager for screen.
func New(screen Screen, opts ...Option) *Manager {
	m := &Manager{
		screen:    screen,
		minimised: newLedger(),
		focus:     -1,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Windows returns every managed window in store order: tiled windows first,
// then floating ones.
func (m *Manager) Windows() []Window {
	return m.store.windows()
}

// IsManaged reports whether w is managed.
func (m *Manager) IsManaged(w Window) bool {
	return m.store.contains(w)
}

// AddWindow starts managing info.Window. The new window is focused. Any
// fullscreen override is dropped, and the new window takes it over when
// info.Fullscreen is set.
func (m *Manager) AddWindow(info WindowInfo) error {
	if m.store.contains(info.Window) {
		return windowError("add", info.Window, ErrAlreadyManaged)
	}

	m.overlay.clear()
	pos := m.store.insert(record{
		window:   info.Window,
		geometry: info.Geometry,
		saved:    info.Geometry,
		mode:     info.Mode,
	})
	m.focus = pos
	if info.Fullscreen {
		m.overlay.set(info.Window)
	}
	m.retile()

	m.logger.Debug("window added", "window", info.Window, "mode", info.Mode, "position", pos, "fullscreen", info.Fullscreen)
	return nil
}

// RemoveWindow stops managing w.
func (m *Manager) RemoveWindow(w Window) error {
	i := m.store.index(w)
	if i < 0 {
		return windowError("remove", w, ErrUnknownWindow)
	}

	m.store.removeAt(i)
	m.minimised.remove(w)
	if m.overlay.is(w) {
		m.overlay.clear()
	}
	switch {
	case m.focus == i:
		m.focus = -1
	case m.focus > i:
		m.focus--
	}
	m.retile()

	m.logger.Debug("window removed", "window", w, "position", i)
	return nil
}

// WindowInfo reports the current state of w. The geometry of the fullscreen
// window is the whole screen.
func (m *Manager) WindowInfo(w Window) (WindowInfo, error) {
	i := m.store.index(w)
	if i < 0 {
		return WindowInfo{}, windowError("info", w, ErrUnknownWindow)
	}

	r := m.store.at(i)
	info := WindowInfo{
		Window:     r.window,
		Geometry:   r.geometry,
		Mode:       r.mode,
		Fullscreen: m.overlay.is(w),
		Minimised:  m.minimised.contains(w),
	}
	if info.Fullscreen {
		info.Geometry = m.screen.Geometry()
	}
	return info, nil
}

// Screen returns the current screen size.
func (m *Manager) Screen() Screen {
	return m.screen
}

// ResizeScreen changes the screen size and re-tiles.
func (m *Manager) ResizeScreen(screen Screen) {
	m.screen = screen
	m.retile()
	m.logger.Debug("screen resized", "width", screen.Width, "height", screen.Height)
}

// unminimise makes w visible again and reports whether it was hidden.
func (m *Manager) unminimise(w Window) bool {
	return m.minimised.remove(w)
}
