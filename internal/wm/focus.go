package wm

// FocusedWindow returns the window holding focus.
func (m *Manager) FocusedWindow() (Window, bool) {
	if m.focus < 0 {
		return 0, false
	}
	return m.store.at(m.focus).window, true
}

// FocusWindow gives w the focus, restoring it if it was minimised. The
// fullscreen override is dropped unless w is the fullscreen window.
func (m *Manager) FocusWindow(w Window) error {
	i := m.store.index(w)
	if i < 0 {
		return windowError("focus", w, ErrUnknownWindow)
	}

	if !m.overlay.is(w) {
		m.overlay.clear()
	}
	m.unminimise(w)
	m.focus = i
	m.retile()

	m.logger.Debug("window focused", "window", w)
	return nil
}

// Unfocus clears the focus. A fullscreen window loses the override with it
// and goes back to its place in the layout.
func (m *Manager) Unfocus() {
	m.focus = -1
	if m.overlay.clear() {
		m.retile()
	}
	m.logger.Debug("focus cleared")
}

// CycleFocus moves the focus to the previous or next window in store order,
// tiled and floating alike, wrapping at both ends. With no current focus
// either direction starts at the first window. The newly focused
// window is restored if minimised, and the fullscreen override is dropped.
func (m *Manager) CycleFocus(dir Direction) {
	n := m.store.len()
	if n == 0 {
		return
	}

	switch {
	case n == 1, m.focus < 0:
		m.focus = 0
	case dir == Next:
		m.focus = (m.focus + 1) % n
	default:
		m.focus = (m.focus + n - 1) % n
	}

	w := m.store.at(m.focus).window
	m.unminimise(w)
	m.overlay.clear()
	m.retile()

	m.logger.Debug("focus cycled", "window", w, "direction", dir)
}
