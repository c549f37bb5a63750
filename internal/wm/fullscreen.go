package wm

// FullscreenWindow returns the window currently shown fullscreen.
func (m *Manager) FullscreenWindow() (Window, bool) {
	return m.overlay.get()
}

// ToggleFullscreen shows w fullscreen and focuses it, or, if w already is
// the fullscreen window, returns to the normal layout. Making w fullscreen
// replaces any other fullscreen window. A minimised w is restored.
func (m *Manager) ToggleFullscreen(w Window) error {
	i := m.store.index(w)
	if i < 0 {
		return windowError("toggle fullscreen", w, ErrUnknownWindow)
	}

	m.unminimise(w)
	if m.overlay.is(w) {
		m.overlay.clear()
		m.logger.Debug("fullscreen left", "window", w)
	} else {
		m.overlay.set(w)
		m.focus = i
		m.logger.Debug("fullscreen entered", "window", w)
	}
	m.retile()
	return nil
}
