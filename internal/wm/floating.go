package wm

// FloatingWindows returns the visible floating windows in store order.
func (m *Manager) FloatingWindows() []Window {
	var out []Window
	for i := m.store.partition(); i < m.store.len(); i++ {
		if w := m.store.at(i).window; !m.minimised.contains(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsFloating reports whether w is managed and floating.
func (m *Manager) IsFloating(w Window) bool {
	i := m.store.index(w)
	return i >= 0 && m.store.at(i).mode == Floating
}

// ToggleFloating switches w between tiled and floating. The window is
// re-inserted where its new mode belongs; a window that starts floating gets
// its last floating geometry back. A minimised w is restored. The focused
// window keeps the focus, except that toggling the fullscreen window drops
// the override and focuses it.
func (m *Manager) ToggleFloating(w Window) error {
	i := m.store.index(w)
	if i < 0 {
		return windowError("toggle floating", w, ErrUnknownWindow)
	}

	focused, hasFocus := m.FocusedWindow()
	wasFullscreen := m.overlay.is(w)

	m.unminimise(w)
	r := m.store.removeAt(i)
	if r.mode == Tiled {
		r.mode = Floating
		r.geometry = r.saved
	} else {
		r.mode = Tiled
	}
	pos := m.store.insert(r)

	switch {
	case wasFullscreen:
		m.overlay.clear()
		m.focus = pos
	case hasFocus:
		m.focus = m.store.index(focused)
	default:
		m.focus = -1
	}
	m.retile()

	m.logger.Debug("placement toggled", "window", w, "mode", r.mode, "position", pos)
	return nil
}

// SetWindowGeometry moves a floating window. It also becomes the geometry
// restored the next time w starts floating. A minimised w is restored.
func (m *Manager) SetWindowGeometry(w Window, g Geometry) error {
	i := m.store.index(w)
	if i < 0 {
		return windowError("set geometry", w, ErrUnknownWindow)
	}
	r := m.store.at(i)
	if r.mode != Floating {
		return windowError("set geometry", w, ErrNoFloatingWindow)
	}

	r.geometry = g
	r.saved = g
	m.unminimise(w)

	m.logger.Debug("geometry set", "window", w, "x", g.X, "y", g.Y, "width", g.Width, "height", g.Height)
	return nil
}
