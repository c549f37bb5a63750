package wm

// MinimisedWindows returns the minimised windows, oldest first.
func (m *Manager) MinimisedWindows() []Window {
	return m.minimised.list()
}

// IsMinimised reports whether w is minimised.
func (m *Manager) IsMinimised(w Window) bool {
	return m.minimised.contains(w)
}

// ToggleMinimised hides w, or restores it if it is already hidden. Hiding the
// focused window clears the focus; hiding the fullscreen window drops the
// override.
func (m *Manager) ToggleMinimised(w Window) error {
	i := m.store.index(w)
	if i < 0 {
		return windowError("toggle minimised", w, ErrUnknownWindow)
	}

	if m.overlay.is(w) {
		m.overlay.clear()
	}
	if m.unminimise(w) {
		m.logger.Debug("window restored", "window", w)
	} else {
		m.minimised.add(w)
		if m.focus == i {
			m.focus = -1
		}
		m.logger.Debug("window minimised", "window", w)
	}
	m.retile()
	return nil
}

// UnminimiseLast restores and focuses the most recently minimised window.
func (m *Manager) UnminimiseLast() (Window, bool) {
	w, ok := m.minimised.last()
	if !ok {
		return 0, false
	}
	// The ledger only holds managed windows, so this cannot fail.
	if err := m.FocusWindow(w); err != nil {
		return 0, false
	}
	return w, true
}
