package wm

// Layout returns what should be rendered.
//
// While a window is fullscreen it is the only entry, covering the screen.
// Otherwise every visible window is listed in store order with its current
// geometry. A focused floating window is moved to the end of the list so it
// renders in front of the other floating windows; the store itself is not
// reordered.
func (m *Manager) Layout() Layout {
	if w, ok := m.overlay.get(); ok {
		return Layout{
			Focused: &w,
			Windows: []Placement{{Window: w, Geometry: m.screen.Geometry()}},
		}
	}

	layout := Layout{Windows: make([]Placement, 0, m.store.len())}
	var front *Placement
	for i := 0; i < m.store.len(); i++ {
		r := m.store.at(i)
		if m.minimised.contains(r.window) {
			continue
		}
		p := Placement{Window: r.window, Geometry: r.geometry}
		if i == m.focus && r.mode == Floating {
			front = &p
			continue
		}
		layout.Windows = append(layout.Windows, p)
	}
	if front != nil {
		layout.Windows = append(layout.Windows, *front)
	}

	if w, ok := m.FocusedWindow(); ok {
		layout.Focused = &w
	}
	return layout
}
