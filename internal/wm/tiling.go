package wm

import "github.com/1broseidon/stackwm/internal/tiling"

// participates reports whether the record at i takes part in tiling.
func (m *Manager) participates(i int) bool {
	r := m.store.at(i)
	return r.mode == Tiled && !m.minimised.contains(r.window) && !m.overlay.is(r.window)
}

// retile recomputes the geometry of every tiling participant. Floating,
// minimised and fullscreen records keep their geometry.
func (m *Manager) retile() {
	var idx []int
	for i := 0; i < m.store.len(); i++ {
		if m.participates(i) {
			idx = append(idx, i)
		}
	}

	positions := tiling.MasterStack(len(idx), m.screen.Geometry())
	for n, i := range idx {
		m.store.at(i).geometry = positions[n]
	}
}

// masterIndex returns the position of the master window, or -1.
func (m *Manager) masterIndex() int {
	for i := 0; i < m.store.len(); i++ {
		if m.participates(i) {
			return i
		}
	}
	return -1
}

// MasterWindow returns the first visible tiled window that is not fullscreen.
func (m *Manager) MasterWindow() (Window, bool) {
	i := m.masterIndex()
	if i < 0 {
		return 0, false
	}
	return m.store.at(i).window, true
}

// SwapWithMaster exchanges w with the master window and focuses w. A
// minimised w is restored first.
func (m *Manager) SwapWithMaster(w Window) error {
	i := m.store.index(w)
	if i < 0 {
		return windowError("swap with master", w, ErrUnknownWindow)
	}
	if m.store.at(i).mode != Tiled {
		return windowError("swap with master", w, ErrNoTiledWindow)
	}

	m.overlay.clear()
	m.unminimise(w)
	master := m.masterIndex()
	m.store.swap(master, i)
	m.focus = master
	m.retile()

	m.logger.Debug("swapped with master", "window", w, "from", i, "to", master)
	return nil
}

// SwapWindows exchanges the focused tiled window with its nearest visible
// tiled neighbour in dir. Focus follows the moved window. It does nothing
// when there is no focus, the focused window floats, or no neighbour exists.
func (m *Manager) SwapWindows(dir Direction) {
	m.overlay.clear()
	defer m.retile()

	if m.focus < 0 || m.store.at(m.focus).mode != Tiled {
		return
	}
	j := m.tiledNeighbour(m.focus, dir)
	if j < 0 {
		return
	}

	from := m.focus
	m.store.swap(from, j)
	m.focus = j

	m.logger.Debug("swapped windows", "window", m.store.at(j).window, "from", from, "to", j, "direction", dir)
}

// tiledNeighbour scans circularly from start in dir for the nearest tiled,
// visible record. It returns -1 if the scan comes back to start.
func (m *Manager) tiledNeighbour(start int, dir Direction) int {
	n := m.store.len()
	step := 1
	if dir == Prev {
		step = n - 1
	}
	for i := (start + step) % n; i != start; i = (i + step) % n {
		r := m.store.at(i)
		if r.mode == Tiled && !m.minimised.contains(r.window) {
			return i
		}
	}
	return -1
}
