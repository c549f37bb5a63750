package daemon

import (
	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/wm"
)

func (h *Host) ListWindows() ipc.WindowsData {
	var data ipc.WindowsData
	h.view(func(m *wm.Manager) {
		data.Minimised = m.MinimisedWindows()
		for _, w := range m.Windows() {
			info, err := m.WindowInfo(w)
			if err != nil {
				continue
			}
			data.Windows = append(data.Windows, info)
		}
		if w, ok := m.FocusedWindow(); ok {
			data.Focused = &w
		}
		if w, ok := m.MasterWindow(); ok {
			data.Master = &w
		}
		if w, ok := m.FullscreenWindow(); ok {
			data.Fullscreen = &w
		}
	})
	return data
}

func (h *Host) Layout() wm.Layout {
	var layout wm.Layout
	h.view(func(m *wm.Manager) { layout = m.Layout() })
	return layout
}

func (h *Host) AddWindow(info wm.WindowInfo) error {
	return h.Do("add", func(m *wm.Manager) error { return m.AddWindow(info) })
}

func (h *Host) RemoveWindow(w wm.Window) error {
	return h.Do("remove", func(m *wm.Manager) error { return m.RemoveWindow(w) })
}

func (h *Host) FocusWindow(w wm.Window) error {
	return h.Do("focus", func(m *wm.Manager) error { return m.FocusWindow(w) })
}

func (h *Host) Unfocus() {
	h.Do("unfocus", func(m *wm.Manager) error {
		m.Unfocus()
		return nil
	})
}

func (h *Host) CycleFocus(dir wm.Direction) {
	h.Do("cycle_focus", func(m *wm.Manager) error {
		m.CycleFocus(dir)
		return nil
	})
}

func (h *Host) WindowInfo(w wm.Window) (wm.WindowInfo, error) {
	var (
		info wm.WindowInfo
		err  error
	)
	h.view(func(m *wm.Manager) { info, err = m.WindowInfo(w) })
	return info, err
}

func (h *Host) Screen() wm.Screen {
	var screen wm.Screen
	h.view(func(m *wm.Manager) { screen = m.Screen() })
	return screen
}

// ResizeScreen overrides the screen size until the display itself changes
// size.
func (h *Host) ResizeScreen(screen wm.Screen) {
	h.Do("resize_screen", func(m *wm.Manager) error {
		m.ResizeScreen(screen)
		return nil
	})
}

func (h *Host) SwapWithMaster(w wm.Window) error {
	return h.Do("swap_master", func(m *wm.Manager) error { return m.SwapWithMaster(w) })
}

func (h *Host) SwapWindows(dir wm.Direction) {
	h.Do("swap_windows", func(m *wm.Manager) error {
		m.SwapWindows(dir)
		return nil
	})
}

func (h *Host) ToggleFloating(w wm.Window) error {
	return h.Do("toggle_floating", func(m *wm.Manager) error { return m.ToggleFloating(w) })
}

func (h *Host) SetWindowGeometry(w wm.Window, g wm.Geometry) error {
	return h.Do("set_geometry", func(m *wm.Manager) error { return m.SetWindowGeometry(w, g) })
}

func (h *Host) ToggleMinimised(w wm.Window) error {
	return h.Do("toggle_minimised", func(m *wm.Manager) error { return m.ToggleMinimised(w) })
}

func (h *Host) UnminimiseLast() (wm.Window, bool) {
	var (
		w  wm.Window
		ok bool
	)
	h.Do("unminimise_last", func(m *wm.Manager) error {
		w, ok = m.UnminimiseLast()
		return nil
	})
	return w, ok
}

func (h *Host) ToggleFullscreen(w wm.Window) error {
	return h.Do("toggle_fullscreen", func(m *wm.Manager) error { return m.ToggleFullscreen(w) })
}

// Status reports window counts by placement mode; minimised windows are
// counted in their mode and again under Minimised.
func (h *Host) Status() ipc.StatusData {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := h.countsLocked()
	status := ipc.StatusData{
		Display:   h.display.Name,
		Screen:    h.mgr.Screen(),
		Windows:   len(h.mgr.Windows()),
		Tiled:     c.tiled,
		Floating:  c.floating,
		Minimised: c.minimised,
	}
	if status.Display == "" {
		status.Display = h.cfg.Display
	}
	if w, ok := h.mgr.FocusedWindow(); ok {
		status.Focused = &w
	}
	if w, ok := h.mgr.FullscreenWindow(); ok {
		status.Fullscreen = &w
	}
	return status
}
