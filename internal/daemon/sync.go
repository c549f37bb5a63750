package daemon

import (
	"time"

	"github.com/1broseidon/stackwm/internal/platform"
	"github.com/1broseidon/stackwm/internal/wm"
)

// Snapshot is the window-system state observed in one reconcile pass.
type Snapshot struct {
	Display platform.Display
	// Windows on Display, in a stable order.
	Windows []platform.Window
	// Active is the window the window manager reports focused, 0 if none.
	Active platform.WindowID
}

// SyncResult describes what a Sync changed.
type SyncResult struct {
	Added   []wm.Window
	Removed []wm.Window
	Resized bool
	Focused *wm.Window
}

// Changed reports whether the pass altered the manager.
func (r SyncResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || r.Resized || r.Focused != nil
}

// Sync brings the manager in line with snap:
//   - a display size change resizes the screen;
//   - vanished windows are removed, new ones added (floating when their class
//     is in floating_classes, minimised when already iconified);
//   - a change of the active window made outside the daemon moves focus.
//
// The layout is pushed once at the end if anything changed.
func (h *Host) Sync(snap Snapshot) SyncResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	var res SyncResult

	if snap.Display.Usable.Width > 0 && snap.Display.Usable.Height > 0 {
		h.display = snap.Display
		screen := wm.Screen{Width: uint(snap.Display.Usable.Width), Height: uint(snap.Display.Usable.Height)}
		if screen != h.lastScreen {
			h.lastScreen = screen
			if screen != h.mgr.Screen() {
				h.mgr.ResizeScreen(screen)
				res.Resized = true
			}
		}
	}

	present := make(map[wm.Window]bool, len(snap.Windows))
	for _, win := range snap.Windows {
		present[wm.Window(win.ID)] = true
	}
	for _, w := range h.mgr.Windows() {
		if present[w] {
			continue
		}
		if err := h.mgr.RemoveWindow(w); err == nil {
			delete(h.iconified, w)
			res.Removed = append(res.Removed, w)
		}
	}

	for _, win := range snap.Windows {
		w := wm.Window(win.ID)
		if h.mgr.IsManaged(w) {
			continue
		}
		// Tiled windows keep their current bounds as the geometry they get
		// back when they start floating.
		info := wm.WindowInfo{Window: w, Mode: wm.Tiled, Geometry: h.fromDisplay(win.Bounds)}
		if h.cfg.IsFloatingClass(win.Class) {
			info.Mode = wm.Floating
		}
		if err := h.mgr.AddWindow(info); err != nil {
			continue
		}
		if win.Hidden {
			if err := h.mgr.ToggleMinimised(w); err != nil {
				h.logger.Warn("failed to minimise iconified window", "window", w, "error", err)
			} else {
				h.iconified[w] = true
			}
		}
		res.Added = append(res.Added, w)
	}

	if snap.Active != 0 && snap.Active != h.lastActive {
		h.lastActive = snap.Active
		w := wm.Window(snap.Active)
		focused, ok := h.mgr.FocusedWindow()
		if h.mgr.IsManaged(w) && !h.mgr.IsMinimised(w) && (!ok || focused != w) {
			if err := h.mgr.FocusWindow(w); err == nil {
				res.Focused = &w
			}
		}
	}

	if res.Changed() {
		h.applyLocked()
		h.metrics.ObserveOperation("sync", nil, time.Since(start))
		h.publishLocked()
	}
	return res
}
