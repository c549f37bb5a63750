package daemon

import (
	"errors"
	"fmt"

	"github.com/1broseidon/stackwm/internal/config"
	"github.com/1broseidon/stackwm/internal/platform"
	"github.com/1broseidon/stackwm/internal/wm"
)

var (
	// ErrNoFocusedWindow is returned by actions that act on the focused
	// window when nothing is focused.
	ErrNoFocusedWindow = errors.New("no focused window")
	ErrUnknownAction   = errors.New("unknown action")
)

// RunAction performs a hotkey action.
func (h *Host) RunAction(action string) error {
	switch action {
	case config.ActionCycleNext:
		h.CycleFocus(wm.Next)
	case config.ActionCyclePrev:
		h.CycleFocus(wm.Prev)
	case config.ActionSwapNext:
		h.SwapWindows(wm.Next)
	case config.ActionSwapPrev:
		h.SwapWindows(wm.Prev)
	case config.ActionSwapMaster:
		return h.withFocused(action, (*wm.Manager).SwapWithMaster)
	case config.ActionToggleFloating:
		return h.withFocused(action, (*wm.Manager).ToggleFloating)
	case config.ActionToggleMinimised:
		return h.withFocused(action, (*wm.Manager).ToggleMinimised)
	case config.ActionToggleFullscreen:
		return h.withFocused(action, (*wm.Manager).ToggleFullscreen)
	case config.ActionUnminimiseLast:
		h.UnminimiseLast()
	case config.ActionCloseWindow:
		return h.withFocused(action, h.closeWindow)
	case config.ActionRetile:
		h.Retile()
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, action)
	}
	return nil
}

func (h *Host) withFocused(op string, fn func(*wm.Manager, wm.Window) error) error {
	return h.Do(op, func(m *wm.Manager) error {
		w, ok := m.FocusedWindow()
		if !ok {
			return ErrNoFocusedWindow
		}
		return fn(m, w)
	})
}

// closeWindow asks the window to close. The reconciler drops it once it is
// gone; headless hosts drop it at once.
func (h *Host) closeWindow(m *wm.Manager, w wm.Window) error {
	if h.backend == nil {
		return m.RemoveWindow(w)
	}
	return h.backend.Close(platform.WindowID(w))
}

// Retile pushes the current layout to the backend again, undoing any
// geometry changes made behind the manager's back.
func (h *Host) Retile() {
	h.Do("retile", func(*wm.Manager) error { return nil })
}
