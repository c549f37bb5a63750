package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/wm"
)

// Daemon is the part of the IPC client the palette needs.
type Daemon interface {
	ListWindows() (*ipc.WindowsData, error)
	Focus(w wm.Window) error
	Unfocus() error
	CycleFocus(dir wm.Direction) error
	SwapWithMaster(w wm.Window) error
	SwapWindows(dir wm.Direction) error
	ToggleFloating(w wm.Window) error
	ToggleMinimised(w wm.Window) error
	UnminimiseLast() (*ipc.UnminimiseData, error)
	ToggleFullscreen(w wm.Window) error
	RemoveWindow(w wm.Window) error
}

var _ Daemon = (*ipc.Client)(nil)

var errNoFocus = errors.New("no focused window")

const focusPrefix = "focus:"

// focusedActions act on the focused window and are only offered when there
// is one.
var focusedActions = []struct{ action, label string }{
	{"swap_master", "Swap with master"},
	{"toggle_floating", "Toggle floating"},
	{"toggle_minimised", "Minimise"},
	{"toggle_fullscreen", "Toggle fullscreen"},
	{"unmanage", "Stop managing"},
	{"unfocus", "Clear focus"},
}

var layoutActions = []struct{ action, label string }{
	{"cycle_next", "Focus next"},
	{"cycle_prev", "Focus previous"},
	{"swap_next", "Swap with next"},
	{"swap_prev", "Swap with previous"},
	{"unminimise_last", "Restore last minimised"},
}

// Entries builds the menu for the current daemon state: one row per managed
// window, then the actions that apply.
func Entries(data *ipc.WindowsData) []Item {
	items := []Item{{Label: "Windows", IsHeader: true}}
	for _, info := range data.Windows {
		focused := data.Focused != nil && *data.Focused == info.Window
		items = append(items, Item{
			Label:    windowLabel(info, data),
			Action:   focusPrefix + info.Window.String(),
			IsActive: focused,
		})
	}

	if data.Focused != nil {
		items = append(items, Item{Label: "Focused " + data.Focused.String(), IsHeader: true})
		for _, a := range focusedActions {
			label := a.label
			if a.action == "toggle_minimised" && isMinimised(*data.Focused, data) {
				label = "Restore"
			}
			items = append(items, Item{Label: label, Action: a.action})
		}
	}

	items = append(items, Item{Label: "Layout", IsHeader: true})
	for _, a := range layoutActions {
		if a.action == "unminimise_last" && len(data.Minimised) == 0 {
			continue
		}
		items = append(items, Item{Label: a.label, Action: a.action})
	}
	return items
}

func windowLabel(info wm.WindowInfo, data *ipc.WindowsData) string {
	var tags []string
	if data.Master != nil && *data.Master == info.Window {
		tags = append(tags, "master")
	}
	if info.Minimised {
		tags = append(tags, "minimised")
	}
	if info.Fullscreen {
		tags = append(tags, "fullscreen")
	}
	label := fmt.Sprintf("%s  %s  %dx%d", info.Window, info.Mode, info.Geometry.Width, info.Geometry.Height)
	if len(tags) > 0 {
		label += "  [" + strings.Join(tags, ", ") + "]"
	}
	return label
}

func isMinimised(w wm.Window, data *ipc.WindowsData) bool {
	for _, m := range data.Minimised {
		if m == w {
			return true
		}
	}
	return false
}

// Run performs action against d. focused is the window focused when the menu
// was built.
func Run(d Daemon, action string, focused *wm.Window) error {
	if strings.HasPrefix(action, focusPrefix) {
		v, err := strconv.ParseUint(strings.TrimPrefix(action, focusPrefix), 0, 32)
		if err != nil {
			return fmt.Errorf("invalid window in %q", action)
		}
		return d.Focus(wm.Window(v))
	}

	switch action {
	case "cycle_next":
		return d.CycleFocus(wm.Next)
	case "cycle_prev":
		return d.CycleFocus(wm.Prev)
	case "swap_next":
		return d.SwapWindows(wm.Next)
	case "swap_prev":
		return d.SwapWindows(wm.Prev)
	case "unminimise_last":
		_, err := d.UnminimiseLast()
		return err
	case "unfocus":
		return d.Unfocus()
	}

	var fn func(wm.Window) error
	switch action {
	case "swap_master":
		fn = d.SwapWithMaster
	case "toggle_floating":
		fn = d.ToggleFloating
	case "toggle_minimised":
		fn = d.ToggleMinimised
	case "toggle_fullscreen":
		fn = d.ToggleFullscreen
	case "unmanage":
		fn = d.RemoveWindow
	default:
		return fmt.Errorf("unknown palette action %q", action)
	}
	if focused == nil {
		return errNoFocus
	}
	return fn(*focused)
}

// Show lists the daemon state through l and runs the chosen entry. It
// returns ErrCancelled when nothing was chosen.
func Show(l Launcher, d Daemon) error {
	data, err := d.ListWindows()
	if err != nil {
		return err
	}
	item, err := l.Show("stackwm", Entries(data))
	if err != nil {
		return err
	}
	return Run(d, item.Action, data.Focused)
}
