package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const stickyDesktop = 0xFFFFFFFF

// MoveResizeWindow moves and resizes a window to the given root coordinates.
// Maximized windows are unmaximized first so the window manager accepts the
// new geometry.
func (c *Connection) MoveResizeWindow(win xproto.Window, x, y, width, height int) error {
	c.unmaximize(win)

	if err := ewmh.MoveresizeWindow(c.XUtil, win, x, y, width, height); err != nil {
		// No EWMH support: configure the window directly.
		xwindow.New(c.XUtil, win).MoveResize(x, y, width, height)
	}
	return nil
}

func (c *Connection) unmaximize(win xproto.Window) {
	for _, state := range c.states(win) {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, win, ewmh.StateRemove, state)
		}
	}
}

func (c *Connection) states(win xproto.Window) []string {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return nil
	}
	return states
}

// IsHidden reports whether win is iconified.
func (c *Connection) IsHidden(win xproto.Window) bool {
	for _, state := range c.states(win) {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	return len(types) == 0
}

// ActiveWindow returns the window the window manager reports as active.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ClientWindows lists the managed client windows on the current desktop,
// including sticky ones.
func (c *Connection) ClientWindows() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	current, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return clients, nil
	}

	out := clients[:0]
	for _, win := range clients {
		desktop, err := ewmh.WmDesktopGet(c.XUtil, win)
		if err == nil && desktop != stickyDesktop && desktop != current {
			continue
		}
		out = append(out, win)
	}
	return out, nil
}

// WindowGeometry returns the root-relative position and size of win.
func (c *Connection) WindowGeometry(win xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	pos, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(pos.DstX), int(pos.DstY), int(geom.Width), int(geom.Height), nil
}

// WindowClass returns the WM_CLASS class of win, or "".
func (c *Connection) WindowClass(win xproto.Window) string {
	class, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(class.Class)
}

// WindowTitle returns the EWMH title of win, falling back to WM_NAME.
func (c *Connection) WindowTitle(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// WindowPID returns the _NET_WM_PID of win, or 0.
func (c *Connection) WindowPID(win xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, win)
	if err != nil {
		return 0
	}
	return int(pid)
}
