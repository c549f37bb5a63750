package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// ErrNoMonitors is returned when RandR reports no enabled CRTC.
var ErrNoMonitors = errors.New("no monitors found")

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Monitors lists the enabled outputs reported by RandR.
func (c *Connection) Monitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// ActiveMonitor picks the monitor holding the active window, else the one
// under the pointer, else the first one.
func (c *Connection) ActiveMonitor() (Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, ErrNoMonitors
	}

	if win, err := c.ActiveWindow(); err == nil && win != 0 {
		if x, y, w, h, err := c.WindowGeometry(win); err == nil {
			if i := monitorAt(monitors, x+w/2, y+h/2); i >= 0 {
				return monitors[i], nil
			}
		}
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if i := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); i >= 0 {
			return monitors[i], nil
		}
	}

	return monitors[0], nil
}

// WorkArea clips m to the _NET_WORKAREA of the current desktop, which
// excludes panels and docks. m is returned unchanged when the window manager
// publishes no work area or it does not overlap m.
func (c *Connection) WorkArea(m Monitor) Monitor {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return m
	}

	idx := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(areas) {
		idx = int(desktop)
	}
	wa := areas[idx]
	return clip(m, int(wa.X), int(wa.Y), int(wa.Width), int(wa.Height))
}

func clip(m Monitor, x, y, width, height int) Monitor {
	x1 := max(m.X, x)
	y1 := max(m.Y, y)
	x2 := min(m.X+m.Width, x+width)
	y2 := min(m.Y+m.Height, y+height)
	if x2 <= x1 || y2 <= y1 {
		return m
	}
	m.X, m.Y = x1, y1
	m.Width, m.Height = x2-x1, y2-y1
	return m
}

func monitorAt(monitors []Monitor, x, y int) int {
	for i := range monitors {
		if monitors[i].contains(x, y) {
			return i
		}
	}
	return -1
}
