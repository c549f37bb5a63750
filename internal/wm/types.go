// Package wm models the windows managed on one screen and derives their
// render layout: a master-stack tiling for tiled windows, caller-supplied
// geometry for floating ones, a minimised set hidden from output, and an
// optional fullscreen override.
//
// A Manager is owned by a single caller. It performs no I/O and is not safe
// for concurrent use; hosts that serve several goroutines must serialise
// access themselves.
package wm

import (
	"fmt"
	"strings"

	"github.com/1broseidon/stackwm/internal/tiling"
)

// Window identifies a managed window. Values are supplied by the host and are
// only compared for equality.
type Window uint32

func (w Window) String() string {
	return fmt.Sprintf("0x%x", uint32(w))
}

// Geometry is a window rectangle in screen coordinates.
type Geometry = tiling.Rect

// Screen is the size of the area windows are laid out on.
type Screen struct {
	Width  uint `json:"width" yaml:"width"`
	Height uint `json:"height" yaml:"height"`
}

// Geometry returns the rectangle covering the whole screen.
func (s Screen) Geometry() Geometry {
	return tiling.Full(s.Width, s.Height)
}

// Mode is the placement mode of a window.
type Mode int

const (
	// Tiled windows are positioned by the master-stack layout.
	Tiled Mode = iota
	// Floating windows keep the geometry given to them.
	Floating
)

func (m Mode) String() string {
	switch m {
	case Tiled:
		return "tiled"
	case Floating:
		return "floating"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case Tiled, Floating:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid placement mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode parses "tiled" or "floating" (case-insensitive, "float" and
// "tile" accepted).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tiled", "tile", "":
		return Tiled, nil
	case "floating", "float":
		return Floating, nil
	default:
		return Tiled, fmt.Errorf("unknown placement mode %q (expected tiled or floating)", s)
	}
}

// Direction selects the neighbour used by CycleFocus and SwapWindows.
type Direction int

const (
	Prev Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// ParseDirection parses "prev" or "next".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous", "up", "left":
		return Prev, nil
	case "next", "down", "right":
		return Next, nil
	default:
		return Next, fmt.Errorf("unknown direction %q (expected prev or next)", s)
	}
}

// WindowInfo describes a window as handed to AddWindow and as reported by
// Manager.WindowInfo.
type WindowInfo struct {
	Window     Window   `json:"window"`
	Geometry   Geometry `json:"geometry"`
	Mode       Mode     `json:"mode"`
	Fullscreen bool     `json:"fullscreen"`
	Minimised  bool     `json:"minimised"`
}

// Placement pairs a window with the rectangle it is rendered at.
type Placement struct {
	Window   Window   `json:"window"`
	Geometry Geometry `json:"geometry"`
}

// Layout is what a host renders: the visible windows back to front and the
// window holding input focus, if any.
type Layout struct {
	Focused *Window     `json:"focused,omitempty"`
	Windows []Placement `json:"windows"`
}

// FocusedWindow returns the focused window of the layout.
func (l Layout) FocusedWindow() (Window, bool) {
	if l.Focused == nil {
		return 0, false
	}
	return *l.Focused, true
}
