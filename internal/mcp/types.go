package mcp

import "github.com/1broseidon/stackwm/internal/wm"

// WindowInput names the window a tool acts on.
type WindowInput struct {
	Window wm.Window `json:"window" jsonschema:"Window id as reported by list_windows"`
}

// DirectionInput is the input for cycle_focus and swap_windows.
type DirectionInput struct {
	Direction string `json:"direction,omitempty" jsonschema:"prev or next (default: next)"`
}

// SetGeometryInput is the input for the set_window_geometry tool.
type SetGeometryInput struct {
	Window wm.Window `json:"window" jsonschema:"Floating window to move"`
	X      int       `json:"x" jsonschema:"Left edge in screen coordinates"`
	Y      int       `json:"y" jsonschema:"Top edge in screen coordinates"`
	Width  uint      `json:"width" jsonschema:"Width in pixels"`
	Height uint      `json:"height" jsonschema:"Height in pixels"`
}

// ResizeScreenInput is the input for the resize_screen tool.
type ResizeScreenInput struct {
	Width  uint `json:"width" jsonschema:"Screen width in pixels (> 0)"`
	Height uint `json:"height" jsonschema:"Screen height in pixels (> 0)"`
}

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// WindowState describes one managed window.
type WindowState struct {
	Window     wm.Window   `json:"window"`
	Mode       string      `json:"mode"`
	Geometry   wm.Geometry `json:"geometry"`
	Focused    bool        `json:"focused"`
	Master     bool        `json:"master"`
	Minimised  bool        `json:"minimised"`
	Fullscreen bool        `json:"fullscreen"`
}

// StateOutput is returned by list_windows and by every tool that changes
// state, reflecting the state after the change.
type StateOutput struct {
	Windows   []WindowState `json:"windows"`
	Minimised []wm.Window   `json:"minimised"`
	Focused   *wm.Window    `json:"focused,omitempty"`
}

// PlacementOutput is one entry of get_layout.
type PlacementOutput struct {
	Window   wm.Window   `json:"window"`
	Geometry wm.Geometry `json:"geometry"`
}

// LayoutOutput is the output for the get_layout tool.
type LayoutOutput struct {
	Placements []PlacementOutput `json:"placements"`
	Focused    *wm.Window        `json:"focused,omitempty"`
}

// UnminimiseOutput is the output for the unminimise_last tool.
type UnminimiseOutput struct {
	Restored bool        `json:"restored"`
	Window   *wm.Window  `json:"window,omitempty"`
	State    StateOutput `json:"state"`
}
