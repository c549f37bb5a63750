// Package mcp exposes the running daemon's window manager as MCP tools over
// stdio.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/wm"
)

const (
	ServerName    = "stackwm"
	ServerVersion = "0.1.0"
)

// Daemon is the part of the IPC client the tools use.
type Daemon interface {
	ListWindows() (*ipc.WindowsData, error)
	GetLayout() (*wm.Layout, error)
	RemoveWindow(w wm.Window) error
	Focus(w wm.Window) error
	CycleFocus(dir wm.Direction) error
	ResizeScreen(screen wm.Screen) error
	SwapWithMaster(w wm.Window) error
	SwapWindows(dir wm.Direction) error
	ToggleFloating(w wm.Window) error
	SetGeometry(w wm.Window, g wm.Geometry) error
	ToggleMinimised(w wm.Window) error
	UnminimiseLast() (*ipc.UnminimiseData, error)
	ToggleFullscreen(w wm.Window) error
}

var _ Daemon = (*ipc.Client)(nil)

// Server is the MCP server for stackwm.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates an MCP server whose tools call daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List managed windows in stacking order (tiled first, then floating) with mode, geometry, focus, master, minimised and fullscreen flags.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_layout",
		Description: "Return the rendered layout: visible windows back to front with their rectangles, and the focused window.",
	}, s.handleGetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Focus a window. A minimised window is restored; an active fullscreen window loses fullscreen unless it is the one focused.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "cycle_focus",
		Description: "Move focus to the previous or next window in stacking order, wrapping around.",
	}, s.handleCycleFocus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "swap_with_master",
		Description: "Make a tiled window the master (left half of the screen) by swapping it with the current master, then focus it.",
	}, s.handleSwapWithMaster)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "swap_windows",
		Description: "Swap the focused tiled window with its previous or next visible tiled neighbour. Focus follows the window.",
	}, s.handleSwapWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_floating",
		Description: "Switch a window between tiled and floating. A window that floats again gets its last floating geometry back.",
	}, s.handleToggleFloating)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_minimised",
		Description: "Minimise a window, or restore it if it is minimised.",
	}, s.handleToggleMinimised)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "unminimise_last",
		Description: "Restore and focus the most recently minimised window, if any.",
	}, s.handleUnminimiseLast)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_fullscreen",
		Description: "Make a window fullscreen (replacing any other fullscreen window), or leave fullscreen if it already is.",
	}, s.handleToggleFullscreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_geometry",
		Description: "Move and resize a floating window. Fails for tiled windows.",
	}, s.handleSetWindowGeometry)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_window",
		Description: "Stop managing a window. The window itself is left open.",
	}, s.handleRemoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_screen",
		Description: "Change the screen size the layout is computed for. The daemon resets it when the display changes size.",
	}, s.handleResizeScreen)
}
