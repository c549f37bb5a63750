package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/stackwm/internal/wm"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	out, err := s.state()
	return nil, out, err
}

func (s *Server) handleGetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	layout, err := s.daemon.GetLayout()
	if err != nil {
		return nil, LayoutOutput{}, err
	}

	out := LayoutOutput{
		Placements: make([]PlacementOutput, 0, len(layout.Windows)),
		Focused:    layout.Focused,
	}
	for _, p := range layout.Windows {
		out.Placements = append(out.Placements, PlacementOutput{Window: p.Window, Geometry: p.Geometry})
	}
	return nil, out, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	return s.after(s.daemon.Focus(args.Window))
}

func (s *Server) handleCycleFocus(_ context.Context, _ *mcpsdk.CallToolRequest, args DirectionInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	dir, err := parseDirection(args.Direction)
	if err != nil {
		return nil, StateOutput{}, err
	}
	return s.after(s.daemon.CycleFocus(dir))
}

func (s *Server) handleSwapWithMaster(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	return s.after(s.daemon.SwapWithMaster(args.Window))
}

func (s *Server) handleSwapWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args DirectionInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	dir, err := parseDirection(args.Direction)
	if err != nil {
		return nil, StateOutput{}, err
	}
	return s.after(s.daemon.SwapWindows(dir))
}

func (s *Server) handleToggleFloating(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	return s.after(s.daemon.ToggleFloating(args.Window))
}

func (s *Server) handleToggleMinimised(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	return s.after(s.daemon.ToggleMinimised(args.Window))
}

func (s *Server) handleUnminimiseLast(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, UnminimiseOutput, error) {
	data, err := s.daemon.UnminimiseLast()
	if err != nil {
		return nil, UnminimiseOutput{}, err
	}
	state, err := s.state()
	if err != nil {
		return nil, UnminimiseOutput{}, err
	}

	out := UnminimiseOutput{Restored: data.Restored, State: state}
	if data.Restored {
		w := data.Window
		out.Window = &w
	}
	return nil, out, nil
}

func (s *Server) handleToggleFullscreen(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	return s.after(s.daemon.ToggleFullscreen(args.Window))
}

func (s *Server) handleSetWindowGeometry(_ context.Context, _ *mcpsdk.CallToolRequest, args SetGeometryInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	g := wm.Geometry{X: args.X, Y: args.Y, Width: args.Width, Height: args.Height}
	return s.after(s.daemon.SetGeometry(args.Window, g))
}

func (s *Server) handleRemoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	return s.after(s.daemon.RemoveWindow(args.Window))
}

func (s *Server) handleResizeScreen(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeScreenInput) (*mcpsdk.CallToolResult, StateOutput, error) {
	if args.Width == 0 || args.Height == 0 {
		return nil, StateOutput{}, fmt.Errorf("screen width and height must be > 0")
	}
	return s.after(s.daemon.ResizeScreen(wm.Screen{Width: args.Width, Height: args.Height}))
}

// after reports the state following an action, or the action's error.
func (s *Server) after(err error) (*mcpsdk.CallToolResult, StateOutput, error) {
	if err != nil {
		return nil, StateOutput{}, err
	}
	out, err := s.state()
	return nil, out, err
}

func (s *Server) state() (StateOutput, error) {
	data, err := s.daemon.ListWindows()
	if err != nil {
		return StateOutput{}, err
	}

	out := StateOutput{
		Windows:   make([]WindowState, 0, len(data.Windows)),
		Minimised: data.Minimised,
		Focused:   data.Focused,
	}
	if out.Minimised == nil {
		out.Minimised = []wm.Window{}
	}
	for _, info := range data.Windows {
		out.Windows = append(out.Windows, WindowState{
			Window:     info.Window,
			Mode:       info.Mode.String(),
			Geometry:   info.Geometry,
			Focused:    data.Focused != nil && *data.Focused == info.Window,
			Master:     data.Master != nil && *data.Master == info.Window,
			Minimised:  info.Minimised,
			Fullscreen: info.Fullscreen,
		})
	}
	return out, nil
}

func parseDirection(s string) (wm.Direction, error) {
	if s == "" {
		return wm.Next, nil
	}
	return wm.ParseDirection(s)
}
