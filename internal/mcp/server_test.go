package mcp

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/wm"
)

// localDaemon answers tool calls from an in-process manager.
type localDaemon struct {
	m *wm.Manager
}

func newLocalDaemon(t *testing.T, windows ...wm.WindowInfo) *localDaemon {
	t.Helper()
	d := &localDaemon{m: wm.New(wm.Screen{Width: 800, Height: 600})}
	for _, info := range windows {
		if err := d.m.AddWindow(info); err != nil {
			t.Fatalf("add %v: %v", info.Window, err)
		}
	}
	return d
}

func (d *localDaemon) ListWindows() (*ipc.WindowsData, error) {
	data := &ipc.WindowsData{Minimised: d.m.MinimisedWindows()}
	for _, w := range d.m.Windows() {
		info, _ := d.m.WindowInfo(w)
		data.Windows = append(data.Windows, info)
	}
	if w, ok := d.m.FocusedWindow(); ok {
		data.Focused = &w
	}
	if w, ok := d.m.MasterWindow(); ok {
		data.Master = &w
	}
	return data, nil
}

func (d *localDaemon) GetLayout() (*wm.Layout, error) {
	layout := d.m.Layout()
	return &layout, nil
}

func (d *localDaemon) RemoveWindow(w wm.Window) error { return d.m.RemoveWindow(w) }
func (d *localDaemon) Focus(w wm.Window) error        { return d.m.FocusWindow(w) }

func (d *localDaemon) CycleFocus(dir wm.Direction) error {
	d.m.CycleFocus(dir)
	return nil
}

func (d *localDaemon) ResizeScreen(screen wm.Screen) error {
	d.m.ResizeScreen(screen)
	return nil
}

func (d *localDaemon) SwapWithMaster(w wm.Window) error { return d.m.SwapWithMaster(w) }

func (d *localDaemon) SwapWindows(dir wm.Direction) error {
	d.m.SwapWindows(dir)
	return nil
}

func (d *localDaemon) ToggleFloating(w wm.Window) error { return d.m.ToggleFloating(w) }

func (d *localDaemon) SetGeometry(w wm.Window, g wm.Geometry) error {
	return d.m.SetWindowGeometry(w, g)
}

func (d *localDaemon) ToggleMinimised(w wm.Window) error { return d.m.ToggleMinimised(w) }

func (d *localDaemon) UnminimiseLast() (*ipc.UnminimiseData, error) {
	w, ok := d.m.UnminimiseLast()
	return &ipc.UnminimiseData{Window: w, Restored: ok}, nil
}

func (d *localDaemon) ToggleFullscreen(w wm.Window) error { return d.m.ToggleFullscreen(w) }

func tiledWindows(ids ...wm.Window) []wm.WindowInfo {
	out := make([]wm.WindowInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, wm.WindowInfo{Window: id})
	}
	return out
}

func TestNewServer_RegistersTools(t *testing.T) {
	// AddTool panics on input or output types it cannot describe.
	if s := NewServer(newLocalDaemon(t)); s.mcpServer == nil {
		t.Fatalf("server not created")
	}
}

func TestHandleListWindows(t *testing.T) {
	s := NewServer(newLocalDaemon(t, tiledWindows(1, 2, 3)...))
	ctx := context.Background()

	_, out, err := s.handleListWindows(ctx, nil, EmptyInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(out.Windows) != 3 {
		t.Fatalf("windows = %+v", out.Windows)
	}
	master, last := out.Windows[0], out.Windows[2]
	if !master.Master || master.Geometry != (wm.Geometry{Width: 400, Height: 600}) {
		t.Fatalf("master = %+v", master)
	}
	if !last.Focused || last.Mode != "tiled" {
		t.Fatalf("last = %+v", last)
	}
	if out.Minimised == nil || len(out.Minimised) != 0 {
		t.Fatalf("minimised = %#v, want empty list", out.Minimised)
	}
}

func TestHandlers_StateAfterAction(t *testing.T) {
	s := NewServer(newLocalDaemon(t, tiledWindows(1, 2, 3)...))
	ctx := context.Background()

	_, out, err := s.handleSwapWithMaster(ctx, nil, WindowInput{Window: 3})
	if err != nil {
		t.Fatalf("swap_with_master: %v", err)
	}
	if !out.Windows[0].Master || out.Windows[0].Window != 3 {
		t.Fatalf("after swap: %+v", out.Windows)
	}

	_, out, err = s.handleToggleFloating(ctx, nil, WindowInput{Window: 2})
	if err != nil {
		t.Fatalf("toggle_floating: %v", err)
	}
	if out.Windows[2].Window != 2 || out.Windows[2].Mode != "floating" {
		t.Fatalf("after float: %+v", out.Windows)
	}

	_, out, err = s.handleSetWindowGeometry(ctx, nil, SetGeometryInput{Window: 2, X: 10, Y: 20, Width: 300, Height: 200})
	if err != nil {
		t.Fatalf("set_window_geometry: %v", err)
	}
	if got := out.Windows[2].Geometry; got != (wm.Geometry{X: 10, Y: 20, Width: 300, Height: 200}) {
		t.Fatalf("geometry = %+v", got)
	}

	_, out, err = s.handleToggleMinimised(ctx, nil, WindowInput{Window: 1})
	if err != nil {
		t.Fatalf("toggle_minimised: %v", err)
	}
	if !reflect.DeepEqual(out.Minimised, []wm.Window{1}) {
		t.Fatalf("minimised = %v", out.Minimised)
	}

	_, restored, err := s.handleUnminimiseLast(ctx, nil, EmptyInput{})
	if err != nil {
		t.Fatalf("unminimise_last: %v", err)
	}
	if !restored.Restored || restored.Window == nil || *restored.Window != 1 {
		t.Fatalf("unminimise = %+v", restored)
	}
	if restored.State.Focused == nil || *restored.State.Focused != 1 {
		t.Fatalf("restored window not focused: %+v", restored.State)
	}

	_, out, err = s.handleToggleFullscreen(ctx, nil, WindowInput{Window: 3})
	if err != nil {
		t.Fatalf("toggle_fullscreen: %v", err)
	}
	if !out.Windows[0].Fullscreen || out.Windows[0].Geometry != (wm.Geometry{Width: 800, Height: 600}) {
		t.Fatalf("after fullscreen: %+v", out.Windows[0])
	}

	_, layout, err := s.handleGetLayout(ctx, nil, EmptyInput{})
	if err != nil {
		t.Fatalf("get_layout: %v", err)
	}
	if len(layout.Placements) != 1 || layout.Placements[0].Window != 3 {
		t.Fatalf("layout = %+v", layout)
	}

	_, out, err = s.handleRemoveWindow(ctx, nil, WindowInput{Window: 3})
	if err != nil {
		t.Fatalf("remove_window: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("after remove: %+v", out.Windows)
	}
}

func TestHandlers_Directions(t *testing.T) {
	s := NewServer(newLocalDaemon(t, tiledWindows(1, 2, 3)...))
	ctx := context.Background()

	_, out, err := s.handleCycleFocus(ctx, nil, DirectionInput{})
	if err != nil {
		t.Fatalf("cycle_focus: %v", err)
	}
	if out.Focused == nil || *out.Focused != 1 {
		t.Fatalf("default direction should be next and wrap to 1, focused = %v", out.Focused)
	}

	_, out, err = s.handleSwapWindows(ctx, nil, DirectionInput{Direction: "prev"})
	if err != nil {
		t.Fatalf("swap_windows: %v", err)
	}
	order := []wm.Window{out.Windows[0].Window, out.Windows[1].Window, out.Windows[2].Window}
	if !reflect.DeepEqual(order, []wm.Window{3, 2, 1}) {
		t.Fatalf("order = %v, want [3 2 1]", order)
	}

	if _, _, err := s.handleCycleFocus(ctx, nil, DirectionInput{Direction: "diagonal"}); err == nil {
		t.Fatalf("expected invalid direction error")
	}
}

func TestHandlers_Errors(t *testing.T) {
	s := NewServer(newLocalDaemon(t, tiledWindows(1)...))
	ctx := context.Background()

	if _, _, err := s.handleFocusWindow(ctx, nil, WindowInput{Window: 42}); !errors.Is(err, wm.ErrUnknownWindow) {
		t.Fatalf("focus unknown: %v", err)
	}
	if _, _, err := s.handleSetWindowGeometry(ctx, nil, SetGeometryInput{Window: 1}); !errors.Is(err, wm.ErrNoFloatingWindow) {
		t.Fatalf("geometry on tiled: %v", err)
	}
	if _, _, err := s.handleResizeScreen(ctx, nil, ResizeScreenInput{Width: 0, Height: 100}); err == nil {
		t.Fatalf("expected zero width to fail")
	}
	_, out, err := s.handleResizeScreen(ctx, nil, ResizeScreenInput{Width: 1000, Height: 500})
	if err != nil {
		t.Fatalf("resize_screen: %v", err)
	}
	if out.Windows[0].Geometry != (wm.Geometry{Width: 1000, Height: 500}) {
		t.Fatalf("geometry after resize = %+v", out.Windows[0].Geometry)
	}

	_, restored, err := s.handleUnminimiseLast(ctx, nil, EmptyInput{})
	if err != nil || restored.Restored || restored.Window != nil {
		t.Fatalf("unminimise with empty ledger = %+v, %v", restored, err)
	}
}
