package tui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/stackwm/internal/wm"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestModel_AddAndArrange(t *testing.T) {
	m := newModel(wm.Screen{Width: 800, Height: 600})
	m = press(t, m, runes("a"), runes("a"), runes("a"))

	if got := m.mgr.Windows(); !reflect.DeepEqual(got, []wm.Window{1, 2, 3}) {
		t.Fatalf("windows = %v", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if master, _ := m.mgr.MasterWindow(); master != 3 {
		t.Fatalf("master = %v, want 3", master)
	}

	m = press(t, m, runes("j"))
	if w, _ := m.mgr.FocusedWindow(); w != 2 {
		t.Fatalf("focus after next = %v, want 2", w)
	}

	m = press(t, m, runes("f"))
	if !m.mgr.IsFloating(2) {
		t.Fatalf("window 2 should float")
	}

	m = press(t, m, runes("m"))
	if got := m.mgr.MinimisedWindows(); !reflect.DeepEqual(got, []wm.Window{2}) {
		t.Fatalf("minimised = %v", got)
	}
	if _, ok := m.mgr.FocusedWindow(); ok {
		t.Fatalf("minimising the focused window should clear focus")
	}

	m = press(t, m, runes("u"))
	if w, _ := m.mgr.FocusedWindow(); w != 2 || m.mgr.IsMinimised(2) {
		t.Fatalf("window 2 not restored")
	}

	m = press(t, m, runes("F"))
	if w, ok := m.mgr.FullscreenWindow(); !ok || w != 2 {
		t.Fatalf("fullscreen = %v, %v", w, ok)
	}

	m = press(t, m, runes("x"))
	if got := m.mgr.Windows(); !reflect.DeepEqual(got, []wm.Window{3, 1}) {
		t.Fatalf("windows after remove = %v", got)
	}
}

func TestModel_FloatingWindowsAndNudge(t *testing.T) {
	m := newModel(wm.Screen{Width: 800, Height: 600})
	m = press(t, m, runes("A"))

	info, err := m.mgr.WindowInfo(1)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.Mode != wm.Floating || info.Geometry.Width != 400 || info.Geometry.Height != 300 {
		t.Fatalf("floating window = %+v", info)
	}

	before := info.Geometry
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	info, _ = m.mgr.WindowInfo(1)
	if info.Geometry.X != before.X+40 || info.Geometry.Y != before.Y+30 {
		t.Fatalf("geometry after nudge = %+v, before %+v", info.Geometry, before)
	}
}

func TestModel_ErrorsShowInStatus(t *testing.T) {
	m := newModel(wm.Screen{Width: 800, Height: 600})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.status != "no focused window" {
		t.Fatalf("status = %q", m.status)
	}

	m = press(t, m, runes("u"))
	if m.status != "nothing to restore" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newModel(wm.Screen{Width: 800, Height: 600})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestModel_View(t *testing.T) {
	m := newModel(wm.Screen{Width: 800, Height: 600})
	if m.View() != "" {
		t.Fatalf("view before the first size message should be empty")
	}

	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, runes("a"), runes("a"))
	view := m.View()
	for _, want := range []string{"stackwm simulator", "tiled 2", "focus 2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRenderCanvas(t *testing.T) {
	focused := wm.Window(2)
	layout := wm.Layout{
		Focused: &focused,
		Windows: []wm.Placement{
			{Window: 1, Geometry: wm.Geometry{Width: 400, Height: 600}},
			{Window: 2, Geometry: wm.Geometry{X: 400, Width: 400, Height: 600}},
		},
	}

	lines := RenderCanvas(layout, wm.Screen{Width: 800, Height: 600}, 40, 12)
	if len(lines) != 12 {
		t.Fatalf("lines = %d, want 12", len(lines))
	}
	canvas := make([][]rune, len(lines))
	for i, l := range lines {
		canvas[i] = []rune(l)
	}

	checks := []struct {
		row, col int
		want     rune
	}{
		{0, 0, '╔'},
		{11, 39, '╝'},
		{1, 1, '┌'},
		{10, 19, '┘'},
		{5, 10, '1'},
		{1, 20, '┏'},
		{10, 38, '┛'},
		{5, 29, '2'},
	}
	for _, c := range checks {
		if got := canvas[c.row][c.col]; got != c.want {
			t.Errorf("canvas[%d][%d] = %q, want %q\n%s", c.row, c.col, got, c.want, strings.Join(lines, "\n"))
		}
	}
}

func TestRenderCanvas_TooSmall(t *testing.T) {
	lines := RenderCanvas(wm.Layout{}, wm.Screen{Width: 800, Height: 600}, 4, 2)
	if len(lines) != 2 || lines[0] != "    " {
		t.Fatalf("lines = %q", lines)
	}
}
