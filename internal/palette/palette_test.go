package palette

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/wm"
)

func fakeRun(output string, err error, got *[]string, stdin *string) func(string, []string, string) (string, error) {
	return func(name string, args []string, in string) (string, error) {
		*got = append([]string{name}, args...)
		*stdin = in
		return output, err
	}
}

func TestRofiArgsAndIndexSelection(t *testing.T) {
	var args []string
	var stdin string
	l := newCommandLauncher("rofi")
	l.run = fakeRun("2", nil, &args, &stdin)

	items := []Item{
		{Label: "Windows", IsHeader: true},
		{Label: "0x1 tiled", Action: "focus:0x1"},
		{Label: "0x2 tiled", Action: "focus:0x2", IsActive: true},
	}
	got, err := l.Show("stackwm", items)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got.Action != "focus:0x2" {
		t.Fatalf("selected %+v", got)
	}

	want := []string{"rofi", "-dmenu", "-i", "-p", "stackwm", "-format", "i", "-no-custom", "-a", "2", "-u", "0", "-selected-row", "2"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("args = %q\nwant   %q", args, want)
	}
	if stdin != "── Windows ──\n0x1 tiled\n0x2 tiled" {
		t.Fatalf("stdin = %q", stdin)
	}
}

func TestDmenuDisambiguatesLabels(t *testing.T) {
	var args []string
	var stdin string
	l := newCommandLauncher("dmenu")
	l.run = fakeRun("Same (2)", nil, &args, &stdin)

	items := []Item{
		{Label: "Same", Action: "a"},
		{Label: "Same", Action: "b"},
	}
	got, err := l.Show("stackwm", items)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got.Action != "b" {
		t.Fatalf("selected %+v, want action b", got)
	}
	if stdin != "Same\nSame (2)" {
		t.Fatalf("stdin = %q", stdin)
	}
}

func TestShowCancelAndHeaderSelection(t *testing.T) {
	var args []string
	var stdin string
	items := []Item{{Label: "Layout", IsHeader: true}, {Label: "Focus next", Action: "cycle_next"}}

	l := newCommandLauncher("fuzzel")
	l.run = fakeRun("", ErrCancelled, &args, &stdin)
	if _, err := l.Show("stackwm", items); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}

	l.run = fakeRun("0", nil, &args, &stdin)
	if _, err := l.Show("stackwm", items); !errors.Is(err, ErrCancelled) {
		t.Fatalf("selecting a header should cancel, got %v", err)
	}

	l.run = fakeRun("7", nil, &args, &stdin)
	if _, err := l.Show("stackwm", items); err == nil {
		t.Fatalf("expected out of range selection to fail")
	}
}

func TestNewLauncherRejectsUnknown(t *testing.T) {
	if _, err := NewLauncher("zenity"); err == nil || !strings.Contains(err.Error(), "unknown launcher") {
		t.Fatalf("expected unknown launcher error, got %v", err)
	}
}

// recorder is a Daemon that logs calls.
type recorder struct {
	data  ipc.WindowsData
	calls []string
}

func (r *recorder) ListWindows() (*ipc.WindowsData, error) { return &r.data, nil }
func (r *recorder) log(op string, w wm.Window) error {
	r.calls = append(r.calls, op+" "+w.String())
	return nil
}
func (r *recorder) Focus(w wm.Window) error          { return r.log("focus", w) }
func (r *recorder) Unfocus() error                   { return r.log("unfocus", 0) }
func (r *recorder) SwapWithMaster(w wm.Window) error { return r.log("swap_master", w) }
func (r *recorder) ToggleFloating(w wm.Window) error { return r.log("toggle_floating", w) }
func (r *recorder) ToggleMinimised(w wm.Window) error {
	return r.log("toggle_minimised", w)
}
func (r *recorder) ToggleFullscreen(w wm.Window) error {
	return r.log("toggle_fullscreen", w)
}
func (r *recorder) RemoveWindow(w wm.Window) error { return r.log("remove", w) }
func (r *recorder) CycleFocus(dir wm.Direction) error {
	r.calls = append(r.calls, "cycle "+dir.String())
	return nil
}
func (r *recorder) SwapWindows(dir wm.Direction) error {
	r.calls = append(r.calls, "swap "+dir.String())
	return nil
}
func (r *recorder) UnminimiseLast() (*ipc.UnminimiseData, error) {
	r.calls = append(r.calls, "unminimise_last")
	return &ipc.UnminimiseData{}, nil
}

func sampleState() ipc.WindowsData {
	focused, master := wm.Window(0x2), wm.Window(0x1)
	return ipc.WindowsData{
		Windows: []wm.WindowInfo{
			{Window: 0x1, Geometry: wm.Geometry{Width: 400, Height: 600}},
			{Window: 0x2, Geometry: wm.Geometry{X: 400, Width: 400, Height: 600}},
			{Window: 0x3, Mode: wm.Floating, Minimised: true, Geometry: wm.Geometry{Width: 200, Height: 100}},
		},
		Focused:   &focused,
		Master:    &master,
		Minimised: []wm.Window{0x3},
	}
}

func TestEntries(t *testing.T) {
	data := sampleState()
	items := Entries(&data)

	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	want := []string{
		"Windows",
		"0x1  tiled  400x600  [master]",
		"0x2  tiled  400x600",
		"0x3  floating  200x100  [minimised]",
		"Focused 0x2",
		"Swap with master", "Toggle floating", "Minimise", "Toggle fullscreen", "Stop managing", "Clear focus",
		"Layout",
		"Focus next", "Focus previous", "Swap with next", "Swap with previous", "Restore last minimised",
	}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels =\n%q\nwant\n%q", labels, want)
	}
	if !items[2].IsActive || items[1].IsActive {
		t.Fatalf("focused window row should be active")
	}
}

func TestEntries_NoFocusNoMinimised(t *testing.T) {
	items := Entries(&ipc.WindowsData{Windows: []wm.WindowInfo{{Window: 9}}})
	for _, item := range items {
		if item.Action == "swap_master" || item.Action == "unminimise_last" {
			t.Fatalf("unexpected entry %+v", item)
		}
	}
}

func TestShowRunsSelection(t *testing.T) {
	r := &recorder{data: sampleState()}

	var args []string
	var stdin string
	l := newCommandLauncher("rofi")

	for _, tc := range []struct {
		selection string
		want      string
	}{
		{"3", "focus 0x3"},
		{"5", "swap_master 0x2"},
		{"9", "remove 0x2"},
		{"13", "cycle prev"},
		{"16", "unminimise_last"},
	} {
		r.calls = nil
		l.run = fakeRun(tc.selection, nil, &args, &stdin)
		if err := Show(l, r); err != nil {
			t.Fatalf("selection %s: %v", tc.selection, err)
		}
		if len(r.calls) != 1 || r.calls[0] != tc.want {
			t.Fatalf("selection %s: calls = %v, want %q", tc.selection, r.calls, tc.want)
		}
	}
}

func TestRunWithoutFocus(t *testing.T) {
	r := &recorder{}
	if err := Run(r, "toggle_floating", nil); !errors.Is(err, errNoFocus) {
		t.Fatalf("expected errNoFocus, got %v", err)
	}
	if err := Run(r, "bogus", nil); err == nil {
		t.Fatalf("expected unknown action error")
	}
	if err := Run(r, "focus:zz", nil); err == nil {
		t.Fatalf("expected invalid window error")
	}
}
