package daemon

import (
	"fmt"
	"sync"

	"github.com/1broseidon/stackwm/internal/platform"
)

type call struct {
	op     string
	id     platform.WindowID
	bounds platform.Rect
}

// fakeBackend records every request and serves a scripted window list.
type fakeBackend struct {
	mu       sync.Mutex
	displays []platform.Display
	active   int // index into displays
	windows  map[int][]platform.Window
	focused  platform.WindowID
	calls    []call
}

func newFakeBackend(displays ...platform.Display) *fakeBackend {
	return &fakeBackend{displays: displays, windows: make(map[int][]platform.Window)}
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.Display(nil), f.displays...), nil
}

func (f *fakeBackend) ActiveDisplay() (platform.Display, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.displays) == 0 {
		return platform.Display{}, fmt.Errorf("no displays")
	}
	return f.displays[f.active], nil
}

func (f *fakeBackend) ActiveWindow() (platform.WindowID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused, nil
}

func (f *fakeBackend) ListWindowsOnDisplay(displayID int) ([]platform.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.Window(nil), f.windows[displayID]...), nil
}

func (f *fakeBackend) record(c call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	return f.record(call{op: "move", id: id, bounds: bounds})
}

func (f *fakeBackend) Minimize(id platform.WindowID) error {
	return f.record(call{op: "minimize", id: id})
}

func (f *fakeBackend) Activate(id platform.WindowID) error {
	return f.record(call{op: "activate", id: id})
}

func (f *fakeBackend) Close(id platform.WindowID) error {
	return f.record(call{op: "close", id: id})
}

// take returns and clears the recorded calls.
func (f *fakeBackend) take() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := f.calls
	f.calls = nil
	return calls
}

func (f *fakeBackend) setWindows(displayID int, windows ...platform.Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows[displayID] = windows
}

func callsOf(calls []call, op string) []call {
	var out []call
	for _, c := range calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}
