package wm

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

var (
	screen800 = Screen{Width: 800, Height: 600}
	someGeom  = Geometry{X: 10, Y: 10, Width: 100, Height: 100}
	fullGeom  = Geometry{X: 0, Y: 0, Width: 800, Height: 600}
)

func tiled(w Window) WindowInfo {
	return WindowInfo{Window: w, Geometry: someGeom, Mode: Tiled}
}

func floating(w Window) WindowInfo {
	return WindowInfo{Window: w, Geometry: someGeom, Mode: Floating}
}

func mustAdd(t *testing.T, m *Manager, infos ...WindowInfo) {
	t.Helper()
	for _, info := range infos {
		if err := m.AddWindow(info); err != nil {
			t.Fatalf("AddWindow(%v): %v", info.Window, err)
		}
	}
}

func mustDo(t *testing.T, name string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
}

func wantWindows(t *testing.T, name string, got []Window, want ...Window) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func wantFocus(t *testing.T, m *Manager, want Window) {
	t.Helper()
	got, ok := m.FocusedWindow()
	if !ok || got != want {
		t.Fatalf("focused = %v (ok=%v), want %v", got, ok, want)
	}
}

func wantNoFocus(t *testing.T, m *Manager) {
	t.Helper()
	if got, ok := m.FocusedWindow(); ok {
		t.Fatalf("focused = %v, want none", got)
	}
}

func wantPlacements(t *testing.T, layout Layout, want ...Placement) {
	t.Helper()
	if !reflect.DeepEqual(layout.Windows, want) {
		t.Fatalf("layout windows:\n got  %v\n want %v", layout.Windows, want)
	}
}

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

// checkInvariants verifies every structural guarantee of the manager.
func checkInvariants(m *Manager) error {
	// Partition.
	seenFloating := false
	seen := make(map[Window]bool)
	for i := 0; i < m.store.len(); i++ {
		r := m.store.at(i)
		if seen[r.window] {
			return fmt.Errorf("duplicate window %v", r.window)
		}
		seen[r.window] = true
		if r.mode == Floating {
			seenFloating = true
		} else if seenFloating {
			return fmt.Errorf("tiled window %v after a floating window", r.window)
		}
	}

	// Focus validity.
	if m.focus >= m.store.len() || m.focus < -1 {
		return fmt.Errorf("focus index %d out of range (len %d)", m.focus, m.store.len())
	}
	if w, ok := m.FocusedWindow(); ok && m.IsMinimised(w) {
		return fmt.Errorf("focused window %v is minimised", w)
	}

	// Fullscreen uniqueness and focus.
	if w, ok := m.FullscreenWindow(); ok {
		if !m.IsManaged(w) {
			return fmt.Errorf("fullscreen window %v is not managed", w)
		}
		if f, ok := m.FocusedWindow(); !ok || f != w {
			return fmt.Errorf("fullscreen window %v is not focused", w)
		}
		count := 0
		for _, v := range m.Windows() {
			if info, _ := m.WindowInfo(v); info.Fullscreen {
				count++
			}
		}
		if count != 1 {
			return fmt.Errorf("%d fullscreen windows", count)
		}
	}

	// Minimisation consistency.
	minimised := m.MinimisedWindows()
	inLedger := make(map[Window]bool)
	for _, w := range minimised {
		if !m.IsManaged(w) {
			return fmt.Errorf("minimised window %v is not managed", w)
		}
		inLedger[w] = true
	}
	for _, w := range m.Windows() {
		info, err := m.WindowInfo(w)
		if err != nil {
			return err
		}
		if info.Minimised != inLedger[w] || m.IsMinimised(w) != inLedger[w] {
			return fmt.Errorf("window %v minimised flag disagrees with ledger", w)
		}
	}

	// Master.
	if master, ok := m.MasterWindow(); ok && !m.IsManaged(master) {
		return fmt.Errorf("master %v is not managed", master)
	}
	if _, ok := m.MasterWindow(); ok && len(m.Windows()) == 0 {
		return fmt.Errorf("master present without windows")
	}
	return nil
}
