package daemon

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/1broseidon/stackwm/internal/config"
	"github.com/1broseidon/stackwm/internal/platform"
	"github.com/1broseidon/stackwm/internal/wm"
)

var external = platform.Display{
	ID:     1,
	Name:   "HDMI-1",
	Bounds: platform.Rect{X: 800, Width: 1920, Height: 1080},
	Usable: platform.Rect{X: 800, Width: 1920, Height: 1080},
}

func managed(h *Host) []wm.Window {
	var out []wm.Window
	for _, info := range h.ListWindows().Windows {
		out = append(out, info.Window)
	}
	return out
}

func TestReconciler_PinsFirstDisplay(t *testing.T) {
	backend := newFakeBackend(laptop, external)
	backend.setWindows(laptop.ID, windows(1, 2)...)
	backend.setWindows(external.ID, windows(7)...)

	h := NewHost(HostConfig{Config: config.DefaultConfig(), Backend: backend})
	r := NewReconciler(ReconcilerConfig{}, h, backend)

	r.ReconcileNow()
	if got := managed(h); !reflect.DeepEqual(got, []wm.Window{1, 2}) {
		t.Fatalf("managed = %v, want [1 2]", got)
	}

	// Focus moving to the other monitor does not move the manager with it.
	backend.mu.Lock()
	backend.active = 1
	backend.mu.Unlock()
	backend.setWindows(laptop.ID, windows(2)...)

	r.ReconcileNow()
	if got := managed(h); !reflect.DeepEqual(got, []wm.Window{2}) {
		t.Fatalf("managed = %v, want [2]", got)
	}
	if got := h.Screen(); got != (wm.Screen{Width: 800, Height: 570}) {
		t.Fatalf("screen = %+v", got)
	}
}

func TestReconciler_FallsBackWhenDisplayDisappears(t *testing.T) {
	backend := newFakeBackend(laptop, external)
	backend.setWindows(laptop.ID, windows(1)...)
	backend.setWindows(external.ID, windows(7)...)

	h := NewHost(HostConfig{Config: config.DefaultConfig(), Backend: backend})
	r := NewReconciler(ReconcilerConfig{}, h, backend)
	r.ReconcileNow()

	backend.mu.Lock()
	backend.displays = []platform.Display{external}
	backend.active = 0
	backend.mu.Unlock()

	r.ReconcileNow()
	if got := managed(h); !reflect.DeepEqual(got, []wm.Window{7}) {
		t.Fatalf("managed = %v, want [7]", got)
	}
	if got := h.Screen(); got != (wm.Screen{Width: 1920, Height: 1080}) {
		t.Fatalf("screen = %+v", got)
	}

	// Layout is translated onto the external monitor.
	calls := callsOf(backend.take(), "move")
	last := calls[len(calls)-1]
	if last.id != 7 || last.bounds != (platform.Rect{X: 800, Width: 1920, Height: 1080}) {
		t.Fatalf("last move = %+v", last)
	}
}

func TestReconciler_RunUntilCancelled(t *testing.T) {
	backend := newFakeBackend(laptop)
	backend.setWindows(laptop.ID, windows(3)...)

	h := NewHost(HostConfig{Config: config.DefaultConfig(), Backend: backend})
	r := NewReconciler(ReconcilerConfig{Interval: time.Hour}, h, backend)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	r.SetInterval(10 * time.Millisecond)

	deadline := time.Now().Add(3 * time.Second)
	for len(managed(h)) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("reconciler never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
