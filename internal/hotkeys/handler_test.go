package hotkeys

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/stackwm/internal/platform"
)

type recordingRunner struct {
	actions []string
	err     error
}

func (r *recordingRunner) RunAction(action string) error {
	r.actions = append(r.actions, action)
	return r.err
}

// fakeGrabs stands in for the X server's key grabs.
type fakeGrabs struct {
	callbacks map[string]func()
	detached  int
	reject    string
}

func newTestHandler(runner ActionRunner) (*Handler, *fakeGrabs) {
	grabs := &fakeGrabs{callbacks: make(map[string]func())}
	h := newHandler(runner, nil)
	h.register = func(key string, cb func()) error {
		if key == grabs.reject {
			return errors.New("key already grabbed")
		}
		grabs.callbacks[key] = cb
		return nil
	}
	h.detach = func() {
		grabs.detached++
		grabs.callbacks = make(map[string]func())
	}
	return h, grabs
}

func TestHandler_BindAndTrigger(t *testing.T) {
	runner := &recordingRunner{}
	h, grabs := newTestHandler(runner)

	err := h.Bind([][2]string{
		{"cycle_next", "Mod4-j"},
		{"swap_master", "Mod4-Return"},
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	grabs.callbacks["Mod4-Return"]()
	grabs.callbacks["Mod4-j"]()
	if want := []string{"swap_master", "cycle_next"}; !reflect.DeepEqual(runner.actions, want) {
		t.Fatalf("actions = %v, want %v", runner.actions, want)
	}

	// Failures are logged, not propagated to the event loop.
	runner.err = errors.New("no focused window")
	grabs.callbacks["Mod4-j"]()
}

func TestHandler_BindReportsFailuresAndContinues(t *testing.T) {
	h, grabs := newTestHandler(&recordingRunner{})
	grabs.reject = "Mod4-f"

	err := h.Bind([][2]string{
		{"toggle_fullscreen", "Mod4-f"},
		{"toggle_minimised", "Mod4-m"},
	})
	if err == nil || !strings.Contains(err.Error(), "toggle_fullscreen") {
		t.Fatalf("expected bind error naming the action, got %v", err)
	}
	if got := h.Bound(); !reflect.DeepEqual(got, map[string]string{"toggle_minimised": "Mod4-m"}) {
		t.Fatalf("bound = %v", got)
	}
}

func TestHandler_Rebind(t *testing.T) {
	h, grabs := newTestHandler(&recordingRunner{})
	if err := h.Bind([][2]string{{"cycle_next", "Mod4-j"}}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := h.Rebind([][2]string{{"cycle_next", "Mod4-n"}}); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	if grabs.detached != 1 {
		t.Fatalf("detached %d times, want 1", grabs.detached)
	}
	if _, ok := grabs.callbacks["Mod4-j"]; ok {
		t.Fatalf("old grab survived rebind")
	}
	if got := h.Bound(); got["cycle_next"] != "Mod4-n" || len(got) != 1 {
		t.Fatalf("bound = %v", got)
	}
}

type headlessBackend struct{ platform.Backend }

func TestNewHandler_RequiresX11(t *testing.T) {
	if _, err := NewHandler(headlessBackend{}, &recordingRunner{}, nil); !errors.Is(err, ErrNoX11) {
		t.Fatalf("expected ErrNoX11, got %v", err)
	}
}

func TestLockCombinations(t *testing.T) {
	got := lockCombinations([]uint16{xproto.ModMaskLock, xproto.ModMask2})
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []uint16{0, xproto.ModMaskLock, xproto.ModMask2, xproto.ModMaskLock | xproto.ModMask2}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("combinations = %v, want %v", got, want)
	}
}
