package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/stackwm/internal/config"
	"github.com/1broseidon/stackwm/internal/daemon"
	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/runtimepath"
	"github.com/1broseidon/stackwm/internal/wm"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    wm.Window
		wantErr bool
	}{
		{in: "0x3a00007", want: 0x3a00007},
		{in: "42", want: 42},
		{in: " 0X10 ", want: 16},
		{in: "window", wantErr: true},
		{in: "0x1ffffffff", wantErr: true},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseWindow(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWindow(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseWindow(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseGeometry(t *testing.T) {
	g, err := parseGeometry([]string{"-10", "20", "300", "200"})
	if err != nil {
		t.Fatalf("parseGeometry: %v", err)
	}
	if g != (wm.Geometry{X: -10, Y: 20, Width: 300, Height: 200}) {
		t.Fatalf("geometry = %+v", g)
	}

	for _, bad := range [][]string{
		{"1", "2", "3"},
		{"x", "0", "10", "10"},
		{"0", "0", "0", "10"},
		{"0", "0", "10", "-5"},
	} {
		if _, err := parseGeometry(bad); err == nil {
			t.Errorf("parseGeometry(%v) should fail", bad)
		}
	}
}

func TestRunConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if rc := runConfig([]string{"init", "--path", path}); rc != 0 {
		t.Fatalf("init rc=%d, want 0", rc)
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if res.Config.Screen != config.DefaultConfig().Screen {
		t.Fatalf("screen = %+v", res.Config.Screen)
	}

	if rc := runConfig([]string{"init", "--path", path}); rc != 1 {
		t.Fatalf("second init rc=%d, want 1", rc)
	}
	if rc := runConfig([]string{"init", "--path", path, "--force"}); rc != 0 {
		t.Fatalf("forced init rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"validate", "--path", path}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}
}

func TestRunConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("screen:\n  width: 0\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1", rc)
	}
	if rc := runConfig([]string{"bogus"}); rc != 2 {
		t.Fatalf("unknown subcommand rc=%d, want 2", rc)
	}
}

// startDaemon serves a headless host on a short socket path and points the
// CLI at it.
func startDaemon(t *testing.T) *daemon.Host {
	t.Helper()
	dir, err := os.MkdirTemp("", "stackwm-cli")
	if err != nil {
		t.Fatalf("mkdtemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := config.DefaultConfig()
	cfg.Screen = wm.Screen{Width: 800, Height: 600}
	host := daemon.NewHost(daemon.HostConfig{Config: cfg})

	socket := filepath.Join(dir, "s.sock")
	srv := ipc.NewServerAt(socket, host)
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(srv.Stop)
	t.Setenv(runtimepath.SocketEnv, socket)
	return host
}

func TestWindowCommands(t *testing.T) {
	host := startDaemon(t)

	steps := []struct {
		name string
		rc   int
	}{
		{"add", runAdd([]string{"0x10"})},
		{"add floating", runAdd([]string{"--floating", "--geometry", "10,10,200,100", "0x20"})},
		{"add tiled", runAdd([]string{"48"})},
		{"swap-master", runWindowCommand("swap-master", []string{"0x30"}, (*ipc.Client).SwapWithMaster)},
		{"geometry", runGeometry([]string{"0x20", "50", "60", "300", "200"})},
		{"cycle", runDirectionCommand("cycle", []string{"prev"}, (*ipc.Client).CycleFocus)},
		{"minimise", runWindowCommand("minimise", []string{"0x10"}, (*ipc.Client).ToggleMinimised)},
		{"resize", runResize([]string{"1000", "500"})},
		{"windows", runWindows(nil)},
		{"layout", runLayout([]string{"--json"})},
		{"info", runInfo([]string{"0x20"})},
	}
	for _, s := range steps {
		if s.rc != 0 {
			t.Fatalf("%s rc=%d, want 0", s.name, s.rc)
		}
	}

	data := host.ListWindows()
	if len(data.Windows) != 3 || data.Master == nil || *data.Master != 0x30 {
		t.Fatalf("windows = %+v", data)
	}
	if len(data.Minimised) != 1 || data.Minimised[0] != 0x10 {
		t.Fatalf("minimised = %v", data.Minimised)
	}
	if host.Screen() != (wm.Screen{Width: 1000, Height: 500}) {
		t.Fatalf("screen = %+v", host.Screen())
	}
	info, err := host.WindowInfo(0x20)
	if err != nil || info.Geometry != (wm.Geometry{X: 50, Y: 60, Width: 300, Height: 200}) {
		t.Fatalf("floating window = %+v, %v", info, err)
	}

	if rc := runWindowCommand("focus", []string{"0x99"}, (*ipc.Client).Focus); rc != 1 {
		t.Fatalf("focus unknown rc=%d, want 1", rc)
	}
	if rc := runWindowCommand("focus", []string{"nope"}, (*ipc.Client).Focus); rc != 2 {
		t.Fatalf("focus bad id rc=%d, want 2", rc)
	}
	if rc := runDirectionCommand("swap", []string{"sideways"}, (*ipc.Client).SwapWindows); rc != 2 {
		t.Fatalf("swap bad direction rc=%d, want 2", rc)
	}
}

func TestUnminimiseLastCommand(t *testing.T) {
	host := startDaemon(t)

	if rc := runUnminimiseLast(nil); rc != 0 {
		t.Fatalf("empty ledger rc=%d, want 0", rc)
	}
	if err := host.AddWindow(wm.WindowInfo{Window: 7}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := host.ToggleMinimised(7); err != nil {
		t.Fatalf("minimise: %v", err)
	}
	if rc := runUnminimiseLast(nil); rc != 0 {
		t.Fatalf("restore rc=%d, want 0", rc)
	}
	if data := host.ListWindows(); len(data.Minimised) != 0 || data.Focused == nil || *data.Focused != 7 {
		t.Fatalf("after restore: %+v", data)
	}
}
