package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/tui"
	"github.com/1broseidon/stackwm/internal/wm"
)

// parseWindow accepts an X11 window id in hex (0x prefix) or decimal.
func parseWindow(s string) (wm.Window, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return wm.Window(v), nil
}

func parseDimension(name, s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return uint(v), nil
}

func optionalWindow(w *wm.Window) string {
	if w == nil {
		return "-"
	}
	return w.String()
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func runWindowCommand(name string, args []string, fn func(*ipc.Client, wm.Window) error) int {
	fs := newFlagSet(name, fmt.Sprintf("Usage: stackwm %s <window>", name))
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one window id\n", name)
		fs.Usage()
		return 2
	}
	w, err := parseWindow(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := fn(ipc.NewClient(), w); err != nil {
		return fail(err)
	}
	return 0
}

func runNoArgCommand(name string, args []string, fn func(*ipc.Client) error) int {
	fs := newFlagSet(name, "Usage: stackwm "+name)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		return 2
	}
	if err := fn(ipc.NewClient()); err != nil {
		return fail(err)
	}
	return 0
}

func runDirectionCommand(name string, args []string, fn func(*ipc.Client, wm.Direction) error) int {
	fs := newFlagSet(name, fmt.Sprintf("Usage: stackwm %s [prev|next]", name))
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	dir := wm.Next
	if fs.NArg() == 1 {
		var err error
		if dir, err = wm.ParseDirection(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}
	if err := fn(ipc.NewClient(), dir); err != nil {
		return fail(err)
	}
	return 0
}

func runAdd(args []string) int {
	fs := newFlagSet("add", "Usage: stackwm add [--floating] [--geometry X,Y,W,H] [--fullscreen] <window>")
	floating := fs.Bool("floating", false, "Add the window as floating")
	geometry := fs.String("geometry", "", "Initial floating geometry as X,Y,W,H")
	fullscreen := fs.Bool("fullscreen", false, "Show the window fullscreen")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	w, err := parseWindow(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	info := wm.WindowInfo{Window: w, Fullscreen: *fullscreen}
	if *floating {
		info.Mode = wm.Floating
	}
	if *geometry != "" {
		g, err := parseGeometry(strings.Split(*geometry, ","))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		info.Geometry = g
	}

	if err := ipc.NewClient().AddWindow(info); err != nil {
		return fail(err)
	}
	return 0
}

func parseGeometry(parts []string) (wm.Geometry, error) {
	if len(parts) != 4 {
		return wm.Geometry{}, fmt.Errorf("geometry needs X Y W H, got %d values", len(parts))
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return wm.Geometry{}, fmt.Errorf("invalid x %q", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return wm.Geometry{}, fmt.Errorf("invalid y %q", parts[1])
	}
	width, err := parseDimension("width", strings.TrimSpace(parts[2]))
	if err != nil {
		return wm.Geometry{}, err
	}
	height, err := parseDimension("height", strings.TrimSpace(parts[3]))
	if err != nil {
		return wm.Geometry{}, err
	}
	return wm.Geometry{X: x, Y: y, Width: width, Height: height}, nil
}

func runGeometry(args []string) int {
	fs := newFlagSet("geometry", "Usage: stackwm geometry <window> X Y W H")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 5 {
		fs.Usage()
		return 2
	}
	w, err := parseWindow(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	g, err := parseGeometry(fs.Args()[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := ipc.NewClient().SetGeometry(w, g); err != nil {
		return fail(err)
	}
	return 0
}

func runResize(args []string) int {
	fs := newFlagSet("resize", "Usage: stackwm resize W H", "",
		"Override the screen size. The daemon resets it when the display changes size.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	width, err := parseDimension("width", fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	height, err := parseDimension("height", fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := ipc.NewClient().ResizeScreen(wm.Screen{Width: width, Height: height}); err != nil {
		return fail(err)
	}
	return 0
}

func runUnminimiseLast(args []string) int {
	fs := newFlagSet("unminimise-last", "Usage: stackwm unminimise-last")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := ipc.NewClient().UnminimiseLast()
	if err != nil {
		return fail(err)
	}
	if !data.Restored {
		fmt.Println("nothing to restore")
		return 0
	}
	fmt.Printf("restored %s\n", data.Window)
	return 0
}

func runInfo(args []string) int {
	fs := newFlagSet("info", "Usage: stackwm info [--json] <window>")
	asJSON := fs.Bool("json", false, "Output JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	w, err := parseWindow(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	info, err := ipc.NewClient().WindowInfo(w)
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(info)
	}
	fmt.Printf("window:     %s\n", info.Window)
	fmt.Printf("mode:       %s\n", info.Mode)
	fmt.Printf("geometry:   %s\n", formatGeometry(info.Geometry))
	fmt.Printf("minimised:  %v\n", info.Minimised)
	fmt.Printf("fullscreen: %v\n", info.Fullscreen)
	return 0
}

func formatGeometry(g wm.Geometry) string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

func runWindows(args []string) int {
	fs := newFlagSet("windows", "Usage: stackwm windows [--json]", "",
		"List managed windows in stacking order, tiled first.")
	asJSON := fs.Bool("json", false, "Output JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := ipc.NewClient().ListWindows()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(data)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDOW\tMODE\tGEOMETRY\tFLAGS")
	for _, info := range data.Windows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Window, info.Mode, formatGeometry(info.Geometry), windowFlags(info, data))
	}
	if err := tw.Flush(); err != nil {
		return fail(err)
	}
	return 0
}

func windowFlags(info wm.WindowInfo, data *ipc.WindowsData) string {
	var flags []string
	if data.Focused != nil && *data.Focused == info.Window {
		flags = append(flags, "focused")
	}
	if data.Master != nil && *data.Master == info.Window {
		flags = append(flags, "master")
	}
	if info.Minimised {
		flags = append(flags, "minimised")
	}
	if info.Fullscreen {
		flags = append(flags, "fullscreen")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func runLayout(args []string) int {
	fs := newFlagSet("layout", "Usage: stackwm layout [--json | --draw]", "",
		"Show what the daemon renders: visible windows back to front.")
	asJSON := fs.Bool("json", false, "Output JSON")
	draw := fs.Bool("draw", false, "Sketch the layout sized to the terminal")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	client := ipc.NewClient()
	layout, err := client.GetLayout()
	if err != nil {
		return fail(err)
	}

	switch {
	case *asJSON:
		return printJSON(layout)
	case *draw:
		screen, err := client.GetScreen()
		if err != nil {
			return fail(err)
		}
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h-1
		}
		for _, line := range tui.RenderCanvas(*layout, *screen, width, height) {
			fmt.Println(line)
		}
		return 0
	}

	fmt.Printf("focused: %s\n", optionalWindow(layout.Focused))
	for _, p := range layout.Windows {
		fmt.Printf("%s\t%s\n", p.Window, formatGeometry(p.Geometry))
	}
	return 0
}
