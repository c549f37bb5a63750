package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/1broseidon/stackwm/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "add":
		os.Exit(runAdd(os.Args[2:]))
	case "remove":
		os.Exit(runWindowCommand("remove", os.Args[2:], (*ipc.Client).RemoveWindow))
	case "focus":
		os.Exit(runWindowCommand("focus", os.Args[2:], (*ipc.Client).Focus))
	case "unfocus":
		os.Exit(runNoArgCommand("unfocus", os.Args[2:], (*ipc.Client).Unfocus))
	case "cycle":
		os.Exit(runDirectionCommand("cycle", os.Args[2:], (*ipc.Client).CycleFocus))
	case "swap-master":
		os.Exit(runWindowCommand("swap-master", os.Args[2:], (*ipc.Client).SwapWithMaster))
	case "swap":
		os.Exit(runDirectionCommand("swap", os.Args[2:], (*ipc.Client).SwapWindows))
	case "float":
		os.Exit(runWindowCommand("float", os.Args[2:], (*ipc.Client).ToggleFloating))
	case "geometry":
		os.Exit(runGeometry(os.Args[2:]))
	case "minimise", "minimize":
		os.Exit(runWindowCommand("minimise", os.Args[2:], (*ipc.Client).ToggleMinimised))
	case "unminimise-last", "unminimize-last":
		os.Exit(runUnminimiseLast(os.Args[2:]))
	case "fullscreen":
		os.Exit(runWindowCommand("fullscreen", os.Args[2:], (*ipc.Client).ToggleFullscreen))
	case "info":
		os.Exit(runInfo(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "reload":
		os.Exit(runNoArgCommand("reload", os.Args[2:], (*ipc.Client).Reload))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stackwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the stackwm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload the daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  windows             List managed windows")
	fmt.Fprintln(w, "  layout              Show the current layout (--draw for a sketch)")
	fmt.Fprintln(w, "  info <window>       Show one window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  add <window>        Start managing a window")
	fmt.Fprintln(w, "  remove <window>     Stop managing a window")
	fmt.Fprintln(w, "  focus <window>      Focus a window")
	fmt.Fprintln(w, "  unfocus             Clear the focus")
	fmt.Fprintln(w, "  cycle [prev|next]   Move the focus")
	fmt.Fprintln(w, "  swap-master <window>  Swap a window with the master")
	fmt.Fprintln(w, "  swap [prev|next]    Swap the focused window with a neighbour")
	fmt.Fprintln(w, "  float <window>      Toggle between tiled and floating")
	fmt.Fprintln(w, "  geometry <window> X Y W H  Move a floating window")
	fmt.Fprintln(w, "  minimise <window>   Toggle minimised")
	fmt.Fprintln(w, "  unminimise-last     Restore the most recently minimised window")
	fmt.Fprintln(w, "  fullscreen <window> Toggle fullscreen")
	fmt.Fprintln(w, "  resize W H          Override the screen size")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Write the default configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  palette             Pick a window or action from a launcher menu")
	fmt.Fprintln(w, "  tui                 Open the interactive layout simulator")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Windows are X11 ids, in hex (0x3a00007) or decimal.")
	fmt.Fprintln(w, "Run 'stackwm <command> --help' for command-specific options.")
}

// newFlagSet returns a flag set that reports errors on stderr and prints
// usage lines on -h.
func newFlagSet(name string, usage ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		for _, line := range usage {
			fmt.Fprintln(os.Stderr, line)
		}
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args and returns the exit code to use when parsing
// stopped the command.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "Usage: stackwm status", "", "Show daemon status via IPC.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	display := status.Display
	if display == "" {
		display = "(headless)"
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("display:        %s\n", display)
	fmt.Printf("screen:         %dx%d\n", status.Screen.Width, status.Screen.Height)
	fmt.Printf("windows:        %d (tiled %d, floating %d, minimised %d)\n",
		status.Windows, status.Tiled, status.Floating, status.Minimised)
	fmt.Printf("focused:        %s\n", optionalWindow(status.Focused))
	fmt.Printf("fullscreen:     %s\n", optionalWindow(status.Fullscreen))
	fmt.Printf("uptime:         %s (started %s)\n",
		strings.TrimSpace(humanize.RelTime(status.StartedAt, time.Now(), "", "")),
		humanize.Time(status.StartedAt))
	return 0
}
