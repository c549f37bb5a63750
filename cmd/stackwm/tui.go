package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/stackwm/internal/tui"
	"github.com/1broseidon/stackwm/internal/wm"
)

func runTUI(args []string) int {
	fs := newFlagSet("tui", "Usage: stackwm tui [--width W] [--height H]", "",
		"Interactive simulator: add windows and try every operation on a",
		"screen that is not connected to any display. Press ? for keys.")
	width := fs.Uint("width", 1920, "Simulated screen width")
	height := fs.Uint("height", 1080, "Simulated screen height")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if err := tui.Run(wm.Screen{Width: *width, Height: *height}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
