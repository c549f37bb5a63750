package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/palette"
)

func runPalette(args []string) int {
	fs := newFlagSet("palette", "Usage: stackwm palette [--launcher NAME]", "",
		"Pick a window or action from rofi, fuzzel, wofi or dmenu and run it.")
	name := fs.String("launcher", "auto", "Launcher to use (auto, rofi, fuzzel, wofi, dmenu)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "palette takes no arguments")
		fs.Usage()
		return 2
	}

	launcher, err := palette.NewLauncher(*name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := palette.Show(launcher, ipc.NewClient()); err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 0
		}
		return fail(err)
	}
	return 0
}
