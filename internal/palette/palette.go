// Package palette shows a menu of windows and window actions through an
// external dmenu-style launcher and runs the chosen entry against the daemon.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the launcher is closed without a selection.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row of the menu.
type Item struct {
	Label    string
	Action   string
	IsHeader bool // not selectable
	IsActive bool // highlighted and preselected
}

// Launcher displays items and returns the one the user picked.
type Launcher interface {
	Show(prompt string, items []Item) (Item, error)
}

// launchers in priority order for auto detection.
var launchers = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// NewLauncher returns the named launcher, or the first one found in PATH for
// "" and "auto".
func NewLauncher(name string) (Launcher, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		for _, candidate := range launchers {
			if _, err := exec.LookPath(candidate); err == nil {
				return newCommandLauncher(candidate), nil
			}
		}
		return nil, fmt.Errorf("no launcher found in PATH (looked for: %s)", strings.Join(launchers, ", "))
	}

	for _, known := range launchers {
		if name != known {
			continue
		}
		if _, err := exec.LookPath(name); err != nil {
			return nil, fmt.Errorf("launcher %q not found in PATH", name)
		}
		return newCommandLauncher(name), nil
	}
	return nil, fmt.Errorf("unknown launcher %q (expected: auto, %s)", name, strings.Join(launchers, ", "))
}
