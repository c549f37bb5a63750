// Package tui is an interactive simulator for the window manager. It runs a
// manager with no display attached and draws the resulting layout as text.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/stackwm/internal/wm"
)

// Run starts the simulator for a screen of the given size and blocks until
// the user quits.
func Run(screen wm.Screen) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if screen.Width == 0 || screen.Height == 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", screen.Width, screen.Height)
	}

	p := tea.NewProgram(newModel(screen), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
