package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/stackwm/internal/wm"
)

// model is the root bubbletea model. It owns a manager that is not connected
// to any display, so every key acts on simulated windows.
type model struct {
	mgr    *wm.Manager
	next   wm.Window
	keys   keyMap
	help   help.Model
	status string

	width  int
	height int
}

func newModel(screen wm.Screen) model {
	return model{
		mgr:  wm.New(screen),
		next: 1,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.status = ""
		if err := m.handleKey(msg); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, m.keys.AddTiled):
		return m.add(wm.Tiled)
	case key.Matches(msg, m.keys.AddFloating):
		return m.add(wm.Floating)
	case key.Matches(msg, m.keys.Remove):
		return m.withFocused(m.mgr.RemoveWindow)
	case key.Matches(msg, m.keys.Next):
		m.mgr.CycleFocus(wm.Next)
	case key.Matches(msg, m.keys.Prev):
		m.mgr.CycleFocus(wm.Prev)
	case key.Matches(msg, m.keys.SwapNext):
		m.mgr.SwapWindows(wm.Next)
	case key.Matches(msg, m.keys.SwapPrev):
		m.mgr.SwapWindows(wm.Prev)
	case key.Matches(msg, m.keys.SwapMaster):
		return m.withFocused(m.mgr.SwapWithMaster)
	case key.Matches(msg, m.keys.ToggleFloating):
		return m.withFocused(m.mgr.ToggleFloating)
	case key.Matches(msg, m.keys.ToggleMinimised):
		return m.withFocused(m.mgr.ToggleMinimised)
	case key.Matches(msg, m.keys.UnminimiseLast):
		if _, ok := m.mgr.UnminimiseLast(); !ok {
			m.status = "nothing to restore"
		}
	case key.Matches(msg, m.keys.ToggleFullscreen):
		return m.withFocused(m.mgr.ToggleFullscreen)
	case key.Matches(msg, m.keys.Unfocus):
		m.mgr.Unfocus()
	case key.Matches(msg, m.keys.MoveLeft):
		return m.nudge(-1, 0)
	case key.Matches(msg, m.keys.MoveRight):
		return m.nudge(1, 0)
	case key.Matches(msg, m.keys.MoveUp):
		return m.nudge(0, -1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.nudge(0, 1)
	}
	return nil
}

func (m *model) withFocused(fn func(wm.Window) error) error {
	w, ok := m.mgr.FocusedWindow()
	if !ok {
		return fmt.Errorf("no focused window")
	}
	return fn(w)
}

// add creates the next simulated window. Floating windows start at half the
// screen size, staggered so they do not cover each other exactly.
func (m *model) add(mode wm.Mode) error {
	info := wm.WindowInfo{Window: m.next, Mode: mode}
	if mode == wm.Floating {
		screen := m.mgr.Screen()
		step := int(m.next%8) * int(screen.Width/32)
		info.Geometry = wm.Geometry{
			X:      int(screen.Width/4) + step,
			Y:      int(screen.Height/4) + step,
			Width:  screen.Width / 2,
			Height: screen.Height / 2,
		}
	}
	if err := m.mgr.AddWindow(info); err != nil {
		return err
	}
	m.next++
	return nil
}

// nudge moves the focused floating window by a twentieth of the screen.
func (m *model) nudge(dx, dy int) error {
	w, ok := m.mgr.FocusedWindow()
	if !ok {
		return fmt.Errorf("no focused window")
	}
	info, err := m.mgr.WindowInfo(w)
	if err != nil {
		return err
	}
	if info.Mode != wm.Floating || info.Fullscreen {
		return nil
	}

	screen := m.mgr.Screen()
	g := info.Geometry
	g.X += dx * int(screen.Width/20)
	g.Y += dy * int(screen.Height/20)
	return m.mgr.SetWindowGeometry(w, g)
}
