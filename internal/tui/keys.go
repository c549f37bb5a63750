package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	AddTiled         key.Binding
	AddFloating      key.Binding
	Remove           key.Binding
	Next             key.Binding
	Prev             key.Binding
	SwapNext         key.Binding
	SwapPrev         key.Binding
	SwapMaster       key.Binding
	ToggleFloating   key.Binding
	ToggleMinimised  key.Binding
	UnminimiseLast   key.Binding
	ToggleFullscreen key.Binding
	Unfocus          key.Binding
	MoveLeft         key.Binding
	MoveRight        key.Binding
	MoveUp           key.Binding
	MoveDown         key.Binding
	Help             key.Binding
	Quit             key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		AddTiled:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add tiled")),
		AddFloating:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add floating")),
		Remove:           key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "remove")),
		Next:             key.NewBinding(key.WithKeys("j", "tab"), key.WithHelp("j/tab", "focus next")),
		Prev:             key.NewBinding(key.WithKeys("k", "shift+tab"), key.WithHelp("k", "focus prev")),
		SwapNext:         key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "swap next")),
		SwapPrev:         key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "swap prev")),
		SwapMaster:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "swap master")),
		ToggleFloating:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "float/tile")),
		ToggleMinimised:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimise")),
		UnminimiseLast:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore last")),
		ToggleFullscreen: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fullscreen")),
		Unfocus:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unfocus")),
		MoveLeft:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
		MoveRight:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
		MoveUp:           key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		MoveDown:         key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		Help:             key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:             key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddTiled, k.AddFloating, k.Next, k.SwapMaster, k.ToggleFloating, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddTiled, k.AddFloating, k.Remove, k.Unfocus},
		{k.Next, k.Prev, k.SwapNext, k.SwapPrev, k.SwapMaster},
		{k.ToggleFloating, k.ToggleMinimised, k.UnminimiseLast, k.ToggleFullscreen},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Help, k.Quit},
	}
}
