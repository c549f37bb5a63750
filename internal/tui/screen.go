package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/stackwm/internal/wm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	canvasStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := titleStyle.Width(m.width).Render(fmt.Sprintf("stackwm simulator  %dx%d", m.mgr.Screen().Width, m.mgr.Screen().Height))
	status := statusBarStyle.Width(m.width).Render(m.statusLine())
	helpView := helpStyle.Render(m.help.View(m.keys))

	used := lipgloss.Height(title) + lipgloss.Height(status) + lipgloss.Height(helpView)
	canvasHeight := m.height - used
	if canvasHeight < 3 {
		canvasHeight = 3
	}
	canvas := RenderCanvas(m.mgr.Layout(), m.mgr.Screen(), m.width, canvasHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		canvasStyle.Render(strings.Join(canvas, "\n")),
		status,
		helpView,
	)
}

func (m model) statusLine() string {
	if m.status != "" {
		return errorStyle.Render(m.status)
	}

	var tiled, floating int
	for _, w := range m.mgr.Windows() {
		if m.mgr.IsFloating(w) {
			floating++
		} else {
			tiled++
		}
	}

	parts := []string{fmt.Sprintf("tiled %d", tiled), fmt.Sprintf("floating %d", floating)}
	if minimised := m.mgr.MinimisedWindows(); len(minimised) > 0 {
		parts = append(parts, "minimised "+joinWindows(minimised))
	}
	if w, ok := m.mgr.FullscreenWindow(); ok {
		parts = append(parts, fmt.Sprintf("fullscreen %d", uint32(w)))
	}
	if w, ok := m.mgr.FocusedWindow(); ok {
		parts = append(parts, fmt.Sprintf("focus %d", uint32(w)))
	} else {
		parts = append(parts, "no focus")
	}
	return strings.Join(parts, "  ")
}

func joinWindows(ws []wm.Window) string {
	ids := make([]string, len(ws))
	for i, w := range ws {
		ids[i] = fmt.Sprintf("%d", uint32(w))
	}
	return "[" + strings.Join(ids, " ") + "]"
}
