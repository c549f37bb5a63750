package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/stackwm/internal/wm"
)

// RenderCanvas draws layout on a width x height character canvas, scaling the
// screen to fit. Placements are drawn in order, so later ones cover earlier
// ones; the focused window gets a heavy border.
func RenderCanvas(layout wm.Layout, screen wm.Screen, width, height int) []string {
	if width < 5 || height < 3 || screen.Width == 0 || screen.Height == 0 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	focused, hasFocus := layout.FocusedWindow()
	for _, p := range layout.Windows {
		drawWindow(canvas, p, hasFocus && p.Window == focused, screen, width, height)
	}
	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

type frame struct {
	h, v, tl, tr, bl, br rune
}

var (
	lightFrame = frame{'─', '│', '┌', '┐', '└', '┘'}
	heavyFrame = frame{'━', '┃', '┏', '┓', '┗', '┛'}
)

func drawWindow(canvas [][]rune, p wm.Placement, focused bool, screen wm.Screen, canvasW, canvasH int) {
	g := p.Geometry
	x1 := scale(g.X, screen.Width, canvasW)
	y1 := scale(g.Y, screen.Height, canvasH)
	x2 := scale(g.X+int(g.Width), screen.Width, canvasW) - 1
	y2 := scale(g.Y+int(g.Height), screen.Height, canvasH) - 1

	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 > canvasW-2 {
		x2 = canvasW - 2
	}
	if y2 > canvasH-2 {
		y2 = canvasH - 2
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	f := lightFrame
	if focused {
		f = heavyFrame
	}

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			canvas[y][x] = ' '
		}
	}
	for x := x1; x <= x2; x++ {
		canvas[y1][x] = f.h
		canvas[y2][x] = f.h
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = f.v
		canvas[y][x2] = f.v
	}
	canvas[y1][x1] = f.tl
	canvas[y1][x2] = f.tr
	canvas[y2][x1] = f.bl
	canvas[y2][x2] = f.br

	label := []rune(fmt.Sprintf("%d", uint32(p.Window)))
	centerY := (y1 + y2) / 2
	startX := (x1+x2)/2 - len(label)/2
	if centerY <= y1 || centerY >= y2 {
		return
	}
	for i, r := range label {
		if x := startX + i; x > x1 && x < x2 {
			canvas[centerY][x] = r
		}
	}
}

// scale maps a screen coordinate onto the canvas. Coordinates outside the
// screen are clamped by the caller.
func scale(v int, screenSize uint, canvasSize int) int {
	return v * canvasSize / int(screenSize)
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
