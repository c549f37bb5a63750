package tiling

// Rect represents a window position and size
type Rect struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  uint `json:"width"`
	Height uint `json:"height"`
}

// Full returns the rectangle covering a width×height screen anchored at the origin.
func Full(width, height uint) Rect {
	return Rect{Width: width, Height: height}
}

// MasterStack computes positions for numWindows participants of a master-stack
// layout inside screen.
//
// A single window receives the whole screen. Otherwise the first window (the
// master) takes the left half at full height, and the remaining windows split
// the right half into equal horizontal slices, top to bottom. Slice heights use
// integer division; leftover pixels at the bottom stay unassigned so the result
// is reproducible for any screen size.
func MasterStack(numWindows int, screen Rect) []Rect {
	if numWindows <= 0 {
		return nil
	}

	if numWindows == 1 {
		return []Rect{screen}
	}

	halfWidth := screen.Width / 2
	stackCount := uint(numWindows - 1)
	sliceHeight := screen.Height / stackCount

	positions := make([]Rect, numWindows)
	positions[0] = Rect{
		X:      screen.X,
		Y:      screen.Y,
		Width:  halfWidth,
		Height: screen.Height,
	}

	rightX := screen.X + int(halfWidth)
	for i := 1; i < numWindows; i++ {
		positions[i] = Rect{
			X:      rightX,
			Y:      screen.Y + (i-1)*int(sliceHeight),
			Width:  halfWidth,
			Height: sliceHeight,
		}
	}

	return positions
}

// Translate shifts r by the given offset. Used to map screen-relative layouts
// onto a display that does not start at the root origin.
func Translate(r Rect, dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether the point lies inside r.
func Contains(r Rect, x, y int) bool {
	return x >= r.X && x < r.X+int(r.Width) && y >= r.Y && y < r.Y+int(r.Height)
}
