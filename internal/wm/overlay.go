package wm

// overlay holds the single fullscreen window, if any.
type overlay struct {
	window Window
	active bool
}

func (o *overlay) get() (Window, bool) {
	return o.window, o.active
}

func (o *overlay) is(w Window) bool {
	return o.active && o.window == w
}

func (o *overlay) set(w Window) {
	o.window = w
	o.active = true
}

// clear drops the override and reports whether one was active.
func (o *overlay) clear() bool {
	was := o.active
	o.window = 0
	o.active = false
	return was
}
