package wm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWindow is returned when an operation names a window that is not managed.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrAlreadyManaged is returned when adding a window that is already managed.
	ErrAlreadyManaged = errors.New("window is already managed")
	// ErrNoFloatingWindow is returned by floating-only operations on a tiled window.
	ErrNoFloatingWindow = errors.New("window is not floating")
	// ErrNoTiledWindow is returned by tiling-only operations on a floating window.
	ErrNoTiledWindow = errors.New("window is not tiled")
)

// WindowError records the operation and window that caused one of the
// sentinel errors above.
type WindowError struct {
	Op     string
	Window Window
	Err    error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Window, e.Err)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}

func windowError(op string, w Window, err error) error {
	return &WindowError{Op: op, Window: w, Err: err}
}
