// Package hotkeys binds global key sequences to daemon actions.
package hotkeys

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/stackwm/internal/platform"
)

// ErrNoX11 is returned when the backend does not expose an X connection.
var ErrNoX11 = errors.New("hotkeys require an X11 backend")

// ActionRunner performs named actions, e.g. *daemon.Host.
type ActionRunner interface {
	RunAction(action string) error
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	runner ActionRunner
	logger *slog.Logger

	// register grabs key on the root window; detach releases every grab.
	register func(key string, callback func()) error
	detach   func()

	mu    sync.Mutex
	bound map[string]string // action -> key
}

var ignoreModsOnce sync.Once

// NewHandler creates a handler grabbing keys through backend.
func NewHandler(backend platform.Backend, runner ActionRunner, logger *slog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, ErrNoX11
	}
	xu, root := accessor.XUtil(), accessor.RootWindow()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	h := newHandler(runner, logger)
	h.register = func(key string, callback func()) error {
		return keybind.KeyPressFun(func(*xgbutil.XUtil, xevent.KeyPressEvent) {
			callback()
		}).Connect(xu, root, key, true)
	}
	h.detach = func() {
		keybind.Detach(xu, root)
	}
	return h, nil
}

func newHandler(runner ActionRunner, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		runner: runner,
		logger: logger,
		bound:  make(map[string]string),
	}
}

// Bind grabs every (action, key) pair. A key that cannot be grabbed is
// reported but does not stop the others from binding.
func (h *Handler) Bind(bindings [][2]string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for _, pair := range bindings {
		action, key := pair[0], pair[1]
		if err := h.register(key, h.trigger(action)); err != nil {
			errs = append(errs, fmt.Errorf("bind %s to %q: %w", action, key, err))
			continue
		}
		h.bound[action] = key
		h.logger.Debug("hotkey bound", "action", action, "key", key)
	}
	return errors.Join(errs...)
}

// Rebind releases every grab and binds the new set.
func (h *Handler) Rebind(bindings [][2]string) error {
	h.mu.Lock()
	if h.detach != nil {
		h.detach()
	}
	h.bound = make(map[string]string)
	h.mu.Unlock()
	return h.Bind(bindings)
}

// Bound returns a copy of the action -> key bindings in effect.
func (h *Handler) Bound() map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]string, len(h.bound))
	for action, key := range h.bound {
		out[action] = key
	}
	return out
}

func (h *Handler) trigger(action string) func() {
	return func() {
		h.logger.Debug("hotkey pressed", "action", action)
		if err := h.runner.RunAction(action); err != nil {
			h.logger.Info("hotkey action failed", "action", action, "error", err)
		}
	}
}

// configureIgnoreMods makes grabs fire regardless of CapsLock, NumLock and
// ScrollLock.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	locks := []uint16{xproto.ModMaskLock}
	for _, keysym := range []string{"Num_Lock", "Scroll_Lock"} {
		mask := modMaskForKeysym(xu, keysym)
		if mask != 0 && !containsMask(locks, mask) {
			locks = append(locks, mask)
		}
	}
	xevent.IgnoreMods = lockCombinations(locks)
}

// lockCombinations returns every OR-combination of masks, including 0.
func lockCombinations(masks []uint16) []uint16 {
	out := make([]uint16, 0, 1<<len(masks))
	for subset := 0; subset < 1<<len(masks); subset++ {
		var mask uint16
		for bit, m := range masks {
			if subset&(1<<bit) != 0 {
				mask |= m
			}
		}
		out = append(out, mask)
	}
	return out
}

func containsMask(masks []uint16, mask uint16) bool {
	for _, m := range masks {
		if m == mask {
			return true
		}
	}
	return false
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
