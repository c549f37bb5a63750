package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/stackwm/internal/wm"
)

// Hotkey actions understood by the daemon.
const (
	ActionCycleNext        = "cycle_next"
	ActionCyclePrev        = "cycle_prev"
	ActionSwapNext         = "swap_next"
	ActionSwapPrev         = "swap_prev"
	ActionSwapMaster       = "swap_master"
	ActionToggleFloating   = "toggle_floating"
	ActionToggleMinimised  = "toggle_minimised"
	ActionUnminimiseLast   = "unminimise_last"
	ActionToggleFullscreen = "toggle_fullscreen"
	ActionCloseWindow      = "close_window"
	ActionRetile           = "retile"
)

// HotkeyActions lists every bindable action in a stable order.
func HotkeyActions() []string {
	return []string{
		ActionCycleNext,
		ActionCyclePrev,
		ActionSwapNext,
		ActionSwapPrev,
		ActionSwapMaster,
		ActionToggleFloating,
		ActionToggleMinimised,
		ActionUnminimiseLast,
		ActionToggleFullscreen,
		ActionCloseWindow,
		ActionRetile,
	}
}

const (
	DefaultScreenWidth       = 1920
	DefaultScreenHeight      = 1080
	DefaultReconcileInterval = 2
)

type Config struct {
	Display           string            `yaml:"display,omitempty"`
	XAuthority        string            `yaml:"xauthority,omitempty"`
	Screen            wm.Screen         `yaml:"screen"`
	LogLevel          string            `yaml:"log_level"`
	FloatingClasses   []string          `yaml:"floating_classes"`
	ReconcileInterval int               `yaml:"reconcile_interval"` // seconds
	MetricsAddr       string            `yaml:"metrics_addr,omitempty"`
	ApplyLayout       bool              `yaml:"apply_layout"`
	Hotkeys           map[string]string `yaml:"hotkeys"`
}

func DefaultConfig() *Config {
	return &Config{
		Screen: wm.Screen{
			Width:  DefaultScreenWidth,
			Height: DefaultScreenHeight,
		},
		LogLevel: "info",
		FloatingClasses: []string{
			"Pavucontrol",
			"Nm-connection-editor",
			"Pinentry",
		},
		ReconcileInterval: DefaultReconcileInterval,
		ApplyLayout:       true,
		Hotkeys: map[string]string{
			ActionCycleNext:        "Mod4-j",
			ActionCyclePrev:        "Mod4-k",
			ActionSwapNext:         "Mod4-Shift-j",
			ActionSwapPrev:         "Mod4-Shift-k",
			ActionSwapMaster:       "Mod4-Return",
			ActionToggleFloating:   "Mod4-Shift-space",
			ActionToggleMinimised:  "Mod4-m",
			ActionUnminimiseLast:   "Mod4-Shift-m",
			ActionToggleFullscreen: "Mod4-f",
			ActionCloseWindow:      "Mod4-Shift-q",
			ActionRetile:           "Mod4-Mod1-r",
		},
	}
}

// ReconcileEvery returns the reconcile interval as a duration.
func (c *Config) ReconcileEvery() time.Duration {
	if c == nil || c.ReconcileInterval <= 0 {
		return DefaultReconcileInterval * time.Second
	}
	return time.Duration(c.ReconcileInterval) * time.Second
}

// SlogLevel maps log_level onto a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsFloatingClass reports whether windows of the given WM_CLASS start floating.
func (c *Config) IsFloatingClass(class string) bool {
	if c == nil || class == "" {
		return false
	}
	for _, fc := range c.FloatingClasses {
		if strings.EqualFold(fc, class) {
			return true
		}
	}
	return false
}

// BoundHotkeys returns the configured (action, key) pairs sorted by action,
// skipping unbound actions.
func (c *Config) BoundHotkeys() [][2]string {
	actions := make([]string, 0, len(c.Hotkeys))
	for action, key := range c.Hotkeys {
		if strings.TrimSpace(key) == "" {
			continue
		}
		actions = append(actions, action)
	}
	sort.Strings(actions)

	out := make([][2]string, 0, len(actions))
	for _, action := range actions {
		out = append(out, [2]string{action, c.Hotkeys[action]})
	}
	return out
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, creating parent directories.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Screen.Width == 0 {
		return &ValidationError{Path: "screen.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Screen.Height == 0 {
		return &ValidationError{Path: "screen.height", Err: fmt.Errorf("height must be > 0")}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.ReconcileInterval <= 0 {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("reconcile_interval must be >= 1")}
	}
	for i, class := range c.FloatingClasses {
		if strings.TrimSpace(class) == "" {
			return &ValidationError{Path: "floating_classes", Err: fmt.Errorf("entry %d is empty", i)}
		}
	}
	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			return &ValidationError{Path: "metrics_addr", Err: fmt.Errorf("metrics_addr must be host:port: %w", err)}
		}
	}
	if c.Hotkeys == nil {
		return &ValidationError{Path: "hotkeys", Err: fmt.Errorf("hotkeys must not be null")}
	}

	known := make(map[string]struct{})
	for _, action := range HotkeyActions() {
		known[action] = struct{}{}
	}
	usedBy := make(map[string]string)
	for _, pair := range c.BoundHotkeys() {
		action, key := pair[0], pair[1]
		if _, ok := known[action]; !ok {
			return &ValidationError{Path: "hotkeys." + action, Err: fmt.Errorf("unknown action %q", action)}
		}
		norm := strings.ToLower(strings.TrimSpace(key))
		if other, dup := usedBy[norm]; dup {
			return &ValidationError{Path: "hotkeys." + action, Err: fmt.Errorf("key %q is already bound to %s", key, other)}
		}
		usedBy[norm] = action
	}

	return nil
}
