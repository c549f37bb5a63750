package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at a YAML-like path and where it came
// from. Supported paths:
//
//	display
//	xauthority
//	screen, screen.width, screen.height
//	log_level
//	floating_classes
//	reconcile_interval
//	metrics_addr
//	apply_layout
//	hotkeys, hotkeys.<action>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	case "screen":
		return cfg.Screen, nil
	case "screen.width":
		return cfg.Screen.Width, nil
	case "screen.height":
		return cfg.Screen.Height, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "floating_classes":
		return cfg.FloatingClasses, nil
	case "reconcile_interval":
		return cfg.ReconcileInterval, nil
	case "metrics_addr":
		return cfg.MetricsAddr, nil
	case "apply_layout":
		return cfg.ApplyLayout, nil
	case "hotkeys":
		return cfg.Hotkeys, nil
	}

	if action, ok := strings.CutPrefix(path, "hotkeys."); ok {
		key, found := cfg.Hotkeys[action]
		if !found {
			return nil, fmt.Errorf("no hotkey for action %q", action)
		}
		return key, nil
	}
	return nil, fmt.Errorf("unknown config path %q", path)
}
