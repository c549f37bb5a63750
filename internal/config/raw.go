package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList accepts a single path or a list of paths:
//
//	include: "~/.config/stackwm/keys.yaml"
//
//	include:
//	  - "keys.yaml"
//	  - "conf.d"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawScreen struct {
	Width  *uint `yaml:"width"`
	Height *uint `yaml:"height"`
}

// RawConfig is one YAML file as written. Nil fields were not set and leave
// the value from earlier files (or the default) in place.
type RawConfig struct {
	Include           IncludeList       `yaml:"include"`
	Display           *string           `yaml:"display"`
	XAuthority        *string           `yaml:"xauthority"`
	Screen            *RawScreen        `yaml:"screen"`
	LogLevel          *string           `yaml:"log_level"`
	FloatingClasses   []string          `yaml:"floating_classes"`
	ReconcileInterval *int              `yaml:"reconcile_interval"`
	MetricsAddr       *string           `yaml:"metrics_addr"`
	ApplyLayout       *bool             `yaml:"apply_layout"`
	Hotkeys           map[string]string `yaml:"hotkeys"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.Screen != nil {
		if out.Screen == nil {
			out.Screen = &RawScreen{}
		}
		merged := *out.Screen
		if overlay.Screen.Width != nil {
			merged.Width = overlay.Screen.Width
		}
		if overlay.Screen.Height != nil {
			merged.Height = overlay.Screen.Height
		}
		out.Screen = &merged
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	// Lists replace rather than append so a later file can shrink them.
	if overlay.FloatingClasses != nil {
		out.FloatingClasses = append([]string(nil), overlay.FloatingClasses...)
	}
	if overlay.ReconcileInterval != nil {
		out.ReconcileInterval = overlay.ReconcileInterval
	}
	if overlay.MetricsAddr != nil {
		out.MetricsAddr = overlay.MetricsAddr
	}
	if overlay.ApplyLayout != nil {
		out.ApplyLayout = overlay.ApplyLayout
	}
	if overlay.Hotkeys != nil {
		merged := make(map[string]string, len(out.Hotkeys)+len(overlay.Hotkeys))
		for action, key := range out.Hotkeys {
			merged[action] = key
		}
		for action, key := range overlay.Hotkeys {
			merged[action] = key
		}
		out.Hotkeys = merged
	}

	return out
}
