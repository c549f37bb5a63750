package config

import "fmt"

// ValidationError points at the config key that failed validation and, when
// known, the file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.Screen != nil {
		if raw.Screen.Width != nil {
			cfg.Screen.Width = *raw.Screen.Width
		}
		if raw.Screen.Height != nil {
			cfg.Screen.Height = *raw.Screen.Height
		}
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.FloatingClasses != nil {
		cfg.FloatingClasses = append([]string(nil), raw.FloatingClasses...)
	}
	if raw.ReconcileInterval != nil {
		cfg.ReconcileInterval = *raw.ReconcileInterval
	}
	if raw.MetricsAddr != nil {
		cfg.MetricsAddr = *raw.MetricsAddr
	}
	if raw.ApplyLayout != nil {
		cfg.ApplyLayout = *raw.ApplyLayout
	}
	// An empty key unbinds the default for that action.
	for action, key := range raw.Hotkeys {
		cfg.Hotkeys[action] = key
	}

	return cfg
}
