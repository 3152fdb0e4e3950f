package config

import (
	"fmt"
	"strings"
)

// Preset represents a named search strength.
type Preset string

const (
	PresetGreedy   Preset = "greedy"
	PresetBalanced Preset = "balanced"
	PresetDeep     Preset = "deep"
)

// Presets lists the known presets from weakest to strongest.
var Presets = []Preset{PresetGreedy, PresetBalanced, PresetDeep}

// ParsePreset resolves a preset name. The empty string is not a preset.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q", s)
}

// DepthForPreset returns the search depth for a preset.
func DepthForPreset(preset Preset) int {
	switch preset {
	case PresetGreedy:
		return 1
	case PresetDeep:
		return 4
	default:
		return 3
	}
}

// ApplyPreset modifies the config based on a preset.
func ApplyPreset(cfg *Config, preset Preset) {
	cfg.Search.Depth = DepthForPreset(preset)

	// Adjust search machinery for the chosen depth
	switch preset {
	case PresetGreedy:
		cfg.Search.Parallel = false
		cfg.Search.Cache = false
	case PresetDeep:
		cfg.Search.Parallel = true
		cfg.Search.Cache = true
	}
}
