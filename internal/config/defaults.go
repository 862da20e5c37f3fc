package config

import (
	_ "embed"
)

//go:embed defaults/buns.yaml
var defaultBunsYAML []byte

// DefaultBunsConfig returns the default configuration.
func DefaultBunsConfig() BunsConfig {
	return BunsConfig{
		Animation: AnimationConfig{
			FrameTicks: 4,
		},
		Glyphs: GlyphConfig{
			Wall:      "#",
			Breakable: "%",
			Floor:     ".",
			Entry:     "^",
			Hole:      "O",
			Player:    "@",
			Bun:       "b",
		},
		Colors: ColorConfig{
			Wall:      "gray",
			Breakable: "orange",
			Floor:     "green",
			Entry:     "bright_green",
			Hole:      "brown",
			Player:    "bright_yellow",
			Bun:       "bright_white",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBunsYAML
}
