// Package config provides YAML-based configuration loading for the burrow
// game: animation pacing, which world to play and how tiles look.
package config

import (
	"fmt"
	"unicode/utf8"
)

// BunsConfig contains all configuration for the game.
type BunsConfig struct {
	Animation AnimationConfig `yaml:"animation"`
	World     WorldConfig     `yaml:"world"`
	Glyphs    GlyphConfig     `yaml:"glyphs"`
	Colors    ColorConfig     `yaml:"colors"`
}

// AnimationConfig controls how creature run frames are played back.
type AnimationConfig struct {
	FrameTicks int `yaml:"frame_ticks"` // Ticks each history frame stays on screen
}

// WorldConfig selects the world to play.
type WorldConfig struct {
	Dir   string `yaml:"dir"`   // Directory of worlds; empty plays the built-in demo
	Title string `yaml:"title"` // World title to pick; empty picks the first enabled
}

// GlyphConfig holds the single character drawn for each cell kind.
type GlyphConfig struct {
	Wall      string `yaml:"wall"`
	Breakable string `yaml:"breakable"`
	Floor     string `yaml:"floor"`
	Entry     string `yaml:"entry"`
	Hole      string `yaml:"hole"`
	Player    string `yaml:"player"`
	Bun       string `yaml:"bun"`
}

// ColorConfig holds the color name used for each cell kind.
type ColorConfig struct {
	Wall      string `yaml:"wall"`
	Breakable string `yaml:"breakable"`
	Floor     string `yaml:"floor"`
	Entry     string `yaml:"entry"`
	Hole      string `yaml:"hole"`
	Player    string `yaml:"player"`
	Bun       string `yaml:"bun"`
}

// Validate checks the values a file may have set wrongly.
func (c BunsConfig) Validate() error {
	if c.Animation.FrameTicks < 1 {
		return fmt.Errorf("animation.frame_ticks must be at least 1, got %d", c.Animation.FrameTicks)
	}
	glyphs := map[string]string{
		"wall":      c.Glyphs.Wall,
		"breakable": c.Glyphs.Breakable,
		"floor":     c.Glyphs.Floor,
		"entry":     c.Glyphs.Entry,
		"hole":      c.Glyphs.Hole,
		"player":    c.Glyphs.Player,
		"bun":       c.Glyphs.Bun,
	}
	for name, g := range glyphs {
		if utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("glyphs.%s must be a single character, got %q", name, g)
		}
	}
	return nil
}

// Glyph returns the first rune of a configured glyph.
func Glyph(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
