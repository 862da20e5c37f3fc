package buns

import (
	"fmt"

	"github.com/vovakirdan/bunburrows/internal/config"
	"github.com/vovakirdan/bunburrows/internal/core"
	bcore "github.com/vovakirdan/bunburrows/internal/games/buns/core"
)

// Style is how one kind of cell is drawn.
type Style struct {
	Rune  rune
	Color core.Color
}

// Theme maps every cell kind to a Style.
type Theme struct {
	Wall      Style
	Breakable Style
	Floor     Style
	Entry     Style
	Hole      Style
	Player    Style
	Bun       Style
}

// NewTheme builds a theme from the glyph and color sections of the config.
// Unknown color names fall back to the terminal default.
func NewTheme(g config.GlyphConfig, c config.ColorConfig) Theme {
	style := func(glyph, color string) Style {
		col, _ := core.ParseColor(color)
		return Style{Rune: config.Glyph(glyph), Color: col}
	}
	return Theme{
		Wall:      style(g.Wall, c.Wall),
		Breakable: style(g.Breakable, c.Breakable),
		Floor:     style(g.Floor, c.Floor),
		Entry:     style(g.Entry, c.Entry),
		Hole:      style(g.Hole, c.Hole),
		Player:    style(g.Player, c.Player),
		Bun:       style(g.Bun, c.Bun),
	}
}

// Cell returns the style for one level cell. Actors are drawn over the ground.
func (t Theme) Cell(c bcore.CellContent) Style {
	switch c.Item {
	case bcore.ItemPlayer:
		return t.Player
	case bcore.ItemCreature:
		return t.Bun
	case bcore.ItemNone:
	}

	switch c.Tile.Kind {
	case bcore.TileWall:
		if c.Tile.Breakable {
			return t.Breakable
		}
		return t.Wall
	case bcore.TileHole:
		return t.Hole
	case bcore.TileFloor:
		if c.Tile.IsEntry {
			return t.Entry
		}
		return t.Floor
	default:
		panic(fmt.Sprintf("buns: unknown tile kind %d", c.Tile.Kind))
	}
}
