package core

import (
	"fmt"
	"strings"
)

// Glyph returns the ASCII character for a single cell.
// Actors are drawn over the ground: player, then creature, then tile.
func Glyph(c CellContent) rune {
	switch c.Item {
	case ItemPlayer:
		return '@'
	case ItemCreature:
		return 'b'
	case ItemNone:
	}

	switch c.Tile.Kind {
	case TileWall:
		if c.Tile.Breakable {
			return '%'
		}
		return '#'
	case TileHole:
		return 'O'
	case TileFloor:
		if c.Tile.IsEntry {
			return '^'
		}
		return '.'
	default:
		panic(fmt.Sprintf("core: unknown tile kind %d", c.Tile.Kind))
	}
}

// String renders the grid one row per line.
// Used for debugging, testing (golden outputs) and the dump command.
func (l *LevelState) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for _, c := range l.Content() {
		if c.Pos.X == 0 && c.Pos.Y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(Glyph(c))
	}
	return sb.String()
}

// RenderASCII renders the grid with a one-line status header.
func RenderASCII(l *LevelState) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Player: %s | Buns: %d left, %d caught\n",
		l.player, l.RemainingCreatures(), l.CapturedCreatures()))
	sb.WriteString(strings.Repeat("-", Width) + "\n")
	sb.WriteString(l.String())
	sb.WriteString("\n")
	return sb.String()
}
