package core

import (
	"errors"
)

// ErrOutOfRange is returned when a position lies outside the level grid.
var ErrOutOfRange = errors.New("position out of range")

// CreatureSlot is one creature entry. Present is false once the creature
// has been captured; the slot itself is never removed so indices stay stable.
type CreatureSlot struct {
	Pos     Position
	Present bool
}

// CellContent is one cell as seen by renderers.
type CellContent struct {
	Pos  Position
	Tile GroundTile
	Item TileItem
}

// LevelState is the complete state of one level.
// Tiles are stored in row-major order: index = y*Width + x.
type LevelState struct {
	tiles     [Width * Height]GroundTile
	player    Position
	hasPlayer bool
	creatures []CreatureSlot
}

// NewLevelState creates a level with an all-floor grid, the player at the
// origin and no creatures.
func NewLevelState() *LevelState {
	l := &LevelState{}
	for i := range l.tiles {
		l.tiles[i] = Floor(false)
	}
	return l
}

// Clone returns a deep copy of the level.
func (l *LevelState) Clone() *LevelState {
	c := *l
	c.creatures = make([]CreatureSlot, len(l.creatures))
	copy(c.creatures, l.creatures)
	return &c
}

// At returns the tile and derived item at p.
// The player takes priority over a creature on the same cell.
func (l *LevelState) At(p Position) (GroundTile, TileItem, error) {
	if !p.InBounds() {
		return GroundTile{}, ItemNone, ErrOutOfRange
	}
	return l.tiles[p.index()], l.itemAt(p), nil
}

// itemAt derives the actor shown at p: player first, then any creature.
func (l *LevelState) itemAt(p Position) TileItem {
	if l.player == p {
		return ItemPlayer
	}
	for _, c := range l.creatures {
		if c.Present && c.Pos == p {
			return ItemCreature
		}
	}
	return ItemNone
}

// Tile returns the tile at p, or ok=false outside the grid.
func (l *LevelState) Tile(p Position) (tile GroundTile, ok bool) {
	if !p.InBounds() {
		return GroundTile{}, false
	}
	return l.tiles[p.index()], true
}

// SetTileAt replaces the tile at p.
// Panics if p is outside the grid.
func (l *LevelState) SetTileAt(p Position, t GroundTile) {
	if !p.InBounds() {
		panic("core: SetTileAt " + p.String() + " out of range")
	}
	l.tiles[p.index()] = t
}

// SetPlayer moves the player to p without any checks.
func (l *LevelState) SetPlayer(p Position) {
	l.player = p
	l.hasPlayer = true
}

// Player returns the player position.
func (l *LevelState) Player() Position {
	return l.player
}

// HasPlayerStart reports whether a player position was ever set.
func (l *LevelState) HasPlayerStart() bool {
	return l.hasPlayer
}

// AddCreature appends a creature slot at p. Duplicates are allowed.
func (l *LevelState) AddCreature(p Position) {
	l.creatures = append(l.creatures, CreatureSlot{Pos: p, Present: true})
}

// Creatures returns a copy of all creature slots, in slot order.
func (l *LevelState) Creatures() []CreatureSlot {
	out := make([]CreatureSlot, len(l.creatures))
	copy(out, l.creatures)
	return out
}

// CreatureCount returns the number of slots, captured or not.
func (l *LevelState) CreatureCount() int {
	return len(l.creatures)
}

// RemainingCreatures returns the number of creatures still on the grid.
func (l *LevelState) RemainingCreatures() int {
	n := 0
	for _, c := range l.creatures {
		if c.Present && c.Pos.InBounds() {
			n++
		}
	}
	return n
}

// CapturedCreatures returns the number of emptied slots.
func (l *LevelState) CapturedCreatures() int {
	n := 0
	for _, c := range l.creatures {
		if !c.Present {
			n++
		}
	}
	return n
}

// Content enumerates every cell in row-major order, x fastest.
func (l *LevelState) Content() []CellContent {
	cells := make([]CellContent, 0, Width*Height)
	for i, t := range l.tiles {
		p := positionAt(i)
		cells = append(cells, CellContent{Pos: p, Tile: t, Item: l.itemAt(p)})
	}
	return cells
}

// Equal returns true if two levels have the same tiles, player and slots.
func (l *LevelState) Equal(other *LevelState) bool {
	if l.tiles != other.tiles || l.player != other.player || l.hasPlayer != other.hasPlayer {
		return false
	}
	if len(l.creatures) != len(other.creatures) {
		return false
	}
	for i, c := range l.creatures {
		if c != other.creatures[i] {
			return false
		}
	}
	return true
}

// solidFor reports whether a creature moving in direction d is stopped at p.
// Cells outside the grid are open: creatures may leave through the edge.
func (l *LevelState) solidFor(p Position, d Direction) bool {
	t, ok := l.Tile(p)
	if !ok {
		return false
	}
	return t.IsSolidForBunFrom(d)
}
