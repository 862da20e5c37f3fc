package core

import "fmt"

// TileKind tags the variant held by a GroundTile.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileHole
)

// String returns the string representation of a tile kind.
func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "Floor"
	case TileWall:
		return "Wall"
	case TileHole:
		return "Hole"
	default:
		return "Unknown"
	}
}

// Tunnels holds per-direction wall permeability, indexed by Direction.
// Nothing reads it yet; walls are solid from every side.
type Tunnels [DirectionCount]bool

// GroundTile is the ground of a single cell.
// Breakable and Tunnels are only meaningful for walls, IsEntry only for floors.
type GroundTile struct {
	Kind      TileKind
	Breakable bool
	Tunnels   Tunnels
	IsEntry   bool
}

// Floor returns a floor tile.
func Floor(isEntry bool) GroundTile {
	return GroundTile{Kind: TileFloor, IsEntry: isEntry}
}

// Wall returns a wall tile.
func Wall(breakable bool, tunnels Tunnels) GroundTile {
	return GroundTile{Kind: TileWall, Breakable: breakable, Tunnels: tunnels}
}

// Hole returns a hole tile.
func Hole() GroundTile {
	return GroundTile{Kind: TileHole}
}

// IsSolid returns true if nothing can stand on the tile.
func (t GroundTile) IsSolid() bool {
	switch t.Kind {
	case TileWall:
		return true
	case TileFloor, TileHole:
		return false
	default:
		panic(fmt.Sprintf("core: unknown tile kind %d", t.Kind))
	}
}

// IsHole returns true for holes.
func (t GroundTile) IsHole() bool {
	switch t.Kind {
	case TileHole:
		return true
	case TileFloor, TileWall:
		return false
	default:
		panic(fmt.Sprintf("core: unknown tile kind %d", t.Kind))
	}
}

// IsSolidForBunFrom reports whether a creature entering the tile while
// travelling in direction approach is stopped by it.
// TODO: let Tunnels open the wall face opposite to approach once tunnel
// tiles exist in the level format.
func (t GroundTile) IsSolidForBunFrom(approach Direction) bool {
	_ = approach
	return t.IsSolid()
}

// TileItem is the actor shown on a cell, derived from the level state.
type TileItem uint8

const (
	ItemNone TileItem = iota
	ItemPlayer
	ItemCreature
)

// String returns the string representation of an item.
func (i TileItem) String() string {
	switch i {
	case ItemNone:
		return "None"
	case ItemPlayer:
		return "Player"
	case ItemCreature:
		return "Creature"
	default:
		return "Unknown"
	}
}

// Item is a tool kind a level hands to the player.
type Item uint8

const (
	Trap Item = iota
	Pickaxe
	Carrot
	Shovel
)

// ItemCount is the number of tool kinds.
const ItemCount = 4

// String returns the string representation of a tool kind.
func (i Item) String() string {
	switch i {
	case Trap:
		return "Trap"
	case Pickaxe:
		return "Pickaxe"
	case Carrot:
		return "Carrot"
	case Shovel:
		return "Shovel"
	default:
		return "Unknown"
	}
}

// Tools counts the tools available per kind, indexed by Item.
type Tools [ItemCount]int
