package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBlocked is returned when the player walks into a wall.
	ErrBlocked = errors.New("blocked by wall")

	// ErrNoDirection is returned by Recheck when the player already stands
	// outside the grid: there is no attempted direction to report.
	ErrNoDirection = errors.New("player outside the grid and no direction given")
)

// EffectKind identifies the transition a move asks the world layer to make.
type EffectKind uint8

const (
	EffectNone         EffectKind = iota
	EffectMoveAdjacent            // Player stepped off the grid edge
	EffectDropHole                // Player stepped onto a hole
)

// String returns the string representation of an effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "None"
	case EffectMoveAdjacent:
		return "MoveAdjacent"
	case EffectDropHole:
		return "DropHole"
	default:
		return "Unknown"
	}
}

// Effect is a level transition requested by a move.
// Dir is only meaningful for EffectMoveAdjacent.
type Effect struct {
	Kind EffectKind
	Dir  Direction
}

// MoveAdjacent returns the effect for leaving the grid toward d.
func MoveAdjacent(d Direction) Effect {
	return Effect{Kind: EffectMoveAdjacent, Dir: d}
}

// DropHole returns the effect for stepping onto a hole.
func DropHole() Effect {
	return Effect{Kind: EffectDropHole}
}

// String returns a human-readable effect.
func (e Effect) String() string {
	if e.Kind == EffectMoveAdjacent {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Dir)
	}
	return e.Kind.String()
}

// MoveResult is the outcome of one resolved input.
//
// History holds the intermediate frames generated while creatures ran
// through corridors, oldest first. Each frame is an independent copy owned
// by the caller; the level keeps no reference to it.
type MoveResult struct {
	History []*LevelState
	Effect  Effect
}

// Move resolves one player step in direction d and lets every creature react.
// On error the level is left unchanged.
func (l *LevelState) Move(d Direction) (MoveResult, error) {
	return l.step(d, true)
}

// Recheck resolves a turn without moving the player, re-evaluating the
// player's current cell and letting creatures react.
func (l *LevelState) Recheck() (MoveResult, error) {
	return l.step(Up, false)
}

func (l *LevelState) step(d Direction, hasDir bool) (MoveResult, error) {
	if !l.hasPlayer {
		panic("core: level has no player start")
	}

	candidate := l.player
	if hasDir {
		candidate = l.player.Step(d)
	}

	tile, ok := l.Tile(candidate)
	if !ok {
		if !hasDir {
			return MoveResult{}, ErrNoDirection
		}
		return MoveResult{Effect: MoveAdjacent(d)}, nil
	}
	if tile.IsSolid() {
		return MoveResult{}, ErrBlocked
	}

	var result MoveResult
	l.player = candidate
	if tile.IsHole() {
		result.Effect = DropHole()
	}

	for i := range l.creatures {
		l.reactCreature(i, &result.History)
	}
	return result, nil
}
