// Package world ties levels together into burrows and worlds.
//
// A World is an arena: burrows live in one slice and refer to each other by
// BurrowID. The arena is read-only once loaded, so several players can share
// it while each keeps its own State.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bunburrows/internal/games/buns/core"
)

var (
	// ErrNoLink is returned when a burrow has no neighbour in the requested direction.
	ErrNoLink = errors.New("can't go there")

	// ErrLevelMissing is returned when a burrow has no level at a depth.
	ErrLevelMissing = errors.New("level missing")

	// ErrNoSurfaceEntry is returned when no burrow can be entered from the surface.
	ErrNoSurfaceEntry = errors.New("no burrow with a surface entry and a first level")

	// ErrNoPlayerStart is returned by the loader for a level without an S tile.
	ErrNoPlayerStart = errors.New("level has no player start")
)

// BurrowID indexes a burrow inside its World.
type BurrowID int

// NoBurrow marks a missing link.
const NoBurrow BurrowID = -1

// LevelTemplate is a parsed level as stored in the world.
// Play always happens on a copy made by Instantiate.
type LevelTemplate struct {
	Name  string
	Path  string
	Tools core.Tools

	level *core.LevelState
}

// NewLevelTemplate wraps an already parsed level.
func NewLevelTemplate(name, path string, tools core.Tools, level *core.LevelState) *LevelTemplate {
	return &LevelTemplate{Name: name, Path: path, Tools: tools, level: level}
}

// Instantiate returns a fresh playable copy of the level.
func (t *LevelTemplate) Instantiate() *core.LevelState {
	return t.level.Clone()
}

// Burrow is one column of levels. Levels[0] is always nil: depths start at 1.
// A nil entry at a positive depth is an empty slot.
type Burrow struct {
	ID              BurrowID
	Name            string
	Directory       string
	Indicator       string
	HasSurfaceEntry bool
	Links           [core.DirectionCount]BurrowID
	Levels          []*LevelTemplate
	ElevatorDepths  []int
}

// Depth returns the deepest level slot of the burrow.
func (b *Burrow) Depth() int {
	if len(b.Levels) == 0 {
		return 0
	}
	return len(b.Levels) - 1
}

// Level returns the template at depth.
func (b *Burrow) Level(depth int) (*LevelTemplate, error) {
	if depth < 1 || depth >= len(b.Levels) || b.Levels[depth] == nil {
		return nil, fmt.Errorf("%s depth %d: %w", b.Name, depth, ErrLevelMissing)
	}
	return b.Levels[depth], nil
}

// HasElevator reports whether the burrow lists depth as an elevator stop.
func (b *Burrow) HasElevator(depth int) bool {
	for _, d := range b.ElevatorDepths {
		if d == depth {
			return true
		}
	}
	return false
}

// LevelCount returns the number of filled level slots.
func (b *Burrow) LevelCount() int {
	n := 0
	for _, l := range b.Levels {
		if l != nil {
			n++
		}
	}
	return n
}

// World is a loaded set of burrows.
type World struct {
	Title   string
	Enabled bool
	Dir     string

	burrows []Burrow
}

// NewWorld builds a world from burrows. Each burrow's ID is set to its
// index, and every link must either be NoBurrow or name one of them.
func NewWorld(title string, burrows []Burrow) (*World, error) {
	w := &World{Title: title, Enabled: true, burrows: burrows}
	for i := range w.burrows {
		w.burrows[i].ID = BurrowID(i)
		for d, link := range w.burrows[i].Links {
			if link != NoBurrow && !w.valid(link) {
				return nil, fmt.Errorf("burrow %s: link %s points to unknown burrow %d",
					w.burrows[i].Name, core.Direction(d), link)
			}
		}
	}
	return w, nil
}

func (w *World) valid(id BurrowID) bool {
	return id >= 0 && int(id) < len(w.burrows)
}

// Len returns the number of burrows.
func (w *World) Len() int {
	return len(w.burrows)
}

// Burrow returns the burrow with the given id.
// Panics if id does not belong to this world.
func (w *World) Burrow(id BurrowID) *Burrow {
	if !w.valid(id) {
		panic(fmt.Sprintf("world: unknown burrow id %d", id))
	}
	return &w.burrows[id]
}

// Burrows returns every burrow in file order.
func (w *World) Burrows() []*Burrow {
	out := make([]*Burrow, len(w.burrows))
	for i := range w.burrows {
		out[i] = &w.burrows[i]
	}
	return out
}

// BurrowByName looks a burrow up by its configured name.
func (w *World) BurrowByName(name string) (*Burrow, bool) {
	for i := range w.burrows {
		if w.burrows[i].Name == name {
			return &w.burrows[i], true
		}
	}
	return nil, false
}

// Link returns the neighbour of burrow id in direction d.
func (w *World) Link(id BurrowID, d core.Direction) (BurrowID, error) {
	target := w.Burrow(id).Links[d]
	if target == NoBurrow {
		return NoBurrow, ErrNoLink
	}
	return target, nil
}

// LevelCount returns the number of levels across all burrows.
func (w *World) LevelCount() int {
	n := 0
	for i := range w.burrows {
		n += w.burrows[i].LevelCount()
	}
	return n
}

// Enter starts a session in the first burrow, in file order, that has a
// surface entry and a level at depth 1.
func (w *World) Enter() (*State, error) {
	for i := range w.burrows {
		b := &w.burrows[i]
		if !b.HasSurfaceEntry {
			continue
		}
		tmpl, err := b.Level(1)
		if err != nil {
			continue
		}
		s := &State{world: w}
		s.load(b.ID, 1, tmpl)
		return s, nil
	}
	return nil, ErrNoSurfaceEntry
}
