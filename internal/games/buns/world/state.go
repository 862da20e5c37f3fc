package world

import (
	"fmt"

	"github.com/vovakirdan/bunburrows/internal/games/buns/core"
)

// Location describes where a State currently is.
type Location struct {
	Burrow    string
	Indicator string
	Depth     int
	Level     string
}

// String returns a short human-readable location.
func (l Location) String() string {
	if l.Level == "" {
		return fmt.Sprintf("%s %d", l.Burrow, l.Depth)
	}
	return fmt.Sprintf("%s %d: %s", l.Burrow, l.Depth, l.Level)
}

// Outcome is the result of one turn at the world level.
type Outcome struct {
	core.MoveResult

	// Entered is set when the turn moved the player into another level.
	// History frames still belong to the level that was left.
	Entered bool
}

// State is one player's progress through a world.
type State struct {
	world  *World
	burrow BurrowID
	depth  int
	tmpl   *LevelTemplate

	Level *core.LevelState
	Tools core.Tools
}

// World returns the world the state belongs to.
func (s *State) World() *World {
	return s.world
}

// BurrowID returns the current burrow.
func (s *State) BurrowID() BurrowID {
	return s.burrow
}

// Depth returns the current depth.
func (s *State) Depth() int {
	return s.depth
}

// Template returns the template the current level was made from.
func (s *State) Template() *LevelTemplate {
	return s.tmpl
}

// Location reports the current burrow, depth and level name.
func (s *State) Location() Location {
	b := s.world.Burrow(s.burrow)
	return Location{
		Burrow:    b.Name,
		Indicator: b.Indicator,
		Depth:     s.depth,
		Level:     s.tmpl.Name,
	}
}

// Move resolves one player step and applies the level transition it asks for.
// On error the state is unchanged.
func (s *State) Move(d core.Direction) (Outcome, error) {
	// Leaving the grid never touches the level, so the link can be resolved
	// before anything else happens.
	next := s.Level.Player().Step(d)
	if !next.InBounds() {
		return s.moveAdjacent(d)
	}

	res, err := s.Level.Move(d)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{MoveResult: res}

	if res.Effect.Kind == core.EffectDropHole {
		b := s.world.Burrow(s.burrow)
		tmpl, err := b.Level(s.depth + 1)
		if err != nil {
			// Nothing below: the hole is just floor.
			return out, nil
		}
		s.load(s.burrow, s.depth+1, tmpl)
		out.Entered = true
	}
	return out, nil
}

func (s *State) moveAdjacent(d core.Direction) (Outcome, error) {
	target, err := s.world.Link(s.burrow, d)
	if err != nil {
		return Outcome{}, err
	}
	tmpl, err := s.world.Burrow(target).Level(s.depth)
	if err != nil {
		return Outcome{}, err
	}
	s.load(target, s.depth, tmpl)
	return Outcome{MoveResult: core.MoveResult{Effect: core.MoveAdjacent(d)}, Entered: true}, nil
}

// Recheck lets creatures react without the player moving. A hole under the
// player never triggers a drop here: had there been a level below, the
// player would already have fallen.
func (s *State) Recheck() (Outcome, error) {
	res, err := s.Level.Recheck()
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{MoveResult: res}, nil
}

// Restart reloads the current level from its template.
func (s *State) Restart() {
	s.load(s.burrow, s.depth, s.tmpl)
}

func (s *State) load(id BurrowID, depth int, tmpl *LevelTemplate) {
	s.burrow = id
	s.depth = depth
	s.tmpl = tmpl
	s.Level = tmpl.Instantiate()
	s.Tools = tmpl.Tools
}
