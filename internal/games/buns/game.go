// Package buns drives a burrow world as a real-time game: it turns input
// actions into turns, plays creature runs back one frame at a time and
// reports finished level visits.
package buns

import (
	"errors"

	"github.com/vovakirdan/bunburrows/internal/config"
	"github.com/vovakirdan/bunburrows/internal/core"
	bcore "github.com/vovakirdan/bunburrows/internal/games/buns/core"
	"github.com/vovakirdan/bunburrows/internal/games/buns/world"
)

// visit tracks one stay on a level, from entering (or restarting) it until
// leaving it.
type visit struct {
	moves    int
	recorded bool
}

// Game plays one world.
type Game struct {
	world *world.World
	cfg   config.BunsConfig
	theme Theme

	state *world.State
	err   error // Set when the world cannot be entered

	// Pending creature run frames, oldest first. frames[0] is on screen.
	frames     []*bcore.LevelState
	frameTicks int

	visit   visit
	score   int
	message string
	quit    bool

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game over a loaded world.
func New(w *world.World, cfg config.BunsConfig) *Game {
	if cfg.Animation.FrameTicks < 1 {
		cfg.Animation.FrameTicks = 1
	}
	return &Game{
		world: w,
		cfg:   cfg,
		theme: NewTheme(cfg.Glyphs, cfg.Colors),
	}
}

// ID returns the world directory, used as the storage key.
func (g *Game) ID() string {
	return g.world.Dir
}

// Title returns the world title.
func (g *Game) Title() string {
	return g.world.Title
}

// Reset enters the world from the surface.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()

	g.state, g.err = g.world.Enter()
	g.frames = nil
	g.frameTicks = 0
	g.visit = visit{}
	g.score = 0
	g.quit = false
	g.message = ""
	if g.err == nil {
		g.message = "Entered " + g.state.Location().String()
	}
}

// Resize updates the screen size without touching game progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
// A turn is only resolved once every frame of the previous turn was shown.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		g.quit = true
		return core.StepResult{State: g.State(), Finished: g.endVisit()}
	}
	if g.state == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if len(g.frames) > 0 {
		g.frameTicks++
		if g.frameTicks >= g.cfg.Animation.FrameTicks {
			g.frames = g.frames[1:]
			g.frameTicks = 0
		}
		return core.StepResult{State: g.State()}
	}

	var finished *core.RunRecord
	switch {
	case in.Has(core.ActionRestart):
		finished = g.endVisit()
		g.state.Restart()
		g.visit = visit{}
		g.message = "Restarted " + g.state.Location().String()
	case in.Has(core.ActionWait):
		finished = g.turn(g.state.Recheck)
	default:
		if a, ok := in.Move(); ok {
			d := directionOf(a)
			finished = g.turn(func() (world.Outcome, error) { return g.state.Move(d) })
		}
	}

	return core.StepResult{State: g.State(), Finished: finished}
}

// turn resolves one player turn and returns a run record if it ended the
// current visit.
func (g *Game) turn(resolve func() (world.Outcome, error)) *core.RunRecord {
	level := g.state.Level
	loc := g.state.Location()
	before := level.CapturedCreatures()

	out, err := resolve()
	if err != nil {
		g.message = messageFor(err)
		return nil
	}

	// level still points at the level the turn was played on, even when
	// the state has moved on to another one.
	g.visit.moves++
	caught := level.CapturedCreatures() - before
	g.score += caught
	g.frames = out.History
	g.frameTicks = 0
	g.message = ""
	if caught > 0 {
		g.message = "Caught a bun!"
	}

	if out.Entered {
		rec := g.record(loc, level)
		g.visit = visit{}
		g.message = "Entered " + g.state.Location().String()
		return rec
	}

	if cleared(level) && !g.visit.recorded {
		g.message = "Level cleared!"
		return g.record(loc, level)
	}
	return nil
}

// endVisit reports the current visit if it has anything worth keeping.
func (g *Game) endVisit() *core.RunRecord {
	if g.state == nil {
		return nil
	}
	return g.record(g.state.Location(), g.state.Level)
}

// record builds the run record of the current visit, at most once.
// Visits without a single move are not reported.
func (g *Game) record(loc world.Location, level *bcore.LevelState) *core.RunRecord {
	if g.visit.recorded || g.visit.moves == 0 {
		return nil
	}
	g.visit.recorded = true
	return &core.RunRecord{
		World:    g.ID(),
		Burrow:   loc.Burrow,
		Depth:    loc.Depth,
		Level:    loc.Level,
		Moves:    g.visit.moves,
		Captured: level.CapturedCreatures(),
		Cleared:  cleared(level),
	}
}

// cleared reports whether a level had creatures and none is left on the grid.
func cleared(l *bcore.LevelState) bool {
	return l.CreatureCount() > 0 && l.RemainingCreatures() == 0
}

func directionOf(a core.Action) bcore.Direction {
	switch a {
	case core.ActionUp:
		return bcore.Up
	case core.ActionLeft:
		return bcore.Left
	case core.ActionDown:
		return bcore.Down
	case core.ActionRight:
		return bcore.Right
	default:
		panic("buns: not a move action: " + a.String())
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, bcore.ErrBlocked):
		return "A wall is in the way."
	case errors.Is(err, world.ErrNoLink):
		return "Can't go there."
	case errors.Is(err, world.ErrLevelMissing):
		return "Nothing to find that way."
	default:
		return err.Error()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{
		Score:     g.score,
		Moves:     g.visit.moves,
		Animating: len(g.frames) > 0,
		Quit:      g.quit,
	}
	if g.state != nil {
		s.Cleared = cleared(g.state.Level)
	}
	return s
}

// Location reports where the player is. ok is false if the world could not
// be entered.
func (g *Game) Location() (world.Location, bool) {
	if g.state == nil {
		return world.Location{}, false
	}
	return g.state.Location(), true
}

// Message returns the status line text.
func (g *Game) Message() string {
	return g.message
}

// Displayed returns the level shown on screen: the oldest pending creature
// run frame, or the live level.
func (g *Game) Displayed() *bcore.LevelState {
	if len(g.frames) > 0 {
		return g.frames[0]
	}
	if g.state == nil {
		return nil
	}
	return g.state.Level
}
