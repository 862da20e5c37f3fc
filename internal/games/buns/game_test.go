package buns

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/bunburrows/internal/config"
	"github.com/vovakirdan/bunburrows/internal/core"
	bcore "github.com/vovakirdan/bunburrows/internal/games/buns/core"
	"github.com/vovakirdan/bunburrows/internal/games/buns/world"
)

const wallRow = "WWWWWWWWWWWWWWW"

func levelText(rows ...string) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(strings.Split(row, ""), ", "))
		sb.WriteString(",\n")
	}
	return sb.String()
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

// corridorLevel: a bun two cells right of the player's first step, in a
// corridor that ends at the open right edge.
var corridorLevel = []string{
	wallRow,
	"STTBTTTTTTTTTTT",
	wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
}

// walkLevel: a hole below (1,1), the right edge open and a bun walled in
// where it can never see the player.
var walkLevel = []string{
	wallRow,
	"STTTTTTTTTTTTTT",
	"WEWWWWWWWWWWWWW",
	"WWWWWWWWWWBWWWW",
	wallRow, wallRow, wallRow, wallRow, wallRow,
}

const gameConfig = `{
  "Enabled": true,
  "Title": "Test World",
  "Burrows": [
    {"Directory": "a", "Name": "Alpha", "Indicator": "A", "HasSurfaceEntry": %s,
     "Depth": 2, "Links": {"Right": "Beta"}},
    {"Directory": "b", "Name": "Beta", "Indicator": "B", "Depth": 1,
     "Links": {"Left": "Alpha"}}
  ]
}`

func testWorld(t *testing.T, surface bool, first []string) *world.World {
	t.Helper()
	entry := "false"
	if surface {
		entry = "true"
	}
	fsys := fstest.MapFS{
		"w/config.json": file(strings.Replace(gameConfig, "%s", entry, 1)),
		"w/a/1.level":   file(levelText(first...)),
		"w/a/1.json":    file(`{"Name": "Start", "Tools": {"Traps": 2}}`),
		"w/a/2.level": file(levelText(
			wallRow,
			"WSTTTTTTTTTTTTW",
			wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
		)),
		"w/a/2.json": file(`{"Name": "Deeper"}`),
		"w/b/1.level": file(levelText(
			wallRow,
			"STTTTTTTTTTTTTW",
			wallRow, wallRow, wallRow, wallRow, wallRow, wallRow, wallRow,
		)),
		"w/b/1.json": file(`{"Name": "Side"}`),
	}
	w, err := world.LoadWorld(fsys, "w")
	if err != nil {
		t.Fatalf("LoadWorld() failed: %v", err)
	}
	return w
}

func newGame(t *testing.T, first []string, frameTicks int) *Game {
	t.Helper()
	cfg := config.DefaultBunsConfig()
	cfg.Animation.FrameTicks = frameTicks
	g := New(testWorld(t, true, first), cfg)
	g.Reset(core.DefaultConfig())
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func mustLocation(t *testing.T, g *Game) world.Location {
	t.Helper()
	loc, ok := g.Location()
	if !ok {
		t.Fatalf("Location() not available: %v", g.err)
	}
	return loc
}

func TestResetEntersWorld(t *testing.T) {
	g := newGame(t, walkLevel, 1)

	loc := mustLocation(t, g)
	if loc.Burrow != "Alpha" || loc.Depth != 1 || loc.Level != "Start" {
		t.Errorf("Location() = %+v, expected Alpha 1 Start", loc)
	}
	if g.ID() != "w" || g.Title() != "Test World" {
		t.Errorf("ID(), Title() = %q, %q, expected w, Test World", g.ID(), g.Title())
	}
	if !strings.HasPrefix(g.Message(), "Entered Alpha 1") {
		t.Errorf("Message() = %q, expected an Entered message", g.Message())
	}
	if g.state.Tools[bcore.Trap] != 2 {
		t.Errorf("Tools[Trap] = %d, expected 2", g.state.Tools[bcore.Trap])
	}
}

func TestResetWithoutSurfaceEntry(t *testing.T) {
	g := New(testWorld(t, false, walkLevel), config.DefaultBunsConfig())
	g.Reset(core.DefaultConfig())

	if _, ok := g.Location(); ok {
		t.Error("Location() ok = true, expected false")
	}
	if g.Displayed() != nil {
		t.Error("Displayed() != nil, expected nil")
	}
	res := g.Step(press(core.ActionRight))
	if res.Finished != nil || res.State.Moves != 0 {
		t.Errorf("Step() = %+v, expected no progress", res)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), world.ErrNoSurfaceEntry.Error()) {
		t.Errorf("Render() does not show the enter error:\n%s", screen.String())
	}
}

func TestRejectedMoves(t *testing.T) {
	tests := []struct {
		name    string
		action  core.Action
		message string
	}{
		{"wall", core.ActionUp, "A wall is in the way."},
		{"no link", core.ActionLeft, "Can't go there."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, walkLevel, 1)
			res := g.Step(press(tt.action))

			if res.State.Moves != 0 {
				t.Errorf("Moves = %d, expected 0", res.State.Moves)
			}
			if g.Message() != tt.message {
				t.Errorf("Message() = %q, expected %q", g.Message(), tt.message)
			}
			if p := g.state.Level.Player(); p != bcore.P(0, 1) {
				t.Errorf("Player() = %v, expected (0, 1)", p)
			}
		})
	}
}

func TestCaptureClearsLevel(t *testing.T) {
	g := newGame(t, corridorLevel, 1)

	res := g.Step(press(core.ActionRight))
	if res.Finished == nil {
		t.Fatal("Finished = nil, expected a cleared record")
	}
	expected := core.RunRecord{
		World:    "w",
		Burrow:   "Alpha",
		Depth:    1,
		Level:    "Start",
		Moves:    1,
		Captured: 1,
		Cleared:  true,
	}
	if *res.Finished != expected {
		t.Errorf("Finished = %+v, expected %+v", *res.Finished, expected)
	}
	if res.State.Score != 1 || !res.State.Cleared {
		t.Errorf("State = %+v, expected score 1 and cleared", res.State)
	}
	if g.Message() != "Level cleared!" {
		t.Errorf("Message() = %q, expected Level cleared!", g.Message())
	}

	// Wait out the run frame, then keep playing: the visit was already reported.
	g.Step(press())
	for i := 0; i < 3; i++ {
		if res := g.Step(press(core.ActionRight)); res.Finished != nil {
			t.Fatalf("step %d: Finished = %+v, expected nil", i, *res.Finished)
		}
	}
	if res := g.Step(press(core.ActionQuit)); res.Finished != nil {
		t.Errorf("Quit Finished = %+v, expected nil", *res.Finished)
	}
}

func TestFramesGateInput(t *testing.T) {
	g := newGame(t, corridorLevel, 2)

	res := g.Step(press(core.ActionRight))
	if !res.State.Animating {
		t.Fatal("Animating = false, expected true after a bun run")
	}
	shown := g.Displayed().Creatures()[0]
	if !shown.Present || shown.Pos != bcore.P(2, 1) {
		t.Errorf("displayed bun = %+v, expected present at (2, 1)", shown)
	}
	if g.state.Level.RemainingCreatures() != 0 {
		t.Errorf("live RemainingCreatures() = %d, expected 0", g.state.Level.RemainingCreatures())
	}

	// Input is dropped while the frame is on screen.
	res = g.Step(press(core.ActionRight))
	if !res.State.Animating {
		t.Error("Animating = false after one tick, expected true")
	}
	if p := g.state.Level.Player(); p != bcore.P(1, 1) {
		t.Errorf("Player() = %v, expected (1, 1)", p)
	}

	res = g.Step(press())
	if res.State.Animating {
		t.Error("Animating = true after FrameTicks ticks, expected false")
	}
	if g.Displayed() != g.state.Level {
		t.Error("Displayed() is not the live level after playback")
	}

	g.Step(press(core.ActionRight))
	if p := g.state.Level.Player(); p != bcore.P(2, 1) {
		t.Errorf("Player() = %v, expected (2, 1)", p)
	}
}

func TestLeavingRecordsVisit(t *testing.T) {
	g := newGame(t, walkLevel, 1)

	for i := 0; i < bcore.Width-1; i++ {
		if res := g.Step(press(core.ActionRight)); res.Finished != nil {
			t.Fatalf("step %d: Finished = %+v, expected nil", i, *res.Finished)
		}
	}

	res := g.Step(press(core.ActionRight))
	if res.Finished == nil {
		t.Fatal("Finished = nil, expected a record for the level left")
	}
	if f := res.Finished; f.Burrow != "Alpha" || f.Moves != bcore.Width || f.Cleared {
		t.Errorf("Finished = %+v, expected Alpha, %d moves, not cleared", *f, bcore.Width)
	}

	loc := mustLocation(t, g)
	if loc.Burrow != "Beta" || loc.Level != "Side" {
		t.Errorf("Location() = %+v, expected Beta Side", loc)
	}
	if res.State.Moves != 0 {
		t.Errorf("Moves = %d, expected a fresh visit", res.State.Moves)
	}
	if !strings.HasPrefix(g.Message(), "Entered Beta 1") {
		t.Errorf("Message() = %q, expected an Entered message", g.Message())
	}
}

func TestHoleDropsToNextDepth(t *testing.T) {
	g := newGame(t, walkLevel, 1)

	g.Step(press(core.ActionRight))
	res := g.Step(press(core.ActionDown))

	if res.Finished == nil || res.Finished.Moves != 2 || res.Finished.Depth != 1 {
		t.Errorf("Finished = %+v, expected depth 1 record with 2 moves", res.Finished)
	}
	loc := mustLocation(t, g)
	if loc.Depth != 2 || loc.Level != "Deeper" {
		t.Errorf("Location() = %+v, expected depth 2 Deeper", loc)
	}
}

func TestRestart(t *testing.T) {
	g := newGame(t, walkLevel, 1)

	g.Step(press(core.ActionRight))
	res := g.Step(press(core.ActionRestart))
	if res.Finished == nil || res.Finished.Moves != 1 {
		t.Errorf("Finished = %+v, expected a record with 1 move", res.Finished)
	}
	if p := g.state.Level.Player(); p != bcore.P(0, 1) {
		t.Errorf("Player() = %v, expected (0, 1)", p)
	}
	if !strings.HasPrefix(g.Message(), "Restarted") {
		t.Errorf("Message() = %q, expected a Restarted message", g.Message())
	}

	// A restart with no moves since has nothing to report.
	if res := g.Step(press(core.ActionRestart)); res.Finished != nil {
		t.Errorf("second restart Finished = %+v, expected nil", *res.Finished)
	}
}

func TestWaitIsATurn(t *testing.T) {
	g := newGame(t, corridorLevel, 1)

	res := g.Step(press(core.ActionWait))
	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", res.State.Moves)
	}
	if g.state.Level.RemainingCreatures() != 1 {
		t.Errorf("RemainingCreatures() = %d, expected the far bun to stay", g.state.Level.RemainingCreatures())
	}
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name     string
		moves    int
		reported bool
	}{
		{"fresh level", 0, false},
		{"after moving", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, walkLevel, 1)
			for i := 0; i < tt.moves; i++ {
				g.Step(press(core.ActionRight))
			}

			res := g.Step(press(core.ActionQuit))
			if !res.State.Quit {
				t.Error("Quit = false, expected true")
			}
			if (res.Finished != nil) != tt.reported {
				t.Errorf("Finished = %+v, expected reported %v", res.Finished, tt.reported)
			}
		})
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New(testWorld(t, true, walkLevel), config.DefaultBunsConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 30})

	if res := g.Step(press(core.ActionRight)); res.State.Moves != 0 {
		t.Errorf("Moves = %d, expected input to be ignored", res.State.Moves)
	}
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("Render() = %q, expected a too small notice", screen.String())
	}

	g.Resize(80, 24)
	if res := g.Step(press(core.ActionRight)); res.State.Moves != 1 {
		t.Errorf("Moves after Resize = %d, expected 1", res.State.Moves)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, walkLevel, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Test World", "A Alpha  depth 1", `"Start"`, "Traps 2", "Buns 1", "@", "b"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output lacks %q:\n%s", want, out)
		}
	}
}

func TestThemeCell(t *testing.T) {
	theme := NewTheme(config.DefaultBunsConfig().Glyphs, config.DefaultBunsConfig().Colors)

	tests := []struct {
		name     string
		cell     bcore.CellContent
		expected rune
	}{
		{"wall", bcore.CellContent{Tile: bcore.Wall(false, bcore.Tunnels{})}, '#'},
		{"breakable", bcore.CellContent{Tile: bcore.Wall(true, bcore.Tunnels{})}, '%'},
		{"floor", bcore.CellContent{Tile: bcore.Floor(false)}, '.'},
		{"entry", bcore.CellContent{Tile: bcore.Floor(true)}, '^'},
		{"hole", bcore.CellContent{Tile: bcore.Hole()}, 'O'},
		{"player on entry", bcore.CellContent{Tile: bcore.Floor(true), Item: bcore.ItemPlayer}, '@'},
		{"bun on floor", bcore.CellContent{Tile: bcore.Floor(false), Item: bcore.ItemCreature}, 'b'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := theme.Cell(tt.cell).Rune; got != tt.expected {
				t.Errorf("Cell() = %q, expected %q", got, tt.expected)
			}
		})
	}

	if c := theme.Cell(bcore.CellContent{Tile: bcore.Floor(false), Item: bcore.ItemPlayer}).Color; c != core.ColorBrightYellow {
		t.Errorf("player color = %v, expected ColorBrightYellow", c)
	}
}
