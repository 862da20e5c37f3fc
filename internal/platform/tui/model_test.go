package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bunburrows/internal/core"
	"github.com/vovakirdan/bunburrows/internal/storage"
)

// recordingGame finishes a visit on every Right press and remembers the
// frames it was stepped with.
type recordingGame struct {
	steps   []core.InputFrame
	resets  int
	resized [2]int
	quit    bool
}

func (g *recordingGame) ID() string { return "test" }

func (g *recordingGame) Title() string { return "Test" }

func (g *recordingGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *recordingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "burrow") }

func (g *recordingGame) State() core.GameState { return core.GameState{Quit: g.quit} }

func (g *recordingGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	g.steps = append(g.steps, frame)

	if in.Has(core.ActionQuit) {
		g.quit = true
	}
	res := core.StepResult{State: g.State()}
	if in.Has(core.ActionRight) {
		res.Finished = &core.RunRecord{
			World:    "test",
			Burrow:   "Alpha",
			Depth:    1,
			Level:    "First",
			Moves:    3,
			Captured: 1,
			Cleared:  true,
		}
	}
	return res
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		key      string
		expected core.Action
	}{
		{"up", core.ActionUp},
		{"w", core.ActionUp},
		{"a", core.ActionLeft},
		{"s", core.ActionDown},
		{"right", core.ActionRight},
		{"d", core.ActionRight},
		{" ", core.ActionWait},
		{"r", core.ActionRestart},
		{"q", core.ActionQuit},
		{"x", core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := keys.MapKey(keyMsg(tt.key)); got != tt.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		key      string
		expected MenuAction
	}{
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{" ", MenuActionSelect},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := MapKeyToMenuAction(keyMsg(tt.key)); got != tt.expected {
				t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestTickSavesFinishedRun(t *testing.T) {
	store := openStore(t)
	game := &recordingGame{}
	m := NewModel(game, store, quietLogger(), core.DefaultConfig())

	m = update(t, m, keyMsg("right"))
	m = update(t, m, TickMsg{})

	runs, err := store.BestRuns("test", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, expected 1", len(runs))
	}
	if r := runs[0]; r.Burrow != "Alpha" || r.Moves != 3 || !r.Cleared {
		t.Errorf("run = %+v, expected Alpha cleared in 3 moves", r)
	}

	// The frame is cleared after each tick.
	m = update(t, m, TickMsg{})
	if last := game.steps[len(game.steps)-1]; last.Has(core.ActionRight) {
		t.Error("second tick still carried the Right action")
	}
	if m.IsQuitting() {
		t.Error("IsQuitting() = true, expected false")
	}
}

func TestQuitKeyFlushesVisit(t *testing.T) {
	game := &recordingGame{}
	m := NewModel(game, nil, quietLogger(), core.DefaultConfig())

	m = update(t, m, keyMsg("q"))
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false, expected true")
	}
	if len(game.steps) != 1 || !game.steps[0].Has(core.ActionQuit) {
		t.Errorf("steps = %v, expected one quit step", game.steps)
	}
	if m.View() != "" {
		t.Error("View() not empty after quitting")
	}
}

func TestBackKey(t *testing.T) {
	game := &recordingGame{}
	m := NewModel(game, nil, quietLogger(), core.DefaultConfig())

	m = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu(), IsQuitting() = %v, %v, expected true, false", m.BackToMenu(), m.IsQuitting())
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	game := &recordingGame{}
	m := NewModel(game, nil, quietLogger(), core.DefaultConfig())

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 0 {
		t.Errorf("resets = %d, expected 0", game.resets)
	}
	if game.resized != [2]int{100, 40 - helpHeight} {
		t.Errorf("resized = %v, expected [100 %d]", game.resized, 40-helpHeight)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40-helpHeight {
		t.Errorf("screen = %dx%d, expected 100x%d", m.screen.Width(), m.screen.Height(), 40-helpHeight)
	}
}

func TestView(t *testing.T) {
	m := NewModel(&recordingGame{}, nil, quietLogger(), core.RuntimeConfig{ScreenW: 200, ScreenH: 4, TickRate: 30})

	view := m.View()
	if !strings.Contains(view, "burrow") {
		t.Errorf("View() lacks the game screen:\n%s", view)
	}
	if !strings.Contains(view, "quit") {
		t.Errorf("View() lacks the help bar:\n%s", view)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, 'x', core.ColorBrown)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("line 0 = %q, expected to contain ab and cd", lines[0])
	}
	if !strings.Contains(lines[1], "x") {
		t.Errorf("line 1 = %q, expected to contain x", lines[1])
	}
}

func TestRunRows(t *testing.T) {
	rows := RunRows([]storage.Run{
		{Burrow: "Alpha", Level: "First", Depth: 1, Moves: 4, Captured: 2, Cleared: true},
		{Burrow: "Beta", Depth: 2, Moves: 9},
	})

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, expected 2", len(rows))
	}
	expected := []string{"1", "Alpha: First", "1", "4", "2", "yes", ""}
	for i, cell := range rows[0] {
		if cell != expected[i] {
			t.Errorf("rows[0][%d] = %q, expected %q", i, cell, expected[i])
		}
	}
	if rows[1][1] != "Beta" || rows[1][5] != "no" {
		t.Errorf("rows[1] = %v, expected Beta not cleared", rows[1])
	}
}
