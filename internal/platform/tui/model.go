package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bunburrows/internal/core"
	"github.com/vovakirdan/bunburrows/internal/registry"
	"github.com/vovakirdan/bunburrows/internal/storage"
)

// helpHeight is the number of rows kept under the game for the help bar.
const helpHeight = 1

// resizer is implemented by games that can follow a terminal resize without
// losing progress.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for playing one world.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case runs are not recorded.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

func gameHeight(h int) int {
	return core.Max(h-helpHeight, 0)
}

// gameConfig is the runtime config as seen by the game, minus the help bar.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.finish()
		m.backToMenu = true
		return m, tea.Quit
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// finish runs a last quit tick so the visit in progress gets recorded.
func (m *Model) finish() {
	frame := core.NewInputFrame()
	frame.Set(core.ActionQuit)
	m.record(m.game.Step(frame))
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	} else {
		// Note: This resets the game
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.record(m.game.Step(m.inputFrame))
	m.inputFrame.Clear()

	if m.gameState.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// record keeps the latest state and stores a finished visit, if any.
func (m *Model) record(res core.StepResult) {
	m.gameState = res.State
	if res.Finished == nil || m.store == nil {
		return
	}

	run := RunFromRecord(*res.Finished)
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Error("could not save run", "world", run.World, "burrow", run.Burrow, "depth", run.Depth, "error", err)
		return
	}
	m.logger.Debug("run saved", "world", run.World, "burrow", run.Burrow, "depth", run.Depth,
		"moves", run.Moves, "cleared", run.Cleared)
}

// RunFromRecord converts a finished visit into a storage row.
func RunFromRecord(rec core.RunRecord) storage.Run {
	return storage.Run{
		World:    rec.World,
		Burrow:   rec.Burrow,
		Depth:    rec.Depth,
		Level:    rec.Level,
		Moves:    rec.Moves,
		Captured: rec.Captured,
		Cleared:  rec.Cleared,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("no home directory for screenshots", "error", err)
		return
	}
	dir := filepath.Join(home, ".burrows", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
// It returns true if the player left for the menu rather than quitting.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
