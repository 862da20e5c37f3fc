package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bunburrows/internal/core"
	"github.com/vovakirdan/bunburrows/internal/registry"
	"github.com/vovakirdan/bunburrows/internal/storage"
)

// MenuModel is the Bubble Tea model for the world picker.
type MenuModel struct {
	items    []registry.Info
	stats    map[string]*storage.WorldStats
	cursor   int
	width    int
	height   int
	config   core.RuntimeConfig
	quitting bool
	selected *registry.Info // Set when the player picks a world
	openRuns bool           // True if the player pressed Tab for the run board
}

// NewMenuModel creates a new menu model over every registered world.
// Disabled worlds are listed last. store may be nil.
func NewMenuModel(reg *registry.Registry, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	all := reg.List()
	items := make([]registry.Info, 0, len(all))
	for _, info := range all {
		if info.Enabled {
			items = append(items, info)
		}
	}
	for _, info := range all {
		if !info.Enabled {
			items = append(items, info)
		}
	}

	stats := make(map[string]*storage.WorldStats, len(items))
	if store != nil {
		for _, info := range items {
			if s, err := store.GetWorldStats(info.ID); err == nil {
				stats[info.ID] = s
			}
		}
	}

	return MenuModel{
		items:  items,
		stats:  stats,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 && m.items[m.cursor].Enabled {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionRuns:
		m.openRuns = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  B U N   B U R R O W S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a world", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(dimStyle.Render("No worlds found."), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := "  " + item.Title
		if s, ok := m.stats[item.ID]; ok && s.Runs > 0 {
			line += fmt.Sprintf("  (%d cleared)", s.LevelsCleared)
		}
		if !item.Enabled {
			line += " [disabled]"
		}

		switch {
		case i == m.cursor:
			line = activeStyle.Render("> " + line[2:])
		case !item.Enabled:
			line = dimStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected world, or nil if none was picked.
func (m MenuModel) Selected() *registry.Info {
	return m.selected
}

// IsQuitting returns true if the player asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if the player asked for the run board.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	WorldID   string
	Config    core.RuntimeConfig
	WantsRuns bool
	Quit      bool
}

// RunMenu runs the world picker and returns the selection result.
func RunMenu(reg *registry.Registry, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(reg, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsRuns():
		result.WantsRuns = true
	case m.Selected() != nil:
		result.WorldID = m.Selected().ID
	default:
		result.Quit = true
	}
	return result, nil
}
