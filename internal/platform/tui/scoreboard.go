package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bunburrows/internal/core"
	"github.com/vovakirdan/bunburrows/internal/registry"
	"github.com/vovakirdan/bunburrows/internal/storage"
)

// Run board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the world list sidebar
	sidebarWidth       = 22  // Width of the world list sidebar
	maxRuns            = 100 // Max runs to load
)

// RunsKeyMap defines the key bindings for the run board.
type RunsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextWorld key.Binding
	PrevWorld key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextWorld, k.PrevWorld, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextWorld, k.PrevWorld},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextWorld: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next world"),
		),
		PrevWorld: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev world"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the run board: the best recorded
// visits of each world.
type RunsModel struct {
	worlds      []registry.Info
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	stats       *storage.WorldStats
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates a new run board model.
func NewRunsModel(reg *registry.Registry, store *storage.Store, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		worlds:      reg.List(),
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.worlds) > 0 {
		m.loadRuns(m.worlds[0].ID)
	}
	return m
}

// createTable creates a new table sized to the window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 18},
		{Title: "Depth", Width: 5},
		{Title: "Moves", Width: 6},
		{Title: "Caught", Width: 6},
		{Title: "Clear", Width: 5},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	fixed := 0
	for i, c := range columns {
		if i != 1 {
			fixed += c.Width + 2
		}
	}
	columns[1].Width = core.Clamp(tableWidth-fixed-2, 10, 30)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Header, stats, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the best runs and stats of a world.
func (m *RunsModel) loadRuns(worldID string) {
	m.runs = nil
	m.stats = nil
	if m.store != nil {
		if runs, err := m.store.BestRuns(worldID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetWorldStats(worldID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (m *RunsModel) updateTableRows() {
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows formats runs as table rows, ranked in the given order.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		cleared := "no"
		if r.Cleared {
			cleared = "yes"
		}
		level := r.Burrow
		if r.Level != "" {
			level += ": " + r.Level
		}
		date := ""
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			level,
			fmt.Sprintf("%d", r.Depth),
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Captured),
			cleared,
			date,
		}
	}
	return rows
}

// Init initializes the run board.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextWorld):
			if len(m.worlds) > 0 {
				m.cursor = (m.cursor + 1) % len(m.worlds)
				m.loadRuns(m.worlds[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevWorld):
			if len(m.worlds) > 0 {
				m.cursor = (m.cursor - 1 + len(m.worlds)) % len(m.worlds)
				m.loadRuns(m.worlds[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run board.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "BEST RUNS"
	if len(m.worlds) > 0 {
		title = fmt.Sprintf("BEST RUNS - %s", m.worlds[m.cursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarises the selected world.
func (m RunsModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	line := fmt.Sprintf("%d runs, %d levels cleared, %d buns caught",
		m.stats.Runs, m.stats.LevelsCleared, m.stats.Captured)
	if !m.stats.LastPlayed.IsZero() {
		line += ", last played " + m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(line)
}

// renderWideLayout renders the board with a sidebar for world selection.
func (m RunsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Worlds\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, w := range m.worlds {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(w.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with the world name above the table.
func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.worlds) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.worlds[m.cursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nClear a level to get on the board!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if the player wants to go back to the menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the player wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRunsBoard runs the run board screen.
// Returns true if the player wants to go back to the menu, false if quitting.
func RunRunsBoard(reg *registry.Registry, store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRunsModel(reg, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
