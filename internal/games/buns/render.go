package buns

import (
	"fmt"

	"github.com/vovakirdan/bunburrows/internal/core"
	bcore "github.com/vovakirdan/bunburrows/internal/games/buns/core"
)

const (
	cellWidth = 2 // Each level cell is a glyph and a space, for a squarer grid

	boardW = bcore.Width*cellWidth + 1 + 2 // cells, trailing pad, border
	boardH = bcore.Height + 2
	hudH   = 2 // Title and location above the board
	infoH  = 3 // Stats, tools and message below it

	minScreenW = boardW + 2
	minScreenH = hudH + boardH + infoH
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.err != nil {
		dst.DrawTextCentered(g.screenH/2-1, g.world.Title, core.ColorBrightWhite)
		dst.DrawTextCentered(g.screenH/2, g.err.Error(), core.ColorRed)
		return
	}

	area := dst.Bounds().CenterIn(boardW, hudH+boardH+infoH)
	board := core.NewRect(area.X, area.Y+hudH, boardW, boardH)

	g.renderHUD(dst, area)
	g.renderBoard(dst, board)
	g.renderInfo(dst, area.X, board.Bottom())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH), core.ColorGray)
}

// renderHUD draws the world title and the current location.
func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	dst.DrawTextColored(area.X, area.Y, g.world.Title, core.ColorBrightWhite)

	loc := g.state.Location()
	where := fmt.Sprintf("%s %s  depth %d", loc.Indicator, loc.Burrow, loc.Depth)
	dst.DrawTextColored(area.X, area.Y+1, where, core.ColorYellow)
	if loc.Level != "" {
		name := "\"" + loc.Level + "\""
		x := core.Max(area.Right()-len([]rune(name)), area.X+len(where)+2)
		dst.DrawTextColored(x, area.Y+1, name, core.ColorCyan)
	}
}

// renderBoard draws the displayed level inside a box.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)

	inner := r.Inset(1)
	for _, c := range g.Displayed().Content() {
		st := g.theme.Cell(c)
		x := inner.X + 1 + int(c.Pos.X)*cellWidth
		y := inner.Y + int(c.Pos.Y)
		dst.SetColored(x, y, st.Rune, st.Color)
	}
}

// renderInfo draws stats, tools and the status message under the board.
func (g *Game) renderInfo(dst *core.Screen, x, y int) {
	level := g.state.Level
	stats := fmt.Sprintf("Buns %d  Caught %d  Moves %d  Score %d",
		level.RemainingCreatures(), level.CapturedCreatures(), g.visit.moves, g.score)
	dst.DrawText(x, y, stats)

	tools := g.state.Tools
	toolLine := fmt.Sprintf("Traps %d  Pickaxes %d  Carrots %d  Shovels %d",
		tools[bcore.Trap], tools[bcore.Pickaxe], tools[bcore.Carrot], tools[bcore.Shovel])
	dst.DrawTextColored(x, y+1, toolLine, core.ColorGray)

	msgColor := core.ColorWhite
	if g.State().Cleared {
		msgColor = core.ColorBrightGreen
	}
	dst.DrawTextColored(x, y+2, g.message, msgColor)
}
