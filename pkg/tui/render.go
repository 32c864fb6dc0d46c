package tui

import (
	"fmt"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// 面板从棋盘右侧第几列开始
const panelGap = 2

// 菜单排行榜的行数
const menuLeaderboardRows = 5

var (
	styleDefault = tcell.StyleDefault
	stylePath    = tcell.StyleDefault.Background(tcell.NewRGBColor(96, 80, 60))
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor  = tcell.StyleDefault.Reverse(true)
)

var towerRunes = map[types.TowerCategory]rune{
	types.TowerBalanced: 'B',
	types.TowerRapid:    'R',
	types.TowerHeavy:    'H',
}

var towerStyles = map[types.TowerCategory]tcell.Style{
	types.TowerBalanced: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	types.TowerRapid:    tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	types.TowerHeavy:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

var unitRunes = map[types.UnitCategory]rune{
	types.UnitStandard:   'o',
	types.UnitReinforced: 'O',
	types.UnitLight:      '*',
	types.UnitFortified:  '#',
}

// unitStyle 血量高于一半为白色，一半以下变黄，低于四分之一变红
func unitStyle(ratio float64) tcell.Style {
	switch {
	case ratio > 0.5:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	case ratio > 0.25:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
}

// draw 按阶段绘制整屏
func (g *Game) draw() {
	g.screen.Clear()
	switch g.phase {
	case state.PhaseMenu:
		g.drawMenu()
	case state.PhasePlaying:
		g.drawBoard()
		g.drawPanel()
	default:
		g.drawGameOver()
	}
	g.screen.Show()
}

func (g *Game) drawText(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (g *Game) drawMenu() {
	record := g.highScores.GetRecord()
	header := fmt.Sprintf("High score: %d", record.Score)
	if record.Player != "" {
		header += " by " + record.Player
	}
	g.drawText(2, 1, styleTitle, config.WindowTitle)
	g.drawText(2, 3, styleDefault, header)

	g.drawText(2, 5, styleDefault, "Name: "+g.login.Name()+"_")
	if g.login.Message != "" {
		style := styleDefault
		if g.login.IsError {
			style = styleWarning
		}
		g.drawText(2, 6, style, g.login.Message)
	}

	lines := []string{
		"Enter: play    Tab: play as guest    Esc: quit",
		"",
		"Arrows/hjkl: move cursor",
		"1/2/3: select tower    Space: build    x: remove",
		"Esc: back to menu",
	}
	if board := g.highScores.Profiles().Leaderboard(menuLeaderboardRows); len(board) > 0 {
		lines = append(lines, "", "Leaderboard")
		for i, entry := range board {
			lines = append(lines, fmt.Sprintf("%d. %-20s %6d", i+1, entry.Username, entry.Score))
		}
	}
	for i, line := range lines {
		g.drawText(2, 8+i, styleDefault, line)
	}
}

// drawBoard 一个格子一个字符：路径、防御塔、单位、光标
func (g *Game) drawBoard() {
	board := g.snapshot.Board
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			g.screen.SetContent(c, r, '.', nil, styleGrid)
		}
	}
	for _, cell := range board.Path {
		g.screen.SetContent(cell.Col, cell.Row, ' ', nil, stylePath)
	}

	for _, emp := range g.snapshot.Emplacements {
		g.screen.SetContent(emp.Cell.Col, emp.Cell.Row, towerRunes[emp.Category], nil, towerStyles[emp.Category])
	}

	for _, unit := range g.snapshot.Units {
		if !unit.Visible {
			continue
		}
		col := int(unit.X / board.CellSize)
		row := int(unit.Y / board.CellSize)
		if row < 0 || row >= board.Rows || col < 0 || col >= board.Cols {
			continue
		}
		style := unitStyle(unit.HealthRatio)
		if board.IsPath(types.Cell{Row: row, Col: col}) {
			style = style.Background(tcell.NewRGBColor(96, 80, 60))
		}
		g.screen.SetContent(col, row, unitRunes[unit.Category], nil, style)
	}

	mainc, _, _, _ := g.screen.GetContent(g.cursor.Col, g.cursor.Row)
	g.screen.SetContent(g.cursor.Col, g.cursor.Row, mainc, nil, styleCursor)
}

func (g *Game) drawPanel() {
	x := g.snapshot.Board.Cols + panelGap
	eco := g.snapshot.Economy
	wave := g.snapshot.Wave

	livesStyle := styleDefault
	if eco.Lives < 5 {
		livesStyle = styleWarning
	}
	g.drawText(x, 0, styleTitle, fmt.Sprintf("Currency: %d", eco.Currency))
	g.drawText(x, 1, livesStyle, fmt.Sprintf("Lives: %d", eco.Lives))
	g.drawText(x, 2, styleDim, fmt.Sprintf("Best: %d", g.snapshot.HighScore))

	for i, category := range types.AllTowerCategories {
		stats, _ := g.catalog.GetTowerStats(category)
		style := styleDefault
		if category == g.selected {
			style = towerStyles[category].Reverse(true)
		} else if !g.session.CanAfford(category) {
			style = styleDim
		}
		g.drawText(x, 4+i, style, fmt.Sprintf("%d %c %-8s $%d", i+1, towerRunes[category], category, stats.Cost))
	}

	g.drawText(x, 8, styleTitle, fmt.Sprintf("Wave %d", wave.Number))
	g.drawText(x, 9, styleDefault, fmt.Sprintf("Total: %d", wave.Total))
	g.drawText(x, 10, styleDefault, fmt.Sprintf("Remaining: %d", wave.Remaining+wave.Active))
	g.drawText(x, 11, styleDefault, fmt.Sprintf("Killed: %d", eco.Kills))

	if g.status != "" {
		g.drawText(x, 13, styleWarning, g.status)
	}
}

func (g *Game) drawGameOver() {
	g.drawText(2, 1, styleWarning, "GAME OVER")
	if g.result == nil {
		g.drawText(2, 3, styleDefault, "Press Enter to return to the menu")
		return
	}
	player := g.result.Player
	if player == "" {
		player = state.GuestName
	}
	lines := []string{
		fmt.Sprintf("Player: %s", player),
		fmt.Sprintf("Score: %d", g.result.FinalScore),
		fmt.Sprintf("Wave reached: %d", g.result.Wave),
		fmt.Sprintf("Enemies killed: %d", g.result.Kills),
	}
	if g.result.NewHighScore {
		lines = append(lines, "New high score!")
	} else {
		lines = append(lines, fmt.Sprintf("High score: %d", g.highScores.GetHighScore()))
	}
	if g.result.Player != "" {
		lines = append(lines, fmt.Sprintf("Personal best: %d", g.highScores.Profiles().BestScore(g.result.Player)))
	}
	lines = append(lines, "", "Press Enter to return to the menu")
	for i, line := range lines {
		g.drawText(2, 3+i, styleDefault, line)
	}
}

// waveClearedStatus 波次停顿期间显示的提示
func waveClearedStatus(e event.WaveEvent) string {
	return fmt.Sprintf("Wave %d cleared! +%d", e.Wave, e.Bonus)
}
