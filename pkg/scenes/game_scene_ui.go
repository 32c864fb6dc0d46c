package scenes

import (
	"fmt"
	"image/color"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw 绘制顺序：棋盘 -> 射程圈 -> 防御塔 -> 单位 -> 效果 -> 右侧面板
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	s.drawBoard(screen)
	s.drawHoverCell(screen)
	if s.showRangeHints() {
		s.drawRangeHints(screen)
	}
	s.drawEmplacements(screen)
	s.drawUnits(screen)
	s.drawEffects(screen)
	s.drawPanel(screen)
}

// drawBoard 路径格子和网格线
func (s *GameScene) drawBoard(screen *ebiten.Image) {
	board := s.snapshot.Board
	size := float32(board.CellSize)

	for _, cell := range board.Path {
		x, y := utils.CellOrigin(cell, board.CellSize)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, colorPath, false)
	}

	width := float32(board.Cols) * size
	height := float32(board.Rows) * size
	for c := 0; c <= board.Cols; c++ {
		x := float32(c) * size
		vector.StrokeLine(screen, x, 0, x, height, 1, colorGridLine, false)
	}
	for r := 0; r <= board.Rows; r++ {
		y := float32(r) * size
		vector.StrokeLine(screen, 0, y, width, y, 1, colorGridLine, false)
	}
}

// drawHoverCell 鼠标所在格子：可建造为选中塔的颜色，否则为红色
func (s *GameScene) drawHoverCell(screen *ebiten.Image) {
	cell, ok := s.cellAt(s.hoverX, s.hoverY)
	if !ok {
		return
	}
	board := s.snapshot.Board
	clr := TowerColor(s.selected)
	if board.IsPath(cell) || board.Occupancy[cell.Row][cell.Col] != 0 || !s.session.CanAfford(s.selected) {
		clr = colorWarning
	}
	x, y := utils.CellOrigin(cell, board.CellSize)
	size := float32(board.CellSize)
	vector.StrokeRect(screen, float32(x), float32(y), size, size, 2, clr, false)
}

func (s *GameScene) drawRangeHints(screen *ebiten.Image) {
	for _, emp := range s.snapshot.Emplacements {
		vector.StrokeCircle(screen, float32(emp.X), float32(emp.Y), float32(emp.Range), 1, colorRangeHint, true)
	}
}

// drawEmplacements 深色底座 + 内部方块
func (s *GameScene) drawEmplacements(screen *ebiten.Image) {
	size := float32(s.snapshot.Board.CellSize)
	for _, emp := range s.snapshot.Emplacements {
		base := TowerColor(emp.Category)
		x, y := utils.CellOrigin(emp.Cell, s.snapshot.Board.CellSize)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, darken(base, 30), false)
		inset := size / 5
		vector.DrawFilledRect(screen, float32(x)+inset, float32(y)+inset, size-2*inset, size-2*inset, base, false)
	}
}

// drawUnits 单位颜色随血量变化，头顶血条
func (s *GameScene) drawUnits(screen *ebiten.Image) {
	for _, unit := range s.snapshot.Units {
		if !unit.Visible {
			continue
		}
		clr := HealthColor(UnitColor(unit.Category), unit.HealthRatio)
		vector.DrawFilledCircle(screen, float32(unit.X), float32(unit.Y), float32(unit.Radius), clr, true)

		barWidth := float32(unit.Radius * 2)
		barX := float32(unit.X) - barWidth/2
		barY := float32(unit.Y-unit.Radius) - 5
		vector.DrawFilledRect(screen, barX, barY, barWidth, 3, colorHealthBack, false)
		vector.DrawFilledRect(screen, barX, barY, barWidth*float32(unit.HealthRatio), 3, colorGood, false)
	}
}

// drawPanel 右侧信息面板：经济状态、商店、波次信息
func (s *GameScene) drawPanel(screen *ebiten.Image) {
	board := s.res.Catalog.Board
	_, height := config.WindowSize(board)
	panelX := float64(board.Width)
	vector.DrawFilledRect(screen, float32(panelX), 0, config.UIPanelWidth, float32(height), colorPanel, false)

	x := panelX + 10
	eco := s.snapshot.Economy
	livesColor := colorText
	if eco.Lives < 5 {
		livesColor = colorWarning
	}
	drawText(screen, fmt.Sprintf("Currency: %d", eco.Currency), s.res.Face, x, 10, colorSelected)
	drawText(screen, fmt.Sprintf("Lives: %d", eco.Lives), s.res.Face, x, 30, livesColor)
	drawText(screen, fmt.Sprintf("Best: %d", s.snapshot.HighScore), s.res.Face, x, 50, colorTextDim)

	s.drawShop(screen)

	wave := s.snapshot.Wave
	y := float64(height) - 110
	drawText(screen, fmt.Sprintf("Wave %d", wave.Number), s.res.Face, x, y, colorSelected)
	drawText(screen, fmt.Sprintf("Total: %d", wave.Total), s.res.Face, x, y+20, colorText)
	drawText(screen, fmt.Sprintf("Remaining: %d", wave.Remaining+wave.Active), s.res.Face, x, y+40, colorText)
	drawText(screen, fmt.Sprintf("Killed: %d", eco.Kills), s.res.Face, x, y+60, colorText)

	if s.statusText != "" && s.clockMs < s.statusUntilMs {
		drawText(screen, s.statusText, s.res.Face, x, y+80, colorWarning)
	}
}

// drawShop 商店按钮：名称、价格，买不起时变暗
func (s *GameScene) drawShop(screen *ebiten.Image) {
	for i, category := range types.AllTowerCategories {
		stats, ok := s.res.Catalog.GetTowerStats(category)
		if !ok {
			continue
		}
		bx, by, bw, bh := config.TowerButtonRect(s.res.Catalog.Board, i)

		bg := colorButton
		if pointInRect(float64(s.hoverX), float64(s.hoverY), bx, by, bw, bh) {
			bg = colorButtonHover
		}
		vector.DrawFilledRect(screen, float32(bx), float32(by), float32(bw), float32(bh), bg, false)
		if category == s.selected {
			vector.StrokeRect(screen, float32(bx), float32(by), float32(bw), float32(bh), 2, colorSelected, false)
		}

		swatch := float32(bh) / 2
		vector.DrawFilledRect(screen, float32(bx)+6, float32(by)+swatch/2, swatch, swatch, TowerColor(category), false)

		textColor := colorText
		if !s.session.CanAfford(category) {
			textColor = colorTextDim
		}
		label := fmt.Sprintf("%d %s", i+1, category)
		drawText(screen, label, s.res.Face, bx+float64(swatch)+12, by+6, textColor)
		drawText(screen, fmt.Sprintf("$%d", stats.Cost), s.res.Face, bx+float64(swatch)+12, by+22, textColor)
	}
}

// darken 每个通道减去 amount，下限为 0
func darken(c color.RGBA, amount uint8) color.RGBA {
	sub := func(v uint8) uint8 {
		if v < amount {
			return 0
		}
		return v - amount
	}
	return color.RGBA{R: sub(c.R), G: sub(c.G), B: sub(c.B), A: c.A}
}
