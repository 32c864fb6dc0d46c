package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawText 在 (x, y) 处绘制文字，(x, y) 为文字左上角
func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawCenteredText 以 centerX 为水平中心绘制文字
func drawCenteredText(screen *ebiten.Image, s string, face text.Face, centerX, y float64, clr color.Color) {
	width := text.Advance(s, face)
	drawText(screen, s, face, centerX-width/2, y, clr)
}

// pointInRect 点是否落在矩形内（含左上边，不含右下边）
func pointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
