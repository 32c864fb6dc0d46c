package scenes

import (
	"image/color"

	"github.com/Grazulex/Tower/pkg/types"
)

// 调色板
var (
	colorBackground  = color.RGBA{R: 20, G: 24, B: 32, A: 255}
	colorGridLine    = color.RGBA{R: 40, G: 46, B: 58, A: 255}
	colorPath        = color.RGBA{R: 96, G: 80, B: 60, A: 255}
	colorPanel       = color.RGBA{R: 30, G: 34, B: 44, A: 255}
	colorButton      = color.RGBA{R: 52, G: 58, B: 72, A: 255}
	colorButtonHover = color.RGBA{R: 70, G: 78, B: 96, A: 255}
	colorSelected    = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	colorText        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorTextDim     = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	colorWarning     = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	colorGood        = color.RGBA{R: 80, G: 220, B: 120, A: 255}
	colorRangeHint   = color.NRGBA{R: 255, G: 255, B: 255, A: 60}
	colorHealthBack  = color.RGBA{R: 60, G: 0, B: 0, A: 255}

	// colorDamaged 单位血量归零时的颜色
	colorDamaged = color.RGBA{R: 255, G: 100, B: 100, A: 255}
)

var towerColors = map[types.TowerCategory]color.RGBA{
	types.TowerBalanced: {R: 0, G: 200, B: 0, A: 255},
	types.TowerRapid:    {R: 0, G: 180, B: 255, A: 255},
	types.TowerHeavy:    {R: 220, G: 60, B: 60, A: 255},
}

var unitColors = map[types.UnitCategory]color.RGBA{
	types.UnitStandard:   {R: 0, G: 0, B: 255, A: 255},
	types.UnitReinforced: {R: 255, G: 255, B: 0, A: 255},
	types.UnitLight:      {R: 0, G: 255, B: 0, A: 255},
	types.UnitFortified:  {R: 128, G: 0, B: 128, A: 255},
}

// TowerColor 返回防御塔颜色，未知类型为灰色
func TowerColor(category types.TowerCategory) color.RGBA {
	if c, ok := towerColors[category]; ok {
		return c
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

// UnitColor 返回单位满血时的颜色
func UnitColor(category types.UnitCategory) color.RGBA {
	if c, ok := unitColors[category]; ok {
		return c
	}
	return color.RGBA{R: 200, G: 200, B: 200, A: 255}
}

// HealthColor 按剩余血量比例在基础色和受伤色之间插值
// ratio=1 为基础色，ratio=0 为 colorDamaged
func HealthColor(base color.RGBA, ratio float64) color.RGBA {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*ratio + float64(b)*(1-ratio) + 0.5)
	}
	return color.RGBA{
		R: mix(base.R, colorDamaged.R),
		G: mix(base.G, colorDamaged.G),
		B: mix(base.B, colorDamaged.B),
		A: base.A,
	}
}
