package utils

import (
	"math"

	"github.com/Grazulex/Tower/pkg/types"
)

// CellCenter 返回格子中心的像素坐标
// 棋盘左上角为原点，列对应 X，行对应 Y
func CellCenter(cell types.Cell, cellSize float64) (x, y float64) {
	x = float64(cell.Col)*cellSize + cellSize/2
	y = float64(cell.Row)*cellSize + cellSize/2
	return x, y
}

// CellOrigin 返回格子左上角的像素坐标
func CellOrigin(cell types.Cell, cellSize float64) (x, y float64) {
	return float64(cell.Col) * cellSize, float64(cell.Row) * cellSize
}

// PixelToCell 将棋盘像素坐标转换为网格坐标
// 参数:
//   - px, py: 像素坐标（相对棋盘左上角）
//   - cellSize: 格子边长
//   - rows, cols: 网格尺寸
//
// 返回:
//   - cell: 对应格子
//   - isValid: 是否在棋盘范围内
func PixelToCell(px, py, cellSize float64, rows, cols int) (cell types.Cell, isValid bool) {
	if cellSize <= 0 || px < 0 || py < 0 {
		return types.Cell{}, false
	}

	col := int(math.Floor(px / cellSize))
	row := int(math.Floor(py / cellSize))
	if col >= cols || row >= rows {
		return types.Cell{}, false
	}
	return types.Cell{Row: row, Col: col}, true
}

// Distance 两点之间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
