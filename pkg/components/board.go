package components

import (
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/types"
)

// BoardComponent 标识棋盘管理器实体
// 用于跟踪哪些格子属于路径、哪些格子已建造防御塔
//
// Occupancy[row][col]：0 表示空格子，否则为防御塔的 GridCode。
// 路径格子不可建造，在 PathCells 中标记，Occupancy 保持 0。
type BoardComponent struct {
	Rows      int
	Cols      int
	CellSize  float64
	Occupancy [][]int

	// Emplacements 格子 -> 防御塔实体
	Emplacements map[types.Cell]ecs.EntityID

	// Path 当前波次的路径（有序），PathCells 是它的集合形式
	Path      []types.Cell
	PathCells map[types.Cell]bool
}

// InBounds 判断格子是否在棋盘范围内
func (b *BoardComponent) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}
