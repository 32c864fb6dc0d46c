package components

import "github.com/Grazulex/Tower/pkg/types"

// UnitComponent 标识实体为敌方单位
// 数值在生成时从 Catalog 的单位数值行复制，之后只有 State/Visible/Reported 会变化
type UnitComponent struct {
	Category types.UnitCategory
	Reward   int     // 击杀赏金
	Radius   float64 // 绘制半径（像素）
	State    types.UnitState

	// Visible 单位进入终态后不再绘制，也不能被选为目标
	Visible bool

	// Reported 终态是否已经结算（赏金或扣命），保证只结算一次
	Reported bool
}

// PathFollowerComponent 沿路径格子逐个前进
type PathFollowerComponent struct {
	Path          []types.Cell // 本波路径（与棋盘共享，只读）
	WaypointIndex int          // 当前目标格子在 Path 中的下标
	Speed         float64      // 每 tick 移动的像素数
	CellSize      float64      // 格子边长，用于计算格子中心
}
