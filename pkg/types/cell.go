package types

// Cell 网格坐标（行, 列）
// 路径一旦生成即不可变，Cell 也用作棋盘占用表的键
type Cell struct {
	Row int
	Col int
}

// IsAdjacent 检查两个格子是否恰好相差一步（上下左右）
func (c Cell) IsAdjacent(other Cell) bool {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}
