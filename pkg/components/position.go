package components

// PositionComponent 实体在棋盘上的像素坐标
// 单位、粒子的位置都是中心点
type PositionComponent struct {
	X float64
	Y float64
}
