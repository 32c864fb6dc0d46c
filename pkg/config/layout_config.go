package config

// 布局配置常量
// 本文件定义了窗口和 UI 面板的布局参数，棋盘本身的尺寸来自数值表（BoardConfig）

const (
	// WindowTitle 窗口标题
	WindowTitle = "Tower Defense"

	// UIPanelWidth 棋盘右侧信息面板的宽度（像素）
	UIPanelWidth = 150

	// TicksPerSecond 模拟循环频率
	TicksPerSecond = 60

	// TickDurationMs 每个 tick 推进的模拟时间（毫秒）
	TickDurationMs = 1000.0 / TicksPerSecond

	// TowerButtonHeight 商店按钮高度
	TowerButtonHeight = 40

	// TowerButtonSpacing 商店按钮间距
	TowerButtonSpacing = 10

	// TowerButtonTop 第一个商店按钮的Y坐标
	TowerButtonTop = 150
)

// WindowSize 根据棋盘尺寸计算窗口逻辑尺寸
// 返回值：width, height
func WindowSize(board BoardConfig) (int, int) {
	return board.Width + UIPanelWidth, board.Height
}

// TowerButtonRect 返回第 index 个商店按钮的矩形（x, y, w, h）
func TowerButtonRect(board BoardConfig, index int) (float64, float64, float64, float64) {
	x := float64(board.Width) + TowerButtonSpacing
	y := float64(TowerButtonTop + index*(TowerButtonHeight+TowerButtonSpacing))
	w := float64(UIPanelWidth - 2*TowerButtonSpacing)
	return x, y, w, TowerButtonHeight
}
