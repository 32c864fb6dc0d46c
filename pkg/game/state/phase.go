package state


// Phase 一局游戏所处的阶段
// 菜单 -> 游戏中 -> 游戏结束 -> 菜单
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String 返回阶段名称（日志用）
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
