package components

// LifetimeComponent 管理表现实体的生命周期
// 时间单位为毫秒
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大寿命
	CurrentLifetime float64 // 已存在时间
	IsExpired       bool    // 是否已过期
}

// Progress 返回已消耗的寿命比例 [0, 1]
func (l *LifetimeComponent) Progress() float64 {
	if l.MaxLifetime <= 0 {
		return 1
	}
	p := l.CurrentLifetime / l.MaxLifetime
	if p > 1 {
		return 1
	}
	return p
}
