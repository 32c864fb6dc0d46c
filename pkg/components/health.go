package components

// HealthComponent 存储实体的生命值信息
// 用于敌方单位等可被攻击的实体
type HealthComponent struct {
	CurrentHealth int // 当前生命值（可能被打成负数，<= 0 即视为死亡）
	MaxHealth     int // 最大生命值
}

// Ratio 返回剩余生命比例，用于血条绘制
// 结果限制在 [0, 1]
func (h *HealthComponent) Ratio() float64 {
	if h.MaxHealth <= 0 || h.CurrentHealth <= 0 {
		return 0
	}
	if h.CurrentHealth >= h.MaxHealth {
		return 1
	}
	return float64(h.CurrentHealth) / float64(h.MaxHealth)
}
