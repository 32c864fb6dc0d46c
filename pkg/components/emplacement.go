package components

import (
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/types"
)

// EmplacementComponent 标识实体为防御塔
//
// 防御塔固定在一个格子上，数值在建造时从 Catalog 复制。
// TargetID 是对单位实体的弱引用，每个 tick 都要重新校验（单位可能已死亡或被移除）
type EmplacementComponent struct {
	Row      int
	Col      int
	Category types.TowerCategory

	Damage           int
	AttacksPerSecond float64
	Range            float64
	Cost             int

	// LastAttackMs 上次攻击的模拟时间；建造时设为建造时间
	LastAttackMs int64

	// TargetID 当前目标，0 表示没有目标
	TargetID ecs.EntityID
}

// IntervalMs 两次攻击之间的最小间隔（毫秒）
func (e *EmplacementComponent) IntervalMs() float64 {
	if e.AttacksPerSecond <= 0 {
		return 0
	}
	return 1000.0 / e.AttacksPerSecond
}
