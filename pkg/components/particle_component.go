package components

import (
	"image/color"

	"github.com/Grazulex/Tower/pkg/ecs"
)

// ParticleComponent 单个死亡粒子
//
// 位置由同实体上的 PositionComponent 保存，寿命由 LifetimeComponent 管理。
// OwnerID 指向产生它的单位：只要还有粒子属于某个单位，
// 该单位就不会从模拟中移除（见 systems.EffectTracker）
type ParticleComponent struct {
	OwnerID ecs.EntityID

	// 速度（像素/tick）
	VelocityX float64
	VelocityY float64

	Radius float64
	Color  color.RGBA
}

// BeamComponent 防御塔攻击光束
type BeamComponent struct {
	FromX, FromY float64
	ToX, ToY     float64
	Color        color.RGBA
}
