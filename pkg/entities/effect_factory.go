package entities

import (
	"image/color"
	"math/rand"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
)

const (
	// ParticleSpeed 粒子在每个轴上的最大速度（像素/tick）
	ParticleSpeed = 1.5
	// ParticleColorVariation 粒子颜色随机偏移的最大值
	ParticleColorVariation = 20
	// ParticleRadiusMin / ParticleRadiusMax 粒子半径范围（像素）
	ParticleRadiusMin = 2
	ParticleRadiusMax = 4
)

// NewDefeatBurst 在 (x, y) 处创建单位被击败的粒子爆发
// 粒子属于 ownerID，寿命在配置中以 tick 计，这里换算为毫秒
//
// 返回:
//   - []ecs.EntityID: 创建的粒子实体
func NewDefeatBurst(em *ecs.EntityManager, rng *rand.Rand, effects config.EffectsConfig, ownerID ecs.EntityID, x, y float64, base color.RGBA) []ecs.EntityID {
	intn, float := rand.Intn, rand.Float64
	if rng != nil {
		intn, float = rng.Intn, rng.Float64
	}

	count := effects.DefeatParticles
	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		lifetime := effects.ParticleLifetimeMin
		if span := effects.ParticleLifetimeMax - effects.ParticleLifetimeMin; span > 0 {
			lifetime += intn(span + 1)
		}
		variation := intn(2*ParticleColorVariation+1) - ParticleColorVariation

		id := em.CreateEntity()
		em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
		em.AddComponent(id, &components.ParticleComponent{
			OwnerID:   ownerID,
			VelocityX: (2*float() - 1) * ParticleSpeed,
			VelocityY: (2*float() - 1) * ParticleSpeed,
			Radius:    float64(ParticleRadiusMin + intn(ParticleRadiusMax-ParticleRadiusMin+1)),
			Color: color.RGBA{
				R: shiftChannel(base.R, variation),
				G: shiftChannel(base.G, variation),
				B: shiftChannel(base.B, variation),
				A: 255,
			},
		})
		em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: float64(lifetime) * config.TickDurationMs})
		ids = append(ids, id)
	}
	return ids
}

// NewAttackBeam 创建一条攻击光束，持续 durationMs 毫秒
func NewAttackBeam(em *ecs.EntityManager, fromX, fromY, toX, toY float64, durationMs int, clr color.RGBA) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.BeamComponent{
		FromX: fromX,
		FromY: fromY,
		ToX:   toX,
		ToY:   toY,
		Color: clr,
	})
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: float64(durationMs)})
	return id
}

func shiftChannel(v uint8, delta int) uint8 {
	n := int(v) + delta
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
