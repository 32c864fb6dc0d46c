package systems

import (
	"image/color"
	"math/rand"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/entities"
)

// ParticleSystem 表现层特效系统
//
// 管理击杀粒子和攻击光束。使用独立的 EntityManager，模拟核心看不到这些实体。
//
// 实现 EffectTracker：被击杀的单位在它发出的粒子全部消失之前保留在模拟中。
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	effects  config.EffectsConfig
	rng      *rand.Rand
	lifetime *LifetimeSystem

	// pending 每个单位尚未消失的粒子数
	pending map[ecs.EntityID]int
}

// NewParticleSystem 创建特效系统，rng 可为 nil
func NewParticleSystem(effects config.EffectsConfig, rng *rand.Rand) *ParticleSystem {
	em := ecs.NewEntityManager()
	return &ParticleSystem{
		EntityManager: em,
		effects:       effects,
		rng:           rng,
		lifetime:      NewLifetimeSystem(em),
		pending:       make(map[ecs.EntityID]int),
	}
}

// SpawnDefeatBurst 在 (x, y) 为单位 owner 生成击杀粒子
func (ps *ParticleSystem) SpawnDefeatBurst(owner ecs.EntityID, x, y float64, base color.RGBA) {
	ids := entities.NewDefeatBurst(ps.EntityManager, ps.rng, ps.effects, owner, x, y, base)
	if len(ids) > 0 {
		ps.pending[owner] += len(ids)
	}
}

// SpawnBeam 显示一条攻击光束，持续时间见 EffectsConfig
func (ps *ParticleSystem) SpawnBeam(fromX, fromY, toX, toY float64, clr color.RGBA) {
	if ps.effects.AttackFlashMs <= 0 {
		return
	}
	entities.NewAttackBeam(ps.EntityManager, fromX, fromY, toX, toY, ps.effects.AttackFlashMs, clr)
}

// HasPendingEffects 单位 id 是否还有未消失的粒子
func (ps *ParticleSystem) HasPendingEffects(id ecs.EntityID) bool {
	return ps.pending[id] > 0
}

// Update 推进一个 tick 并移除到期的特效
// deltaMs 为本 tick 的模拟时间（毫秒）
func (ps *ParticleSystem) Update(deltaMs float64) {
	particles := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](ps.EntityManager)
	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)
		pos.X += p.VelocityX
		pos.Y += p.VelocityY
	}

	for _, id := range ps.lifetime.Update(deltaMs) {
		p, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		if !ok {
			continue
		}
		ps.pending[p.OwnerID]--
		if ps.pending[p.OwnerID] <= 0 {
			delete(ps.pending, p.OwnerID)
		}
	}

	ps.EntityManager.RemoveMarkedEntities()
}

// Clear 清空所有特效（开始新的一局时调用）
func (ps *ParticleSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](ps.EntityManager) {
		ps.EntityManager.DestroyEntity(id)
	}
	ps.EntityManager.RemoveMarkedEntities()
	ps.pending = make(map[ecs.EntityID]int)
}

// Count 返回当前特效实体数量
func (ps *ParticleSystem) Count() int {
	return ps.EntityManager.Count()
}
