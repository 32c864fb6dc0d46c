package systems

import (
	"math"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
)

// CombatSystem 防御塔索敌与攻击
//
// 射程从防御塔所在格子中心计算（含边界）。冷却结束时攻击射程内
// 当前生命值最低的单位，生命值相同时选择实体ID最小（最早生成）的单位。
// 射程内没有单位时不攻击，也不重置冷却。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	damage        *DamageSystem
	dispatcher    *event.Dispatcher
	cellSize      float64
}

// NewCombatSystem 创建战斗系统
func NewCombatSystem(em *ecs.EntityManager, damage *DamageSystem, dispatcher *event.Dispatcher, cellSize float64) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		damage:        damage,
		dispatcher:    dispatcher,
		cellSize:      cellSize,
	}
}

// Update 让所有防御塔针对 units（移动后的位置）结算一次攻击
//
// 参数：
//
//	nowMs - 当前模拟时间（毫秒）
//	units - 可被攻击的单位，按生成顺序
//
// 返回：
//
//	int - 本 tick 发生的攻击次数
func (s *CombatSystem) Update(nowMs int64, units []ecs.EntityID) int {
	attacks := 0
	towers := ecs.GetEntitiesWith1[*components.EmplacementComponent](s.entityManager)
	for _, towerID := range towers {
		if s.updateTower(towerID, nowMs, units) {
			attacks++
		}
	}
	return attacks
}

func (s *CombatSystem) updateTower(towerID ecs.EntityID, nowMs int64, units []ecs.EntityID) bool {
	tower, ok := ecs.GetComponent[*components.EmplacementComponent](s.entityManager, towerID)
	if !ok {
		return false
	}
	cx, cy := utils.CellCenter(types.Cell{Row: tower.Row, Col: tower.Col}, s.cellSize)

	target, hasTarget := s.selectTarget(cx, cy, tower.Range, units)
	if !hasTarget {
		tower.TargetID = 0
		return false
	}

	if float64(nowMs-tower.LastAttackMs) < tower.IntervalMs() {
		// 冷却中：保留仍然有效的目标，失效则清除
		if tower.TargetID != 0 && !s.isValidTarget(tower.TargetID, cx, cy, tower.Range) {
			tower.TargetID = 0
		}
		return false
	}

	targetPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
	s.damage.TakeDamage(target, tower.Damage)
	tower.LastAttackMs = nowMs
	tower.TargetID = target

	s.dispatcher.Dispatch(event.Event{
		Type: event.AttackOccurred,
		Data: event.AttackEvent{
			TowerID:  towerID,
			TargetID: target,
			Category: tower.Category,
			Damage:   tower.Damage,
			FromX:    cx,
			FromY:    cy,
			ToX:      targetPos.X,
			ToY:      targetPos.Y,
			AtMs:     nowMs,
		},
	})

	// 目标被击杀后不再是有效目标
	if !s.isValidTarget(target, cx, cy, tower.Range) {
		tower.TargetID = 0
	}
	return true
}

// selectTarget 选出射程内生命值最低的可见单位
// units 按生成顺序排列，严格小于比较保证平局时取最早的单位
func (s *CombatSystem) selectTarget(cx, cy, maxRange float64, units []ecs.EntityID) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestHealth := math.MaxInt
	for _, id := range units {
		if !s.isValidTarget(id, cx, cy, maxRange) {
			continue
		}
		health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if health.CurrentHealth < bestHealth || (health.CurrentHealth == bestHealth && id < best) {
			best = id
			bestHealth = health.CurrentHealth
		}
	}
	return best, best != 0
}

// isValidTarget 单位存在、存活、可见且在射程内
func (s *CombatSystem) isValidTarget(id ecs.EntityID, cx, cy, maxRange float64) bool {
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
	if !ok || unit.State != types.UnitAdvancing || !unit.Visible {
		return false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return false
	}
	return utils.Distance(cx, cy, pos.X, pos.Y) <= maxRange
}
