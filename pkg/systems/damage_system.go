package systems

import (
	"log"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/types"
)

// DamageSystem 负责对单位结算伤害和击杀奖励
type DamageSystem struct {
	entityManager *ecs.EntityManager
	economy       *state.EconomyState
	dispatcher    *event.Dispatcher
}

// NewDamageSystem 创建伤害系统
// dispatcher 可以为 nil
func NewDamageSystem(em *ecs.EntityManager, economy *state.EconomyState, dispatcher *event.Dispatcher) *DamageSystem {
	return &DamageSystem{
		entityManager: em,
		economy:       economy,
		dispatcher:    dispatcher,
	}
}

// TakeDamage 对单位造成伤害
//
// 生命值降到 0 及以下时单位进入 DEFEATED：发放赏金、记录击杀、
// 隐藏单位并分发 UnitDefeated 事件，这些只发生一次。
// 对已处于终态的单位调用是无操作。
//
// 返回：
//
//	bool - 本次调用是否造成了伤害
func (s *DamageSystem) TakeDamage(id ecs.EntityID, amount int) bool {
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
	if !ok || unit.State.IsTerminal() {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return false
	}

	health.CurrentHealth -= amount
	if health.CurrentHealth > 0 {
		return true
	}

	unit.State = types.UnitDefeated
	unit.Visible = false
	if !unit.Reported {
		unit.Reported = true
		if s.economy != nil {
			s.economy.Earn(unit.Reward)
			s.economy.RecordKill()
		}

		var x, y float64
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			x, y = pos.X, pos.Y
		}
		log.Printf("[DamageSystem] Unit %d (%s) defeated, reward=%d", id, unit.Category, unit.Reward)
		s.dispatcher.Dispatch(event.Event{
			Type: event.UnitDefeated,
			Data: event.UnitEvent{UnitID: id, Category: unit.Category, X: x, Y: y, Reward: unit.Reward},
		})
	}
	return true
}
