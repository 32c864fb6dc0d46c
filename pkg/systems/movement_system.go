package systems

import (
	"log"
	"math"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
)

// MovementSystem 推动所有前进中的单位沿路径移动
//
// 每个 tick 单位朝当前路径点所在格子的中心移动 Speed 像素；
// 距离小于 Speed 时吸附到格子中心并切换到下一个路径点。
// 越过最后一个路径点即到达终点，扣除一条生命。
type MovementSystem struct {
	entityManager *ecs.EntityManager
	economy       *state.EconomyState
	dispatcher    *event.Dispatcher
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, economy *state.EconomyState, dispatcher *event.Dispatcher) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		economy:       economy,
		dispatcher:    dispatcher,
	}
}

// Update 移动给定的单位（按传入顺序）
// 只处理 units 中的实体，其他实体不受影响
func (s *MovementSystem) Update(units []ecs.EntityID) {
	for _, id := range units {
		s.step(id)
	}
}

func (s *MovementSystem) step(id ecs.EntityID) {
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
	if !ok || unit.State != types.UnitAdvancing {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	follower, ok := ecs.GetComponent[*components.PathFollowerComponent](s.entityManager, id)
	if !ok {
		return
	}

	if follower.WaypointIndex >= len(follower.Path) {
		s.reachEnd(id, unit, pos)
		return
	}

	targetX, targetY := utils.CellCenter(follower.Path[follower.WaypointIndex], follower.CellSize)
	dx := targetX - pos.X
	dy := targetY - pos.Y
	dist := math.Hypot(dx, dy)

	if dist < follower.Speed || dist == 0 {
		pos.X, pos.Y = targetX, targetY
		follower.WaypointIndex++
		if follower.WaypointIndex >= len(follower.Path) {
			s.reachEnd(id, unit, pos)
		}
		return
	}

	pos.X += dx / dist * follower.Speed
	pos.Y += dy / dist * follower.Speed
}

func (s *MovementSystem) reachEnd(id ecs.EntityID, unit *components.UnitComponent, pos *components.PositionComponent) {
	unit.State = types.UnitReachedEnd
	unit.Visible = false
	if unit.Reported {
		return
	}
	unit.Reported = true
	if s.economy != nil {
		s.economy.LoseLife()
	}
	log.Printf("[MovementSystem] Unit %d (%s) reached the end", id, unit.Category)
	s.dispatcher.Dispatch(event.Event{
		Type: event.UnitReachedEnd,
		Data: event.UnitEvent{UnitID: id, Category: unit.Category, X: pos.X, Y: pos.Y},
	})
}
