package systems

import (
	"testing"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/types"
)

// testWorld 测试用的最小模拟环境
type testWorld struct {
	em         *ecs.EntityManager
	catalog    *config.Catalog
	economy    *state.EconomyState
	dispatcher *event.Dispatcher
	damage     *DamageSystem
	events     map[event.Type][]event.Event
}

// newTestWorld 创建使用默认数值表的测试环境，并记录所有事件
func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	catalog := config.DefaultCatalog()
	w := &testWorld{
		em:         ecs.NewEntityManager(),
		catalog:    catalog,
		economy:    state.NewEconomyState(catalog.Economy),
		dispatcher: event.NewDispatcher(),
		events:     make(map[event.Type][]event.Event),
	}
	w.damage = NewDamageSystem(w.em, w.economy, w.dispatcher)

	for _, typ := range []event.Type{
		event.UnitSpawned, event.UnitDefeated, event.UnitReachedEnd, event.AttackOccurred,
		event.EmplacementPlaced, event.EmplacementRemoved,
	} {
		typ := typ
		w.dispatcher.SubscribeFunc(typ, func(e event.Event) {
			w.events[typ] = append(w.events[typ], e)
		})
	}
	return w
}

// addUnit 直接在 (x, y) 创建一个前进中的单位，不经过调度器
func (w *testWorld) addUnit(x, y float64, health int, path []types.Cell, speed float64) ecs.EntityID {
	id := w.em.CreateEntity()
	w.em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	w.em.AddComponent(id, &components.HealthComponent{CurrentHealth: health, MaxHealth: health})
	w.em.AddComponent(id, &components.PathFollowerComponent{
		Path:     path,
		Speed:    speed,
		CellSize: float64(w.catalog.Board.CellSize),
	})
	w.em.AddComponent(id, &components.UnitComponent{
		Category: types.UnitStandard,
		Reward:   25,
		Radius:   10,
		State:    types.UnitAdvancing,
		Visible:  true,
	})
	return id
}

// addTower 直接创建一座防御塔，不经过棋盘和扣费
func (w *testWorld) addTower(row, col int, rangePx, aps float64, damage int, placedAtMs int64) ecs.EntityID {
	id := w.em.CreateEntity()
	w.em.AddComponent(id, &components.EmplacementComponent{
		Row:              row,
		Col:              col,
		Category:         types.TowerBalanced,
		Damage:           damage,
		AttacksPerSecond: aps,
		Range:            rangePx,
		LastAttackMs:     placedAtMs,
	})
	return id
}

func (w *testWorld) unit(t *testing.T, id ecs.EntityID) *components.UnitComponent {
	t.Helper()
	unit, ok := ecs.GetComponent[*components.UnitComponent](w.em, id)
	if !ok {
		t.Fatalf("unit %d has no UnitComponent", id)
	}
	return unit
}

func (w *testWorld) health(t *testing.T, id ecs.EntityID) int {
	t.Helper()
	h, ok := ecs.GetComponent[*components.HealthComponent](w.em, id)
	if !ok {
		t.Fatalf("unit %d has no HealthComponent", id)
	}
	return h.CurrentHealth
}

// fakeTracker 可控的 EffectTracker
type fakeTracker map[ecs.EntityID]bool

func (f fakeTracker) HasPendingEffects(id ecs.EntityID) bool {
	return f[id]
}
