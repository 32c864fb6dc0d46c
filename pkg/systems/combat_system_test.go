package systems

import (
	"testing"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/event"
)

func newTestCombat(w *testWorld) *CombatSystem {
	return NewCombatSystem(w.em, w.damage, w.dispatcher, float64(w.catalog.Board.CellSize))
}

// TestCombatTargetsLowestHealth 射程内 [80, 30, 50] 选择 30
func TestCombatTargetsLowestHealth(t *testing.T) {
	w := newTestWorld(t)
	cs := newTestCombat(w)

	// 塔在 (0,0)，中心 (10,10)
	tower := w.addTower(0, 0, 50, 1.0, 10, 0)
	a := w.addUnit(20, 10, 80, nil, 2)
	b := w.addUnit(30, 10, 30, nil, 2)
	c := w.addUnit(40, 10, 50, nil, 2)
	units := []ecs.EntityID{a, b, c}

	if n := cs.Update(1000, units); n != 1 {
		t.Fatalf("Expected 1 attack, got %d", n)
	}
	if w.health(t, b) != 20 {
		t.Errorf("Expected unit with 30 health to be hit, health now %d", w.health(t, b))
	}
	if w.health(t, a) != 80 || w.health(t, c) != 50 {
		t.Error("Other units should be untouched")
	}

	emp, _ := ecs.GetComponent[*components.EmplacementComponent](w.em, tower)
	if emp.TargetID != b {
		t.Errorf("Expected TargetID=%d, got %d", b, emp.TargetID)
	}
	if emp.LastAttackMs != 1000 {
		t.Errorf("Expected LastAttackMs=1000, got %d", emp.LastAttackMs)
	}

	attacks := w.events[event.AttackOccurred]
	if len(attacks) != 1 {
		t.Fatalf("Expected 1 AttackOccurred event, got %d", len(attacks))
	}
	data := attacks[0].Data.(event.AttackEvent)
	if data.TowerID != tower || data.TargetID != b || data.Damage != 10 {
		t.Errorf("Unexpected attack payload %+v", data)
	}
}

func TestCombatTieBreaksBySpawnOrder(t *testing.T) {
	w := newTestWorld(t)
	cs := newTestCombat(w)
	w.addTower(0, 0, 50, 1.0, 10, 0)

	first := w.addUnit(30, 10, 40, nil, 2)
	second := w.addUnit(20, 10, 40, nil, 2)

	// 顺序打乱也应选择 ID 较小的单位
	cs.Update(1000, []ecs.EntityID{second, first})
	if w.health(t, first) != 30 {
		t.Errorf("Expected earliest unit to be hit, health=%d", w.health(t, first))
	}
	if w.health(t, second) != 40 {
		t.Errorf("Later unit should be untouched, health=%d", w.health(t, second))
	}
}

func TestCombatRangeIsInclusive(t *testing.T) {
	w := newTestWorld(t)
	cs := newTestCombat(w)
	w.addTower(0, 0, 50, 1.0, 10, 0)

	edge := w.addUnit(60, 10, 100, nil, 2)    // 距离正好 50
	outside := w.addUnit(10, 61, 100, nil, 2) // 距离 51

	cs.Update(1000, []ecs.EntityID{outside, edge})
	if w.health(t, edge) != 90 {
		t.Errorf("Unit exactly at range should be hit, health=%d", w.health(t, edge))
	}
	if w.health(t, outside) != 100 {
		t.Error("Unit outside range should not be hit")
	}
}

// TestCombatRespectsCooldown 任意 tick 序列中两次攻击间隔不小于 1000/A 毫秒
func TestCombatRespectsCooldown(t *testing.T) {
	tests := []struct {
		name string
		aps  float64
	}{
		{"每秒1次", 1.0},
		{"每秒2次", 2.0},
		{"每2秒1次", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			cs := newTestCombat(w)
			w.addTower(0, 0, 50, tt.aps, 1, 0)
			target := w.addUnit(20, 10, 1_000_000, nil, 2)

			var attackTimes []int64
			w.dispatcher.SubscribeFunc(event.AttackOccurred, func(e event.Event) {
				attackTimes = append(attackTimes, e.Data.(event.AttackEvent).AtMs)
			})

			// 不规则的 tick 间隔
			steps := []int64{16, 17, 17, 5, 40, 16, 300, 1, 16, 17}
			now := int64(0)
			for i := 0; i < 600; i++ {
				now += steps[i%len(steps)]
				cs.Update(now, []ecs.EntityID{target})
			}

			if len(attackTimes) < 2 {
				t.Fatalf("Expected several attacks, got %d", len(attackTimes))
			}
			interval := 1000.0 / tt.aps
			if float64(attackTimes[0]) < interval {
				t.Errorf("First attack at %dms is earlier than one interval after placement", attackTimes[0])
			}
			for i := 1; i < len(attackTimes); i++ {
				if gap := float64(attackTimes[i] - attackTimes[i-1]); gap < interval {
					t.Fatalf("Attacks %d and %d only %gms apart (interval %gms)", i-1, i, gap, interval)
				}
			}
		})
	}
}

func TestCombatNoTargetClearsTarget(t *testing.T) {
	w := newTestWorld(t)
	cs := newTestCombat(w)
	tower := w.addTower(0, 0, 50, 1.0, 10, 0)
	unit := w.addUnit(20, 10, 100, nil, 2)

	cs.Update(1000, []ecs.EntityID{unit})
	emp, _ := ecs.GetComponent[*components.EmplacementComponent](w.em, tower)
	if emp.TargetID != unit {
		t.Fatalf("Expected target %d, got %d", unit, emp.TargetID)
	}

	// 单位离开射程
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, unit)
	pos.X = 500

	cs.Update(1100, []ecs.EntityID{unit})
	if emp.TargetID != 0 {
		t.Errorf("TargetID should be cleared when nothing is in range, got %d", emp.TargetID)
	}
	if emp.LastAttackMs != 1000 {
		t.Errorf("Cooldown should not reset without an attack, got %d", emp.LastAttackMs)
	}
}

func TestCombatIgnoresInvisibleAndDefeated(t *testing.T) {
	w := newTestWorld(t)
	cs := newTestCombat(w)
	w.addTower(0, 0, 50, 1.0, 10, 0)

	dead := w.addUnit(20, 10, 5, nil, 2)
	w.damage.TakeDamage(dead, 5)
	hidden := w.addUnit(20, 10, 5, nil, 2)
	w.unit(t, hidden).Visible = false
	alive := w.addUnit(30, 10, 100, nil, 2)

	cs.Update(1000, []ecs.EntityID{dead, hidden, alive})
	if w.health(t, alive) != 90 {
		t.Errorf("Expected visible live unit to be hit, health=%d", w.health(t, alive))
	}
	if w.health(t, hidden) != 5 {
		t.Error("Invisible unit should not be targeted")
	}
}

func TestCombatKillClearsTarget(t *testing.T) {
	w := newTestWorld(t)
	cs := newTestCombat(w)
	tower := w.addTower(0, 0, 50, 1.0, 50, 0)
	unit := w.addUnit(20, 10, 50, nil, 2)

	cs.Update(1000, []ecs.EntityID{unit})

	emp, _ := ecs.GetComponent[*components.EmplacementComponent](w.em, tower)
	if emp.TargetID != 0 {
		t.Errorf("Killed target should be cleared, got %d", emp.TargetID)
	}
	if w.economy.GetKills() != 1 {
		t.Errorf("Expected 1 kill, got %d", w.economy.GetKills())
	}
}
