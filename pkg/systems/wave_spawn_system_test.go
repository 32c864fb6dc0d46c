package systems

import (
	"math/rand"
	"testing"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/types"
)

var testPath = []types.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}

// TestWaveCompletionSemantics 目标数量为 5 时的完成判定
func TestWaveCompletionSemantics(t *testing.T) {
	w := newTestWorld(t)
	s := NewFixedWaveScheduler(w.em, w.catalog, 1, testPath, 5, 100, rand.New(rand.NewSource(1)), w.dispatcher)

	if s.IsWaveComplete() {
		t.Fatal("Fresh scheduler should not be complete")
	}

	now := int64(0)
	for s.SpawnedUnits() < 5 {
		now += 100
		s.Tick(now)
	}
	if len(s.ActiveUnits()) != 5 {
		t.Fatalf("Expected 5 active units, got %d", len(s.ActiveUnits()))
	}
	if s.IsWaveComplete() {
		t.Fatal("Wave with live units should not be complete")
	}
	if s.RemainingUnits() != 5 {
		t.Errorf("Expected 5 remaining, got %d", s.RemainingUnits())
	}

	// 4 个单位结束，一个仍在场
	for _, id := range s.ActiveUnits()[:4] {
		w.damage.TakeDamage(id, 1_000_000)
	}
	s.RemoveFinished(nil)
	if s.IsWaveComplete() {
		t.Fatal("Wave should not complete while one unit is active")
	}
	if s.RemainingUnits() != 1 {
		t.Errorf("Expected 1 remaining, got %d", s.RemainingUnits())
	}

	last := s.ActiveUnits()[0]
	w.unit(t, last).State = types.UnitReachedEnd
	s.RemoveFinished(nil)
	if !s.IsWaveComplete() {
		t.Error("Wave should be complete once all 5 spawned units are gone")
	}

	// 额外的 tick 不会再生成
	if id := s.Tick(now + 10_000); id != 0 {
		t.Errorf("No units should spawn after target reached, got %d", id)
	}
	if n := len(w.events[event.UnitSpawned]); n != 5 {
		t.Errorf("Expected 5 UnitSpawned events, got %d", n)
	}
}

func TestWaveSpawnInterval(t *testing.T) {
	w := newTestWorld(t)
	s := NewFixedWaveScheduler(w.em, w.catalog, 1, testPath, 10, 500, nil, w.dispatcher)

	var spawnTimes []int64
	for now := int64(0); now <= 3000; now += 16 {
		if id := s.Tick(now); id != 0 {
			spawnTimes = append(spawnTimes, now)
		}
	}

	if len(spawnTimes) == 0 {
		t.Fatal("Expected some spawns")
	}
	if spawnTimes[0] < 500 {
		t.Errorf("First spawn at %d, expected >= 500", spawnTimes[0])
	}
	for i := 1; i < len(spawnTimes); i++ {
		if spawnTimes[i]-spawnTimes[i-1] < 500 {
			t.Errorf("Spawns %d and %d only %dms apart", i-1, i, spawnTimes[i]-spawnTimes[i-1])
		}
	}
}

func TestWaveSchedulerSizing(t *testing.T) {
	w := newTestWorld(t)
	rng := rand.New(rand.NewSource(42))

	for _, wave := range []int{1, 3, 20} {
		minCount, maxCount := w.catalog.Waves.CountRange(wave)
		minDelay, maxDelay := w.catalog.Waves.DelayRange(wave)
		for i := 0; i < 30; i++ {
			s := NewWaveScheduler(w.em, w.catalog, wave, testPath, rng, nil)
			if s.TotalUnits() < minCount || s.TotalUnits() > maxCount {
				t.Errorf("wave %d: count %d outside [%d, %d]", wave, s.TotalUnits(), minCount, maxCount)
			}
			if s.SpawnIntervalMs() < int64(minDelay) || s.SpawnIntervalMs() > int64(maxDelay) {
				t.Errorf("wave %d: interval %d outside [%d, %d]", wave, s.SpawnIntervalMs(), minDelay, maxDelay)
			}
			if s.SpawnIntervalMs() < 500 {
				t.Errorf("wave %d: interval %d below floor", wave, s.SpawnIntervalMs())
			}
		}
	}
}

func TestWaveRemoveFinishedWaitsForEffects(t *testing.T) {
	w := newTestWorld(t)
	s := NewFixedWaveScheduler(w.em, w.catalog, 1, testPath, 1, 1, nil, nil)
	id := s.Tick(10)
	w.damage.TakeDamage(id, 1_000_000)

	tracker := fakeTracker{id: true}
	if n := s.RemoveFinished(tracker); n != 0 {
		t.Fatalf("Unit with pending effects should linger, removed %d", n)
	}
	if s.IsWaveComplete() {
		t.Error("Wave should wait for lingering unit")
	}

	tracker[id] = false
	if n := s.RemoveFinished(tracker); n != 1 {
		t.Fatalf("Expected 1 removal, got %d", n)
	}
	w.em.RemoveMarkedEntities()
	if w.em.Exists(id) {
		t.Error("Removed unit should be destroyed")
	}
	if !s.IsWaveComplete() {
		t.Error("Wave should now be complete")
	}
}

func TestWaveSpawnUsesEnabledCategories(t *testing.T) {
	w := newTestWorld(t)
	off := false
	for _, name := range []string{"standard", "reinforced", "fortified"} {
		stats := w.catalog.Units.Categories[name]
		stats.Enabled = &off
		w.catalog.Units.Categories[name] = stats
	}

	s := NewFixedWaveScheduler(w.em, w.catalog, 1, testPath, 20, 1, rand.New(rand.NewSource(5)), nil)
	for now := int64(1); s.SpawnedUnits() < 20; now++ {
		s.Tick(now)
	}
	for _, id := range s.ActiveUnits() {
		unit, _ := ecs.GetComponent[*components.UnitComponent](w.em, id)
		if unit.Category != types.UnitLight {
			t.Fatalf("Expected only light units, got %s", unit.Category)
		}
	}
}

func TestWaveClear(t *testing.T) {
	w := newTestWorld(t)
	s := NewFixedWaveScheduler(w.em, w.catalog, 1, testPath, 3, 1, nil, nil)
	for now := int64(1); s.SpawnedUnits() < 3; now++ {
		s.Tick(now)
	}
	s.Clear()
	w.em.RemoveMarkedEntities()

	if len(s.ActiveUnits()) != 0 {
		t.Errorf("Expected no active units, got %d", len(s.ActiveUnits()))
	}
	if w.em.Count() != 0 {
		t.Errorf("Expected all unit entities destroyed, got %d", w.em.Count())
	}
}
