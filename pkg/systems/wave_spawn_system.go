package systems

import (
	"log"
	"math/rand"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/entities"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/types"
)

// EffectTracker 由表现层实现，报告某个单位是否还有未播放完的效果（如死亡粒子）
// 有未完成效果的终态单位暂不移除
type EffectTracker interface {
	HasPendingEffects(id ecs.EntityID) bool
}

// WaveScheduler 单个波次的生成调度器
//
// 职责：
//   - 按固定间隔逐个生成单位，直到达到本波目标数量
//   - 持有本波所有在场单位（按生成顺序）
//   - 移除已结束且效果播放完毕的单位
//
// 每波创建一个新的调度器，波次结束后丢弃
type WaveScheduler struct {
	entityManager *ecs.EntityManager
	catalog       *config.Catalog
	dispatcher    *event.Dispatcher
	rng           *rand.Rand

	wave            int
	path            []types.Cell
	categories      []types.UnitCategory
	targetCount     int
	spawnIntervalMs int64
	spawned         int
	lastSpawnMs     int64
	active          []ecs.EntityID
}

// NewWaveScheduler 为第 wave 波创建调度器
// 单位数量和生成间隔按 catalog.Waves 的公式在区间内随机选取
//
// 参数：
//
//	em         - 实体管理器
//	catalog    - 数值表
//	wave       - 波次（从 1 开始）
//	path       - 本波路径
//	rng        - 随机源，nil 时使用全局源
//	dispatcher - 事件分发器，可为 nil
func NewWaveScheduler(em *ecs.EntityManager, catalog *config.Catalog, wave int, path []types.Cell, rng *rand.Rand, dispatcher *event.Dispatcher) *WaveScheduler {
	minCount, maxCount := catalog.Waves.CountRange(wave)
	minDelay, maxDelay := catalog.Waves.DelayRange(wave)

	s := &WaveScheduler{
		entityManager: em,
		catalog:       catalog,
		dispatcher:    dispatcher,
		rng:           rng,
		wave:          wave,
		path:          path,
		categories:    catalog.EnabledUnitCategories(),
	}
	s.targetCount = minCount + s.intn(maxCount-minCount+1)
	s.spawnIntervalMs = int64(minDelay + s.intn(maxDelay-minDelay+1))

	log.Printf("[WaveScheduler] Wave %d: %d units, interval %dms", wave, s.targetCount, s.spawnIntervalMs)
	return s
}

// NewFixedWaveScheduler 创建数量和间隔固定的调度器（测试和无界面模拟使用）
func NewFixedWaveScheduler(em *ecs.EntityManager, catalog *config.Catalog, wave int, path []types.Cell, targetCount int, intervalMs int64, rng *rand.Rand, dispatcher *event.Dispatcher) *WaveScheduler {
	if intervalMs < 1 {
		intervalMs = 1
	}
	return &WaveScheduler{
		entityManager:   em,
		catalog:         catalog,
		dispatcher:      dispatcher,
		rng:             rng,
		wave:            wave,
		path:            path,
		categories:      catalog.EnabledUnitCategories(),
		targetCount:     targetCount,
		spawnIntervalMs: intervalMs,
	}
}

func (s *WaveScheduler) intn(n int) int {
	if n <= 1 {
		return 0
	}
	if s.rng != nil {
		return s.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Tick 到达生成间隔时生成一个单位
// 每次调用最多生成一个
//
// 返回：
//
//	ecs.EntityID - 新生成的单位，未生成时为 0
func (s *WaveScheduler) Tick(nowMs int64) ecs.EntityID {
	if s.spawned >= s.targetCount {
		return 0
	}
	if nowMs-s.lastSpawnMs < s.spawnIntervalMs {
		return 0
	}
	if len(s.categories) == 0 {
		return 0
	}

	category := s.categories[s.intn(len(s.categories))]
	id, err := entities.NewUnitEntity(s.entityManager, s.catalog, category, s.path, s.rng)
	if err != nil {
		log.Printf("[WaveScheduler] Failed to spawn %s: %v", category, err)
		return 0
	}

	s.lastSpawnMs = nowMs
	s.spawned++
	s.active = append(s.active, id)

	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		s.dispatcher.Dispatch(event.Event{
			Type: event.UnitSpawned,
			Data: event.UnitEvent{UnitID: id, Category: category, X: pos.X, Y: pos.Y},
		})
	}
	return id
}

// RemoveFinished 移除已进入终态且效果播放完毕的单位
// tracker 为 nil 时终态单位立即移除
//
// 返回：
//
//	int - 本次移除的单位数量
func (s *WaveScheduler) RemoveFinished(tracker EffectTracker) int {
	removed := 0
	kept := s.active[:0]
	for _, id := range s.active {
		if s.isFinished(id, tracker) {
			s.entityManager.DestroyEntity(id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.active = kept
	return removed
}

func (s *WaveScheduler) isFinished(id ecs.EntityID, tracker EffectTracker) bool {
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
	if !ok {
		// 实体已被外部移除
		return true
	}
	if !unit.State.IsTerminal() {
		return false
	}
	return tracker == nil || !tracker.HasPendingEffects(id)
}

// Clear 销毁本波所有在场单位
func (s *WaveScheduler) Clear() {
	for _, id := range s.active {
		s.entityManager.DestroyEntity(id)
	}
	s.active = nil
}

// IsWaveComplete 所有单位都已生成且全部离场
func (s *WaveScheduler) IsWaveComplete() bool {
	return s.spawned >= s.targetCount && len(s.active) == 0
}

// ActiveUnits 在场单位（按生成顺序）
// 返回的切片在下一次 Tick/RemoveFinished 前有效，调用方不应修改
func (s *WaveScheduler) ActiveUnits() []ecs.EntityID {
	return s.active
}

// Wave 调度器所属波次
func (s *WaveScheduler) Wave() int { return s.wave }

// TotalUnits 本波单位总数
func (s *WaveScheduler) TotalUnits() int { return s.targetCount }

// SpawnedUnits 已生成的单位数
func (s *WaveScheduler) SpawnedUnits() int { return s.spawned }

// RemainingUnits 尚未生成的单位数加上仍在场的单位数
func (s *WaveScheduler) RemainingUnits() int {
	return s.targetCount - s.spawned + len(s.active)
}

// SpawnIntervalMs 本波生成间隔
func (s *WaveScheduler) SpawnIntervalMs() int64 { return s.spawnIntervalMs }
