// Package session 把模拟核心的各个系统组装成一局游戏
//
// 每个 tick 的顺序固定：生成 -> 移动 -> 攻击 -> 移除 -> 游戏结束/波次完成检查。
// 表现层通过 Snapshot 读取状态，通过 PlaceEmplacement/RemoveEmplacement 输入，
// 通过 Dispatcher 订阅事件。
package session

import (
	"log"
	"math/rand"
	"time"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/systems"
	"github.com/Grazulex/Tower/pkg/types"
)

// Session 一局游戏
// 不是并发安全的，所有方法都应在游戏循环的 goroutine 中调用
type Session struct {
	catalog    *config.Catalog
	em         *ecs.EntityManager
	dispatcher *event.Dispatcher
	economy    *state.EconomyState

	board     *systems.BoardSystem
	damage    *systems.DamageSystem
	movement  *systems.MovementSystem
	combat    *systems.CombatSystem
	scheduler *systems.WaveScheduler

	tracker    systems.EffectTracker
	highScores *state.HighScoreManager
	rng        *rand.Rand
	sleep      func(time.Duration)

	fixedCount      int
	fixedIntervalMs int64

	nowMs           int64
	gameOverHandled bool
}

// New 创建一局新游戏：经济状态、棋盘、第 1 波路径和调度器
func New(catalog *config.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog: catalog,
		em:      ecs.NewEntityManager(),
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatcher == nil {
		s.dispatcher = event.NewDispatcher()
	}

	s.economy = state.NewEconomyState(catalog.Economy)
	s.board = systems.NewBoardSystem(s.em, catalog, s.economy, s.dispatcher)
	s.damage = systems.NewDamageSystem(s.em, s.economy, s.dispatcher)
	s.movement = systems.NewMovementSystem(s.em, s.economy, s.dispatcher)
	s.combat = systems.NewCombatSystem(s.em, s.damage, s.dispatcher, float64(catalog.Board.CellSize))

	s.startWave()
	return s
}

// Tick 推进一个 tick
// 游戏结束后调用是无操作，直到 Reset
func (s *Session) Tick(nowMs int64) {
	if s.economy.IsGameOver() {
		return
	}
	s.nowMs = nowMs

	s.scheduler.Tick(nowMs)

	active := s.scheduler.ActiveUnits()
	s.movement.Update(active)
	s.combat.Update(nowMs, active)

	s.scheduler.RemoveFinished(s.tracker)
	s.em.RemoveMarkedEntities()

	if s.economy.IsGameOver() {
		s.handleGameOver()
		return
	}
	if s.scheduler.IsWaveComplete() {
		s.completeWave()
	}
}

// PlaceEmplacement 在格子上建造防御塔
// 越界、路径格子、已占用或金币不足时返回 false，状态不变
func (s *Session) PlaceEmplacement(row, col int, category types.TowerCategory) bool {
	if s.economy.IsGameOver() {
		return false
	}
	_, ok := s.board.PlaceEmplacement(row, col, category, s.nowMs)
	return ok
}

// RemoveEmplacement 拆除格子上的防御塔
func (s *Session) RemoveEmplacement(row, col int) bool {
	if s.economy.IsGameOver() {
		return false
	}
	if !s.board.RemoveEmplacement(row, col) {
		return false
	}
	s.em.RemoveMarkedEntities()
	return true
}

// Reset 重新开始：恢复初始经济状态，新路径、空棋盘、第 1 波
func (s *Session) Reset(nowMs int64) {
	log.Printf("[Session] Reset at %dms", nowMs)
	s.scheduler.Clear()
	s.economy.ResetSession()
	s.nowMs = nowMs
	s.gameOverHandled = false
	s.startWave()
}

// completeWave 波次结束：停顿、换路径、清空棋盘、进入下一波并发放奖励
func (s *Session) completeWave() {
	wave := s.economy.GetWave()
	s.economy.SetWaveComplete(true)
	bonus := s.economy.GetLives() * s.catalog.Economy.WaveClearBonusPerLife

	log.Printf("[Session] Wave %d complete (lives=%d, bonus=%d)", wave, s.economy.GetLives(), bonus)
	s.dispatcher.Dispatch(event.Event{
		Type: event.WaveCompleted,
		Data: event.WaveEvent{Wave: wave, Bonus: bonus},
	})

	// 阻塞停顿，期间不处理输入
	if pause := s.catalog.Waves.PauseMs; pause > 0 && s.sleep != nil {
		s.sleep(time.Duration(pause) * time.Millisecond)
	}

	s.economy.AdvanceWave()
	s.economy.Earn(bonus)
	s.startWave()
}

// startWave 为当前波次生成新路径、重置棋盘并创建调度器
func (s *Session) startWave() {
	path := systems.GeneratePath(s.catalog.Board.Cols(), s.catalog.Board.Rows(), s.rng)
	s.board.Reset(path)
	s.em.RemoveMarkedEntities()

	wave := s.economy.GetWave()
	if s.fixedCount > 0 {
		s.scheduler = systems.NewFixedWaveScheduler(s.em, s.catalog, wave, path, s.fixedCount, s.fixedIntervalMs, s.rng, s.dispatcher)
	} else {
		s.scheduler = systems.NewWaveScheduler(s.em, s.catalog, wave, path, s.rng, s.dispatcher)
	}

	s.dispatcher.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveEvent{
			Wave:       wave,
			UnitCount:  s.scheduler.TotalUnits(),
			IntervalMs: s.scheduler.SpawnIntervalMs(),
		},
	})
}

// handleGameOver 只执行一次：提交最高分并分发 GameOver
func (s *Session) handleGameOver() {
	if s.gameOverHandled {
		return
	}
	s.gameOverHandled = true

	final := s.economy.GetCurrency()
	newHigh := false
	player := ""
	if s.highScores != nil {
		if profiles := s.highScores.Profiles(); profiles != nil {
			player = profiles.CurrentUser()
		}
		newHigh = s.highScores.Submit(state.HighScoreData{
			Score: final,
			Wave:  s.economy.GetWave(),
			Kills: s.economy.GetKills(),
		})
	}

	log.Printf("[Session] Game over: wave=%d kills=%d score=%d newHigh=%v",
		s.economy.GetWave(), s.economy.GetKills(), final, newHigh)
	s.dispatcher.Dispatch(event.Event{
		Type: event.GameOver,
		Data: event.GameOverEvent{
			Wave:         s.economy.GetWave(),
			Kills:        s.economy.GetKills(),
			FinalScore:   final,
			NewHighScore: newHigh,
			Player:       player,
		},
	})
}

// Dispatcher 返回事件分发器，表现层在此订阅
func (s *Session) Dispatcher() *event.Dispatcher { return s.dispatcher }

// Catalog 返回数值表
func (s *Session) Catalog() *config.Catalog { return s.catalog }

// IsGameOver 是否已经游戏结束
func (s *Session) IsGameOver() bool { return s.economy.IsGameOver() }

// CanAfford 当前金币是否足够建造指定防御塔
func (s *Session) CanAfford(category types.TowerCategory) bool {
	stats, ok := s.catalog.GetTowerStats(category)
	return ok && s.economy.CanAfford(stats.Cost)
}

// HighScore 返回当前最高分，没有最高分管理器时为 0
func (s *Session) HighScore() int {
	if s.highScores == nil {
		return 0
	}
	return s.highScores.GetHighScore()
}

// SetEffectTracker 在创建后替换效果追踪器
func (s *Session) SetEffectTracker(tracker systems.EffectTracker) {
	s.tracker = tracker
}
