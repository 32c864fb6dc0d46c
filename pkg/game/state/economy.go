package state

import (
	"log"

	"github.com/Grazulex/Tower/pkg/config"
)

// EconomySnapshot 经济状态的只读副本，供界面绘制
type EconomySnapshot struct {
	Currency     int
	Lives        int
	Wave         int
	Kills        int
	WaveComplete bool
	GameOver     bool
}

// EconomyState 存储一局游戏的经济与进度状态
//
// 只能通过方法修改。由 session 显式持有并传给需要它的系统，不是全局单例。
// 游戏结束（生命归零）后状态不可逆，直到调用 ResetSession
type EconomyState struct {
	currency     int
	lives        int
	wave         int
	kills        int
	waveComplete bool
	gameOver     bool

	startingCurrency int
	startingLives    int
}

// NewEconomyState 按配置的初始值创建经济状态，波次从 1 开始
func NewEconomyState(cfg config.EconomyConfig) *EconomyState {
	e := &EconomyState{
		startingCurrency: cfg.StartingCurrency,
		startingLives:    cfg.StartingLives,
	}
	e.ResetSession()
	return e
}

// CanAfford 当前金币是否足够支付 amount
func (e *EconomyState) CanAfford(amount int) bool {
	return amount >= 0 && e.currency >= amount
}

// Spend 扣除金币，金币不足或金额为负时返回 false 且不做任何修改
func (e *EconomyState) Spend(amount int) bool {
	if amount < 0 {
		log.Printf("[EconomyState] Rejected negative spend: %d", amount)
		return false
	}
	if e.currency < amount {
		return false
	}
	e.currency -= amount
	return true
}

// Earn 增加金币，负数金额被忽略
func (e *EconomyState) Earn(amount int) {
	if amount < 0 {
		log.Printf("[EconomyState] Rejected negative earn: %d", amount)
		return
	}
	e.currency += amount
}

// LoseLife 扣除一条生命，生命归零时进入游戏结束状态
// 游戏结束后再调用不会产生负数生命
func (e *EconomyState) LoseLife() {
	if e.gameOver {
		return
	}
	e.lives--
	if e.lives <= 0 {
		e.lives = 0
		e.gameOver = true
		log.Printf("[EconomyState] Game over at wave %d (kills=%d, currency=%d)", e.wave, e.kills, e.currency)
	}
}

// RecordKill 记录一次击杀
func (e *EconomyState) RecordKill() {
	e.kills++
}

// SetWaveComplete 设置当前波次是否已清空
func (e *EconomyState) SetWaveComplete(complete bool) {
	e.waveComplete = complete
}

// AdvanceWave 进入下一波
// 金币和生命保留，清除波次完成标记
func (e *EconomyState) AdvanceWave() {
	e.wave++
	e.waveComplete = false
}

// ResetSession 恢复到一局开始时的状态
func (e *EconomyState) ResetSession() {
	e.currency = e.startingCurrency
	e.lives = e.startingLives
	e.wave = 1
	e.kills = 0
	e.waveComplete = false
	e.gameOver = false
}

// GetCurrency 返回当前金币
func (e *EconomyState) GetCurrency() int { return e.currency }

// GetLives 返回剩余生命
func (e *EconomyState) GetLives() int { return e.lives }

// GetWave 返回当前波次（从 1 开始）
func (e *EconomyState) GetWave() int { return e.wave }

// GetKills 返回本局击杀数
func (e *EconomyState) GetKills() int { return e.kills }

// IsWaveComplete 当前波次是否已清空
func (e *EconomyState) IsWaveComplete() bool { return e.waveComplete }

// IsGameOver 是否已经游戏结束
func (e *EconomyState) IsGameOver() bool { return e.gameOver }

// Snapshot 返回当前状态的副本
func (e *EconomyState) Snapshot() EconomySnapshot {
	return EconomySnapshot{
		Currency:     e.currency,
		Lives:        e.lives,
		Wave:         e.wave,
		Kills:        e.kills,
		WaveComplete: e.waveComplete,
		GameOver:     e.gameOver,
	}
}
