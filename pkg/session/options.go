package session

import (
	"math/rand"
	"time"

	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/systems"
)

// Option 配置 Session 的可选协作者
type Option func(*Session)

// WithRand 使用指定随机源（路径、波次规模、单位类型）
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSleep 替换波次之间的阻塞停顿，测试中传入空函数
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Session) { s.sleep = sleep }
}

// WithEffectTracker 设置表现层的效果追踪器（死亡粒子未结束前单位不移除）
func WithEffectTracker(tracker systems.EffectTracker) Option {
	return func(s *Session) { s.tracker = tracker }
}

// WithHighScores 游戏结束时把最终金币提交给最高分管理器
func WithHighScores(hm *state.HighScoreManager) Option {
	return func(s *Session) { s.highScores = hm }
}

// WithDispatcher 使用外部创建的分发器，便于在 New 之前订阅 WaveStarted
func WithDispatcher(d *event.Dispatcher) Option {
	return func(s *Session) { s.dispatcher = d }
}

// WithFixedWaves 每波固定单位数量和生成间隔，不再随机
// 用于测试和无界面模拟
func WithFixedWaves(count int, intervalMs int64) Option {
	return func(s *Session) {
		s.fixedCount = count
		s.fixedIntervalMs = intervalMs
	}
}
