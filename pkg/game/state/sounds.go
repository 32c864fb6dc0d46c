package state

import (
	"log"

	"github.com/Grazulex/Tower/pkg/event"
)

// 音效ID
const (
	SoundAttackBalanced = "attack_balanced"
	SoundAttackRapid    = "attack_rapid"
	SoundAttackHeavy    = "attack_heavy"
	SoundUnitDefeated   = "unit_defeated"
	SoundLifeLost       = "life_lost"
	SoundPlace          = "place"
	SoundRemove         = "remove"
	SoundWaveComplete   = "wave_complete"
	SoundGameOver       = "game_over"
)

// SoundPlayer 播放一个音效
// 实现方在音频不可用时返回 false，不应报错
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// ToneSpec 合成音效的参数
// 游戏不带音频资源文件，所有音效都是短促的正弦音
type ToneSpec struct {
	Frequency  float64 // Hz
	DurationMs int
	Gain       float64 // 0.0 ~ 1.0，乘以设置中的音量
}

// SoundTones 音效ID -> 合成参数
var SoundTones = map[string]ToneSpec{
	SoundAttackBalanced: {Frequency: 880, DurationMs: 40, Gain: 0.25},
	SoundAttackRapid:    {Frequency: 1320, DurationMs: 25, Gain: 0.2},
	SoundAttackHeavy:    {Frequency: 220, DurationMs: 90, Gain: 0.4},
	SoundUnitDefeated:   {Frequency: 660, DurationMs: 80, Gain: 0.35},
	SoundLifeLost:       {Frequency: 150, DurationMs: 200, Gain: 0.5},
	SoundPlace:          {Frequency: 520, DurationMs: 60, Gain: 0.3},
	SoundRemove:         {Frequency: 330, DurationMs: 60, Gain: 0.3},
	SoundWaveComplete:   {Frequency: 1040, DurationMs: 250, Gain: 0.4},
	SoundGameOver:       {Frequency: 110, DurationMs: 600, Gain: 0.5},
}

// attackSounds 防御塔类型 -> 攻击音效
var attackSounds = map[string]string{
	"balanced": SoundAttackBalanced,
	"rapid":    SoundAttackRapid,
	"heavy":    SoundAttackHeavy,
}

// BindSoundEffects 把模拟事件映射为音效
// player 为 nil 时不订阅
func BindSoundEffects(dispatcher *event.Dispatcher, player SoundPlayer) {
	if dispatcher == nil || player == nil {
		return
	}

	play := func(id string) {
		if !player.PlaySound(id) {
			log.Printf("[Sounds] %s not played", id)
		}
	}

	dispatcher.SubscribeFunc(event.AttackOccurred, func(e event.Event) {
		if data, ok := e.Data.(event.AttackEvent); ok {
			if id, ok := attackSounds[data.Category.String()]; ok {
				play(id)
			}
		}
	})
	dispatcher.SubscribeFunc(event.UnitDefeated, func(event.Event) { play(SoundUnitDefeated) })
	dispatcher.SubscribeFunc(event.UnitReachedEnd, func(event.Event) { play(SoundLifeLost) })
	dispatcher.SubscribeFunc(event.EmplacementPlaced, func(event.Event) { play(SoundPlace) })
	dispatcher.SubscribeFunc(event.EmplacementRemoved, func(event.Event) { play(SoundRemove) })
	dispatcher.SubscribeFunc(event.WaveCompleted, func(event.Event) { play(SoundWaveComplete) })
	dispatcher.SubscribeFunc(event.GameOver, func(event.Event) { play(SoundGameOver) })
}
