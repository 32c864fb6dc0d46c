package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// AudioManager 音频管理器
// 职责：
//   - 按 SoundTones 合成 PCM 数据并缓存
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 实现 SoundPlayer 接口
//
// context 为 nil 时所有播放静默失败
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager // 可为 nil
	pcm             map[string][]byte
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（进程内只能创建一个），可为 nil
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcm:             make(map[string][]byte),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	spec, ok := state.SoundTones[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return false
	}

	data, ok := am.pcm[soundID]
	if !ok {
		data = SynthesizeTone(spec, AudioSampleRate)
		am.pcm[soundID] = data
	}

	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(spec.Gain * am.getSoundVolume())
	player.Play()
	return true
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// PreloadSounds 预先合成所有音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds() {
	for id, spec := range state.SoundTones {
		if _, ok := am.pcm[id]; !ok {
			am.pcm[id] = SynthesizeTone(spec, AudioSampleRate)
		}
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.pcm))
}

// SynthesizeTone 生成 16 位小端立体声 PCM 正弦音
// 末尾线性淡出，避免爆音
func SynthesizeTone(spec state.ToneSpec, sampleRate int) []byte {
	samples := sampleRate * spec.DurationMs / 1000
	if samples <= 0 {
		return nil
	}
	buf := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		envelope := 1 - float64(i)/float64(samples)
		v := math.Sin(2*math.Pi*spec.Frequency*float64(i)/float64(sampleRate)) * envelope
		s := int16(v * math.MaxInt16 * 0.8)
		binary.LittleEndian.PutUint16(buf[4*i:], uint16(s))
		binary.LittleEndian.PutUint16(buf[4*i+2:], uint16(s))
	}
	return buf
}
