package tui

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager 终端版的音效播放器，实现 state.SoundPlayer
// 所有音效叠加到同一个 Mixer 上，由 beep 的 speaker 协程播放
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a new sound manager. volume is clamped to [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
	}
}

// Initialize sets up the speaker. Failure is non-fatal: PlaySound then returns false.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// PlaySound 播放 state.SoundTones 中的一个音效
func (sm *SoundManager) PlaySound(soundID string) bool {
	spec, ok := state.SoundTones[soundID]
	if !ok {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.volume <= 0 {
		return false
	}
	streamer, err := toneStreamer(spec, sampleRate, sm.volume)
	if err != nil {
		return false
	}

	// mixer 在 speaker 协程中读取
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// toneStreamer 有限长度的正弦音，增益为 spec.Gain * volume
func toneStreamer(spec state.ToneSpec, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, spec.Frequency)
	if err != nil {
		return nil, err
	}
	duration := time.Duration(spec.DurationMs) * time.Millisecond
	return newVolume(beep.Take(rate.N(duration), tone), spec.Gain*volume), nil
}

// newVolume math.Log2(0) 为 -Inf，音量为 0 时直接静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
