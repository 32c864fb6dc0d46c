package tui

import (
	"testing"
	"time"

	"github.com/Grazulex/Tower/pkg/game/state"
)

func TestToneStreamerLength(t *testing.T) {
	spec := state.SoundTones[state.SoundPlace]
	streamer, err := toneStreamer(spec, sampleRate, 1)
	if err != nil {
		t.Fatalf("toneStreamer failed: %v", err)
	}

	want := sampleRate.N(time.Duration(spec.DurationMs) * time.Millisecond)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
}

func TestPlaySoundWithoutSpeaker(t *testing.T) {
	sm := NewSoundManager(0.8)

	if sm.PlaySound(state.SoundPlace) {
		t.Error("PlaySound should fail before Initialize")
	}
	if sm.PlaySound("no_such_sound") {
		t.Error("Unknown sound should not play")
	}

	muted := NewSoundManager(-1)
	if muted.volume != 0 {
		t.Errorf("Volume should clamp to 0, got %f", muted.volume)
	}
}
