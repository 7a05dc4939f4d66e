// Package sfx synthesizes the fallback tones both hosts play when no sound
// file is available, and holds the shared audio switches.
package sfx

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/Tombarr/pacman-kaios/internal/game"
)

const SampleRate = beep.SampleRate(44100)

// Enabled reports whether audio should be opened at all. Audio is off unless
// PACMAN_ENABLE_AUDIO=1, and PACMAN_DISABLE_AUDIO=1 always wins.
func Enabled() bool {
	if os.Getenv("PACMAN_DISABLE_AUDIO") == "1" {
		return false
	}
	return os.Getenv("PACMAN_ENABLE_AUDIO") == "1"
}

type note struct {
	freq float64
	dur  time.Duration
}

var melodies = map[game.Sound][]note{
	game.SoundIntro:        {{494, 120 * time.Millisecond}, {988, 120 * time.Millisecond}, {740, 120 * time.Millisecond}, {622, 240 * time.Millisecond}},
	game.SoundMunch:        {{880, 60 * time.Millisecond}},
	game.SoundFruit:        {{1047, 80 * time.Millisecond}, {1319, 120 * time.Millisecond}},
	game.SoundIntermission: {{330, 150 * time.Millisecond}, {392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {392, 150 * time.Millisecond}},
	game.SoundRegenerate:   {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 150 * time.Millisecond}},
	game.SoundDeath:        {{440, 120 * time.Millisecond}, {370, 120 * time.Millisecond}, {311, 120 * time.Millisecond}, {220, 250 * time.Millisecond}},
	game.SoundOver:         {{262, 200 * time.Millisecond}, {196, 200 * time.Millisecond}, {131, 400 * time.Millisecond}},
	game.SoundWin:          {{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 120 * time.Millisecond}, {1047, 300 * time.Millisecond}},
}

// Duration is the length of the synthesized tone for s.
func Duration(s game.Sound) time.Duration {
	var d time.Duration
	for _, n := range melodies[s] {
		d += n.dur
	}
	return d
}

// Tone returns a streamer playing the fallback melody for s at a quarter
// volume.
func Tone(s game.Sound) (beep.Streamer, error) {
	notes, ok := melodies[s]
	if !ok {
		return nil, fmt.Errorf("sfx: no tone for %v", s)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(SampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("sfx: %v: %w", s, err)
		}
		parts = append(parts, beep.Take(SampleRate.N(n.dur), sine))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -2}, nil
}

// PCM16 drains s into 16-bit little-endian stereo samples.
func PCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok {
			return out
		}
	}
}
