package term

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Tombarr/pacman-kaios/internal/game"
	"github.com/Tombarr/pacman-kaios/internal/sfx"
)

// Speaker plays the synthesized tones through the system speaker. Without
// audio it silently drops every call.
type Speaker struct {
	mu      sync.Mutex
	ready   bool
	muted   bool
	mixer   *beep.Mixer
	playing map[game.Sound]*beep.Ctrl
}

func NewSpeaker() *Speaker {
	sp := &Speaker{
		mixer:   &beep.Mixer{},
		playing: make(map[game.Sound]*beep.Ctrl),
	}
	if !sfx.Enabled() {
		return sp
	}
	if err := speaker.Init(sfx.SampleRate, sfx.SampleRate.N(100*time.Millisecond)); err != nil {
		log.Printf("audio: speaker: %v", err)
		return sp
	}
	speaker.Play(sp.mixer)
	sp.ready = true
	return sp
}

// Play starts s, cutting off an earlier play of the same sound.
func (sp *Speaker) Play(s game.Sound) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.ready || sp.muted {
		return
	}
	st, err := sfx.Tone(s)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	ctrl := &beep.Ctrl{Streamer: st}
	speaker.Lock()
	if old := sp.playing[s]; old != nil {
		old.Streamer = nil
	}
	sp.mixer.Add(ctrl)
	speaker.Unlock()
	sp.playing[s] = ctrl
}

func (sp *Speaker) Stop(s game.Sound) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.stop(s)
}

// stop detaches the streamer so the mixer drops it. Caller holds mu.
func (sp *Speaker) stop(s game.Sound) {
	ctrl := sp.playing[s]
	if ctrl == nil {
		return
	}
	delete(sp.playing, s)
	if !sp.ready {
		return
	}
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
}

func (sp *Speaker) SetMuted(muted bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.muted = muted
	if !muted {
		return
	}
	for s := range sp.playing {
		sp.stop(s)
	}
}

func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	sp.ready = false
}
