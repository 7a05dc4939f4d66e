package ui

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/Tombarr/pacman-kaios/internal/game"
	"github.com/Tombarr/pacman-kaios/internal/sfx"
)

// AudioManager plays the game's sound events through ebiten. Each sound is
// read from <dir>/<name>.wav, or synthesized when the file is missing.
type AudioManager struct {
	ctx     *audio.Context
	pcm     map[game.Sound][]byte
	players map[game.Sound]*audio.Player
	muted   bool
}

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

func getAudioContext() *audio.Context {
	if !sfx.Enabled() {
		return nil
	}
	audioOnce.Do(func() {
		audioCtx = audio.NewContext(int(sfx.SampleRate))
	})
	return audioCtx
}

func NewAudioManager(soundsDir string) *AudioManager {
	if soundsDir == "" {
		soundsDir = "assets/sounds"
	}
	am := &AudioManager{
		ctx:     getAudioContext(),
		pcm:     make(map[game.Sound][]byte),
		players: make(map[game.Sound]*audio.Player),
	}
	for _, s := range game.Sounds() {
		pcm, err := loadSound(soundsDir, s)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("audio: %v", err)
			}
			pcm = synthesize(s)
		}
		am.pcm[s] = pcm
	}
	return am
}

func loadSound(dir string, s game.Sound) ([]byte, error) {
	path := filepath.Join(dir, s.String()+".wav")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(int(sfx.SampleRate), bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return io.ReadAll(stream)
}

func synthesize(s game.Sound) []byte {
	st, err := sfx.Tone(s)
	if err != nil {
		log.Printf("audio: %v", err)
		return nil
	}
	return sfx.PCM16(st)
}

// player returns the cached player for s, creating it on first use.
func (am *AudioManager) player(s game.Sound) *audio.Player {
	if p, ok := am.players[s]; ok {
		return p
	}
	pcm := am.pcm[s]
	if len(pcm) == 0 {
		return nil
	}
	p := am.ctx.NewPlayerFromBytes(pcm)
	am.players[s] = p
	return p
}

// Play restarts s from the beginning.
func (am *AudioManager) Play(s game.Sound) {
	if am == nil || am.ctx == nil || am.muted {
		return
	}
	p := am.player(s)
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		log.Printf("audio: rewind %v: %v", s, err)
		return
	}
	p.Play()
}

func (am *AudioManager) Stop(s game.Sound) {
	if am == nil {
		return
	}
	if p, ok := am.players[s]; ok {
		p.Pause()
	}
}

// SetMuted silences everything currently playing when muting.
func (am *AudioManager) SetMuted(muted bool) {
	if am == nil {
		return
	}
	am.muted = muted
	if !muted {
		return
	}
	for _, p := range am.players {
		p.Pause()
	}
}
