// Package term runs the game in a terminal with tcell, for play over ssh
// and for quick checks without a window.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Tombarr/pacman-kaios/internal/config"
	"github.com/Tombarr/pacman-kaios/internal/game"
	"github.com/Tombarr/pacman-kaios/internal/platform"
	"github.com/Tombarr/pacman-kaios/internal/storage"
)

const frameTime = time.Second / 60

type Options struct {
	Config   *config.Config
	Store    *storage.Store
	Services platform.Services
	// Sound defaults to the system speaker.
	Sound game.SoundPlayer
}

// Run plays until the player quits or ctx is cancelled. The screen must
// already be initialised; Run does not call Fini.
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	if opts.Sound == nil {
		sp := NewSpeaker()
		defer sp.Close()
		opts.Sound = sp
	}
	a, err := game.New(game.Options{Config: opts.Config, Sound: opts.Sound}, opts.Store, opts.Services)
	if err != nil {
		return err
	}
	a.Init(ctx)
	defer a.Close()

	screen.HideCursor()
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	tick := time.NewTicker(frameTime)
	defer tick.Stop()

	var in game.Input
	frame := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				merge(&in, e)
			}
		case <-tick.C:
			if err := a.Update(in); err != nil {
				return err
			}
			in = game.Input{}
			if a.ExitRequested() {
				return nil
			}
			frame++
			screen.Clear()
			render(screen, a, frame)
			screen.Show()
		}
	}
}
