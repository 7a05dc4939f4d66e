// Package ui hosts the game in an ebiten window: boot and preload scenes,
// keyboard input, drawing and sound.
package ui

import (
	"context"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Tombarr/pacman-kaios/internal/assets"
	"github.com/Tombarr/pacman-kaios/internal/config"
	"github.com/Tombarr/pacman-kaios/internal/game"
	"github.com/Tombarr/pacman-kaios/internal/platform"
	"github.com/Tombarr/pacman-kaios/internal/storage"
	tm "github.com/Tombarr/pacman-kaios/internal/tilemap"
)

const (
	hudHeight = 16
	// share of the display the window may take
	screenFit = 0.75
)

type scene int

const (
	sceneBoot scene = iota
	scenePreload
	sceneTitle
	scenePlay
)

type Options struct {
	Config    *config.Config
	Store     *storage.Store
	Services  platform.Services
	SoundsDir string
}

// App implements ebiten.Game.
type App struct {
	opts  Options
	scene scene
	frame int

	nativeW, nativeH int
	scale            float64
	off              *ebiten.Image

	levels map[string]*tm.TileMap
	audio  *AudioManager
	game   *game.App
	cancel context.CancelFunc
}

// New runs the boot step: the first level fixes the board size and the
// window scale.
func New(opts Options) (*App, error) {
	if opts.Config == nil || len(opts.Config.Levels) == 0 {
		return nil, config.ErrNoLevels
	}
	first, err := assets.LoadLevel(opts.Config.Levels[0].Map)
	if err != nil {
		return nil, err
	}
	a := &App{
		opts:    opts,
		nativeW: first.PixelWidth(),
		nativeH: first.PixelHeight() + 2*hudHeight,
		levels:  map[string]*tm.TileMap{opts.Config.Levels[0].Map: first},
	}
	sw, sh := ebiten.ScreenSizeInFullscreen()
	a.scale = fitScale(sw, sh, a.nativeW, a.nativeH)
	return a, nil
}

// fitScale scales the board to fill screenFit of the display, or 1 when the
// display size is unknown.
func fitScale(screenW, screenH, nativeW, nativeH int) float64 {
	scaleW := float64(screenW) * screenFit / float64(nativeW)
	scaleH := float64(screenH) * screenFit / float64(nativeH)
	s := math.Min(scaleW, scaleH)
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1.0
	}
	return s
}

func (a *App) ScreenWidth() int {
	return int(float64(a.nativeW) * a.scale)
}

func (a *App) ScreenHeight() int {
	return int(float64(a.nativeH) * a.scale)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return a.ScreenWidth(), a.ScreenHeight()
}

// Game is nil until preload has finished.
func (a *App) Game() *game.App { return a.game }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	return a.step(readInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed))
}

func (a *App) step(in game.Input) error {
	a.frame++
	switch a.scene {
	case sceneBoot:
		// one frame of splash before the heavy loading
		a.scene = scenePreload
	case scenePreload:
		if err := a.preload(); err != nil {
			return err
		}
		a.scene = sceneTitle
	case sceneTitle:
		if in.Back {
			a.shutdown()
			return ebiten.Termination
		}
		if in.Store {
			a.game.OpenStore()
		}
		if in.Confirm {
			a.scene = scenePlay
		}
	case scenePlay:
		if err := a.game.Update(in); err != nil {
			return err
		}
		if a.game.ExitRequested() {
			a.shutdown()
			return ebiten.Termination
		}
	}
	return nil
}

// preload decodes every level the difficulty file names, prepares the
// sounds and starts the game.
func (a *App) preload() error {
	for _, p := range a.opts.Config.Levels {
		if _, ok := a.levels[p.Map]; ok {
			continue
		}
		m, err := assets.LoadLevel(p.Map)
		if err != nil {
			return fmt.Errorf("preload: %w", err)
		}
		a.levels[p.Map] = m
	}
	a.audio = NewAudioManager(a.opts.SoundsDir)

	g, err := game.New(game.Options{
		Config:    a.opts.Config,
		LoadLevel: a.level,
		Sound:     a.audio,
	}, a.opts.Store, a.opts.Services)
	if err != nil {
		return fmt.Errorf("preload: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.Init(ctx)
	a.game, a.cancel = g, cancel
	return nil
}

func (a *App) level(name string) (*tm.TileMap, error) {
	if m, ok := a.levels[name]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("level %q was not preloaded", name)
}

func (a *App) shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	a.game.Close()
}
