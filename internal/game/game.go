package game

import (
	"context"
	"log"

	"github.com/Tombarr/pacman-kaios/internal/config"
	"github.com/Tombarr/pacman-kaios/internal/platform"
	"github.com/Tombarr/pacman-kaios/internal/storage"
)

// App is the top-level game: it owns the current session, the persisted
// preferences and the platform handles, and performs the restart
// transitions between sessions.
type App struct {
	opts     Options
	store    *storage.Store
	services platform.Services

	session   *Session
	muted     bool
	exit      bool
	highScore int

	screenLock platform.WakeLock
	cpuLock    platform.WakeLock

	ctx             context.Context
	updateCh        <-chan bool
	updateAvailable bool
}

// New creates the app and its first session. A nil store keeps
// preferences in memory.
func New(opts Options, store *storage.Store, services platform.Services) (*App, error) {
	opts.fill()
	if opts.Config == nil {
		return nil, config.ErrNoLevels
	}
	if store == nil {
		store = storage.Memory()
	}
	a := &App{
		opts:      opts,
		ctx:       context.Background(),
		store:     store,
		services:  services,
		muted:     store.GetBool(storage.KeyMute, true),
		highScore: store.HighScore(),
	}
	opts.Sound.SetMuted(a.muted)
	s, err := a.newSession(1, opts.Config.Lives, 0)
	if err != nil {
		return nil, err
	}
	a.session = s
	return a, nil
}

func (a *App) newSession(level, lives, score int) (*Session, error) {
	return NewSession(level, lives, score, a.opts)
}

// Init acquires the platform resources the game holds while running and
// starts the background update check.
func (a *App) Init(ctx context.Context) {
	a.ctx = ctx
	a.services.MinimizeMemoryUsage()
	a.services.SetAudioChannel(platform.ChannelContent)
	if a.screenLock == nil {
		a.screenLock = a.services.RequestWakeLock(platform.TopicScreen)
	}
	if a.cpuLock == nil {
		a.cpuLock = a.services.RequestWakeLock(platform.TopicCPU)
	}
	if a.updateCh == nil {
		a.updateCh = a.services.CheckUpdateAsync(ctx)
	}
}

// Close releases everything Init acquired. Safe to call more than once.
func (a *App) Close() {
	a.services.SetAudioChannel(platform.ChannelNormal)
	a.services.ReleaseWakeLock(a.screenLock)
	a.services.ReleaseWakeLock(a.cpuLock)
	a.screenLock, a.cpuLock = nil, nil
	a.session.Close()
}

func (a *App) Session() *Session { return a.session }
func (a *App) Muted() bool       { return a.muted }
func (a *App) HighScore() int    { return a.highScore }

// ExitRequested reports whether the player asked to leave. The host quits
// on the next frame.
func (a *App) ExitRequested() bool { return a.exit }

// UpdateAvailable reports the result of the background update check once it
// has arrived.
func (a *App) UpdateAvailable() bool {
	a.pollUpdate()
	return a.updateAvailable
}

// Update handles one frame of input.
func (a *App) Update(in Input) error {
	a.pollUpdate()
	if a.exit {
		return nil
	}
	if in.Back {
		a.exit = true
		a.Close()
		return nil
	}
	if in.Mute {
		a.toggleMute()
	}
	if in.Store {
		a.OpenStore()
	}

	s := a.session
	if !s.Active() {
		if in.Confirm {
			return a.restart()
		}
		s.Tick(in)
		return nil
	}
	if in.Confirm {
		a.togglePause()
	}
	s.Tick(in)
	a.recordScore()
	return nil
}

// OpenStore sends the player to the store page when an update is available
// and reports whether the page was opened.
func (a *App) OpenStore() bool {
	if !a.UpdateAvailable() {
		return false
	}
	return a.services.GoToStore(a.ctx)
}

func (a *App) pollUpdate() {
	if a.updateCh == nil {
		return
	}
	select {
	case v := <-a.updateCh:
		a.updateAvailable = v
		a.updateCh = nil
	default:
	}
}

// restart leaves an inactive session: a lost game or a won final level
// starts over, a completed level moves on with an extra life and the score
// carried over.
func (a *App) restart() error {
	old := a.session
	a.recordScore()
	level, lives, score := 1, a.opts.Config.Lives, 0
	if old.Lives > 0 && old.Level <= a.opts.Config.FinalLevel() {
		level, lives, score = old.Level, old.Lives+1, old.Score
	}
	old.Close()
	s, err := a.newSession(level, lives, score)
	if err != nil {
		return err
	}
	a.session = s
	return nil
}

func (a *App) togglePause() {
	if a.session.Paused() {
		a.session.Resume()
		return
	}
	a.session.Pause()
}

func (a *App) toggleMute() {
	a.muted = !a.muted
	a.opts.Sound.SetMuted(a.muted)
	if err := a.store.SetBool(storage.KeyMute, a.muted); err != nil {
		log.Printf("storage: save mute: %v", err)
	}
}

func (a *App) recordScore() {
	score := a.session.Score
	if score <= a.highScore {
		return
	}
	a.highScore = score
	if err := a.store.SaveHighScore(score); err != nil {
		log.Printf("storage: save high score: %v", err)
	}
}

// UpdateBanner is the boot screen hint shown when a newer build exists.
func UpdateBanner() string {
	return banner(msgUpdate)
}
