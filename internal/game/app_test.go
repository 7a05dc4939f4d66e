package game

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tombarr/pacman-kaios/internal/config"
	"github.com/Tombarr/pacman-kaios/internal/entities"
	"github.com/Tombarr/pacman-kaios/internal/platform"
	"github.com/Tombarr/pacman-kaios/internal/storage"
	"github.com/Tombarr/pacman-kaios/internal/timer"
)

type countingLocks struct{ held int }

func (c *countingLocks) RequestWakeLock(string) (platform.WakeLock, error) {
	c.held++
	return &countedLock{c: c}, nil
}

type countedLock struct{ c *countingLocks }

func (l *countedLock) Unlock() error {
	l.c.held--
	return nil
}

type channelLog struct{ names []string }

func (c *channelLog) SetAudioChannel(name string) error {
	c.names = append(c.names, name)
	return nil
}

type updateReady bool

func (u updateReady) CheckForUpdate(context.Context) (bool, error) { return bool(u), nil }

type urlLog struct{ urls []string }

func (u *urlLog) OpenURL(_ context.Context, url string) error {
	u.urls = append(u.urls, url)
	return nil
}

// waitForUpdateCheck runs frames until the background update check reports.
func waitForUpdateCheck(t *testing.T, a *App) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for a.updateCh != nil && time.Now().Before(deadline) {
		if err := a.Update(Input{}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	if a.updateCh != nil {
		t.Fatalf("update result never arrived")
	}
}

func newTestApp(t *testing.T, h *harness, store *storage.Store, svc platform.Services) *App {
	t.Helper()
	a, err := New(h.opts, store, svc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestAppRestartTransitions(t *testing.T) {
	tests := []struct {
		name                 string
		level, lives, score  int
		wantLevel, wantLives int
		wantScore            int
	}{
		{name: "next level", level: 2, lives: 3, score: 50, wantLevel: 2, wantLives: 4, wantScore: 50},
		{name: "game over", level: 2, lives: 0, score: 50, wantLevel: 1, wantLives: 3, wantScore: 0},
		{name: "game completed", level: 4, lives: 2, score: 900, wantLevel: 1, wantLives: 3, wantScore: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, mustParse(t, oneDotMaze))
			a := newTestApp(t, h, nil, platform.Services{})
			old := a.Session()
			old.Level, old.Lives, old.Score = tc.level, tc.lives, tc.score
			old.active = false

			if err := a.Update(Input{}); err != nil {
				t.Fatalf("Update: %v", err)
			}
			if a.Session() != old {
				t.Fatalf("restart must wait for confirm")
			}
			if err := a.Update(Input{Confirm: true}); err != nil {
				t.Fatalf("Update: %v", err)
			}
			s := a.Session()
			if s == old || !s.Active() {
				t.Fatalf("expected a fresh active session")
			}
			if s.Level != tc.wantLevel || s.Lives != tc.wantLives || s.Score != tc.wantScore {
				t.Fatalf("got level=%d lives=%d score=%d", s.Level, s.Lives, s.Score)
			}
			if s.Multi != s.Profile().Multiplier {
				t.Fatalf("multiplier should start at the level base")
			}
		})
	}
}

func TestAppPlaysThroughALevel(t *testing.T) {
	h := newHarness(t, mustParse(t, oneDotMaze))
	a := newTestApp(t, h, nil, platform.Services{})
	for i := 0; i < 60 && a.Session().Active(); i++ {
		h.clock.Advance(frame)
		if err := a.Update(Input{Dir: entities.DirRight}); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if a.Session().Active() || a.HighScore() != 10 {
		t.Fatalf("active=%v high=%d", a.Session().Active(), a.HighScore())
	}
	if err := a.Update(Input{Confirm: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	s := a.Session()
	if s.Level != 2 || s.Lives != 4 || s.Score != 10 || s.Multi != 2 {
		t.Fatalf("level=%d lives=%d score=%d multi=%d", s.Level, s.Lives, s.Score, s.Multi)
	}
}

func TestAppStaleTimersDoNotLeak(t *testing.T) {
	h := newHarness(t, mustParse(t, oneDotMaze))
	a := newTestApp(t, h, nil, platform.Services{})
	old := a.Session()
	old.bonus(&Item{Kind: ItemBonus, Fruit: FruitCherry, alive: true})
	old.active = false
	if err := a.Update(Input{Confirm: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	s := a.Session()
	s.Multi = 7
	h.clock.Advance(5 * time.Second)
	if err := a.Update(Input{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if s.Multi != 7 {
		t.Fatalf("the old session's reset touched the new one: multi=%d", s.Multi)
	}
}

func TestAppPauseToggle(t *testing.T) {
	h := newHarness(t, mustParse(t, oneDotMaze))
	a := newTestApp(t, h, nil, platform.Services{})
	if err := a.Update(Input{Confirm: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !a.Session().Paused() || a.Session().Notification() != "PAUSED" {
		t.Fatalf("confirm while playing should pause")
	}
	if err := a.Update(Input{Confirm: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.Session().Paused() || a.Session().Notification() != "" {
		t.Fatalf("second confirm should resume")
	}
}

func TestAppMutePersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	h := newHarness(t, mustParse(t, oneDotMaze))
	a := newTestApp(t, h, storage.OpenFile(path), platform.Services{})
	if !a.Muted() || !h.sound.muted {
		t.Fatalf("sound should start muted")
	}
	if err := a.Update(Input{Mute: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.Muted() || h.sound.muted {
		t.Fatalf("mute toggle did not unmute")
	}
	again := newTestApp(t, h, storage.OpenFile(path), platform.Services{})
	if again.Muted() {
		t.Fatalf("mute preference was not persisted")
	}
}

func TestAppExitReleasesPlatform(t *testing.T) {
	locks := &countingLocks{}
	channels := &channelLog{}
	h := newHarness(t, mustParse(t, oneDotMaze))
	a := newTestApp(t, h, nil, platform.Services{WakeLocks: locks, Audio: channels})
	a.Init(context.Background())
	a.Init(context.Background())
	if locks.held != 2 {
		t.Fatalf("expected screen and cpu locks, held=%d", locks.held)
	}
	if err := a.Update(Input{Back: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !a.ExitRequested() || locks.held != 0 {
		t.Fatalf("exit=%v held=%d", a.ExitRequested(), locks.held)
	}
	if last := channels.names[len(channels.names)-1]; last != platform.ChannelNormal {
		t.Fatalf("audio channel left at %q", last)
	}
	a.Close()
	if locks.held != 0 {
		t.Fatalf("double close released twice: %d", locks.held)
	}
}

func TestAppUpdateCheck(t *testing.T) {
	h := newHarness(t, mustParse(t, oneDotMaze))
	a := newTestApp(t, h, nil, platform.Services{Updates: updateReady(true)})
	a.Init(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for !a.UpdateAvailable() && time.Now().Before(deadline) {
		if err := a.Update(Input{}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	if !a.UpdateAvailable() {
		t.Fatalf("update result never arrived")
	}
	if UpdateBanner() != "UPDATE AVAILABLE" {
		t.Fatalf("banner = %q", UpdateBanner())
	}
}

func TestAppOpensStoreWhenUpdateAvailable(t *testing.T) {
	const url = "app://pacman/manifest.webapp"
	tests := []struct {
		name  string
		ready bool
		want  []string
	}{
		{name: "update ready", ready: true, want: []string{url}},
		{name: "up to date", ready: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, mustParse(t, oneDotMaze))
			opened := &urlLog{}
			a := newTestApp(t, h, nil, platform.Services{Updates: updateReady(tc.ready), Opener: opened, StoreURL: url})
			a.Init(context.Background())
			waitForUpdateCheck(t, a)
			if err := a.Update(Input{Store: true}); err != nil {
				t.Fatalf("Update: %v", err)
			}
			if len(opened.urls) != len(tc.want) || (len(tc.want) > 0 && opened.urls[0] != tc.want[0]) {
				t.Fatalf("opened %v, want %v", opened.urls, tc.want)
			}
		})
	}
}

func TestAppStoreIgnoredBeforeUpdateCheck(t *testing.T) {
	h := newHarness(t, mustParse(t, oneDotMaze))
	opened := &urlLog{}
	a := newTestApp(t, h, nil, platform.Services{Updates: updateReady(true), Opener: opened, StoreURL: "app://pacman"})
	if a.OpenStore() {
		t.Fatalf("store opened before any update was found")
	}
	if len(opened.urls) != 0 {
		t.Fatalf("opened %v", opened.urls)
	}
}

func TestNewWithoutConfig(t *testing.T) {
	if _, err := New(Options{}, nil, platform.Services{}); err == nil {
		t.Fatalf("expected error without config")
	}
}

// Random play on the real level: score and lives never go negative and the
// pellet count never drops below zero.
func TestRandomPlayInvariants(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	clock := timer.NewMockClock(time.Unix(0, 0))
	rnd := rand.New(rand.NewSource(42))
	a, err := New(Options{Config: cfg, Clock: clock, Rand: rand.New(rand.NewSource(7))}, nil, platform.Services{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dirs := []entities.Direction{entities.DirUp, entities.DirDown, entities.DirLeft, entities.DirRight}
	var in Input
	for i := 0; i < 20000; i++ {
		if i%15 == 0 {
			in = Input{Dir: dirs[rnd.Intn(len(dirs))]}
		}
		step := in
		step.Confirm = rnd.Intn(400) == 0
		clock.Advance(frame)
		if err := a.Update(step); err != nil {
			t.Fatalf("Update: %v", err)
		}
		s := a.Session()
		if s.Lives < 0 || s.Score < 0 || s.PelletsLeft() < 0 {
			t.Fatalf("frame %d: lives=%d score=%d pellets=%d", i, s.Lives, s.Score, s.PelletsLeft())
		}
	}
}
