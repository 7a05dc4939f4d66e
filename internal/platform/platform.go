// Package platform defines the handset services the game touches: update
// checks, opening external pages, wake locks, the audio channel and the
// low-memory hint. Every call goes through Services, which treats a missing
// service or a failing one as a no-op.
package platform

import (
	"context"
	"fmt"
	"log"
	"os"
)

// EnvStoreURL sets the store page opened when an update is offered.
const EnvStoreURL = "PACMAN_STORE_URL"

// Wake lock topics.
const (
	TopicScreen = "screen"
	TopicCPU    = "cpu"
)

// Audio channels.
const (
	ChannelContent = "content"
	ChannelNormal  = "normal"
)

type UpdateChecker interface {
	// CheckForUpdate reports whether a newer build can be downloaded.
	CheckForUpdate(ctx context.Context) (bool, error)
}

type AppOpener interface {
	OpenURL(ctx context.Context, url string) error
}

type WakeLock interface {
	Unlock() error
}

type WakeLocker interface {
	RequestWakeLock(topic string) (WakeLock, error)
}

type AudioChannel interface {
	SetAudioChannel(name string) error
}

type MemoryHinter interface {
	MinimizeMemoryUsage() error
}

// Services bundles the collaborators. Any field may be nil.
type Services struct {
	Updates   UpdateChecker
	Opener    AppOpener
	WakeLocks WakeLocker
	Audio     AudioChannel
	Memory    MemoryHinter
	// StoreURL is the app's page in the store, usually its manifest URL.
	StoreURL string
}

// Guard runs fn, logging and swallowing any error or panic.
func Guard(op string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("platform: %s: panic: %v", op, r)
			ok = false
		}
	}()
	if err := fn(); err != nil {
		log.Printf("platform: %s: %v", op, err)
		return false
	}
	return true
}

// UpdateAvailable asks the update checker, returning false on any failure.
func (s Services) UpdateAvailable(ctx context.Context) bool {
	if s.Updates == nil {
		return false
	}
	var available bool
	Guard("update check", func() error {
		var err error
		available, err = s.Updates.CheckForUpdate(ctx)
		return err
	})
	return available
}

// CheckUpdateAsync runs the update check on its own goroutine and delivers
// the answer on the returned channel, which receives exactly one value.
func (s Services) CheckUpdateAsync(ctx context.Context) <-chan bool {
	ch := make(chan bool, 1)
	go func() {
		ch <- s.UpdateAvailable(ctx)
	}()
	return ch
}

func (s Services) OpenURL(ctx context.Context, url string) bool {
	if s.Opener == nil || url == "" {
		return false
	}
	return Guard("open "+url, func() error { return s.Opener.OpenURL(ctx, url) })
}

// GoToStore opens the app's store page so the player can install an update.
func (s Services) GoToStore(ctx context.Context) bool {
	return s.OpenURL(ctx, s.StoreURL)
}

// RequestWakeLock returns nil when no lock could be taken.
func (s Services) RequestWakeLock(topic string) WakeLock {
	if s.WakeLocks == nil {
		return nil
	}
	var lock WakeLock
	Guard("wake lock "+topic, func() error {
		var err error
		lock, err = s.WakeLocks.RequestWakeLock(topic)
		return err
	})
	return lock
}

// ReleaseWakeLock unlocks lock if it is non-nil.
func (s Services) ReleaseWakeLock(lock WakeLock) {
	if lock == nil {
		return
	}
	Guard("wake unlock", lock.Unlock)
}

func (s Services) SetAudioChannel(name string) bool {
	if s.Audio == nil {
		return false
	}
	return Guard("audio channel "+name, func() error { return s.Audio.SetAudioChannel(name) })
}

func (s Services) MinimizeMemoryUsage() {
	if s.Memory == nil {
		return
	}
	Guard("minimize memory", s.Memory.MinimizeMemoryUsage)
}

// Desktop returns the services available on a desktop host: wake locks and
// the audio channel are tracked in memory, updates are never offered and
// opened pages are only logged.
func Desktop() Services {
	return Services{
		Opener:    &desktopOpener{},
		WakeLocks: &desktopLocks{},
		Audio:     &desktopChannel{},
		StoreURL:  os.Getenv(EnvStoreURL),
	}
}

type desktopOpener struct {
	opened []string
}

func (o *desktopOpener) OpenURL(_ context.Context, url string) error {
	o.opened = append(o.opened, url)
	log.Printf("platform: open %s", url)
	return nil
}

type desktopLocks struct {
	held int
}

func (d *desktopLocks) RequestWakeLock(topic string) (WakeLock, error) {
	switch topic {
	case TopicScreen, TopicCPU:
	default:
		return nil, fmt.Errorf("unknown wake lock topic %q", topic)
	}
	d.held++
	return &desktopLock{owner: d}, nil
}

type desktopLock struct {
	owner    *desktopLocks
	released bool
}

func (l *desktopLock) Unlock() error {
	if l.released {
		return nil
	}
	l.released = true
	l.owner.held--
	return nil
}

type desktopChannel struct {
	current string
}

func (c *desktopChannel) SetAudioChannel(name string) error {
	c.current = name
	return nil
}
