package entities

import (
	"time"

	"github.com/Tombarr/pacman-kaios/internal/timer"
)

type PacmanMode int

const (
	PacmanNormal PacmanMode = iota
	PacmanPower
)

func (m PacmanMode) String() string {
	if m == PacmanPower {
		return "power"
	}
	return "normal"
}

type Pacman struct {
	Movable
	Mode PacmanMode

	alive   bool
	started bool
	spawnX  float64
	spawnY  float64

	sched         *timer.Scheduler
	deathDuration time.Duration
	power         *timer.Task
	powerTotal    time.Duration
	respawn       *timer.Task

	afterStart func()
	onRespawn  func()
}

// NewPacman places pacman on its spawn. Power mode and the respawn delay
// run on sched.
func NewPacman(x, y float64, tileSize int, speed float64, sched *timer.Scheduler, deathDuration time.Duration) *Pacman {
	return &Pacman{
		Movable:       newMovable(x, y, tileSize, speed),
		alive:         true,
		spawnX:        x,
		spawnY:        y,
		sched:         sched,
		deathDuration: deathDuration,
	}
}

func (p *Pacman) Alive() bool { return p.alive }

// Started reports whether pacman got its first directional input since
// the last spawn.
func (p *Pacman) Started() bool { return p.started }

// AfterStart registers the hook fired on the first directional input after
// each spawn.
func (p *Pacman) AfterStart(cb func()) {
	p.afterStart = cb
}

// OnRespawn registers the hook fired when pacman is back after a death.
func (p *Pacman) OnRespawn(cb func()) {
	p.onRespawn = cb
}

// OnControls buffers the intended direction until it can be taken.
func (p *Pacman) OnControls(d Direction) {
	if !p.alive || d == DirNone {
		return
	}
	p.Turning = d
	if !p.started {
		p.started = true
		if p.afterStart != nil {
			p.afterStart()
		}
	}
}

// EnablePowerMode switches to power mode, calls onStart right away and
// onEnd once d has elapsed. Eating another pill restarts the countdown.
func (p *Pacman) EnablePowerMode(d time.Duration, onStart, onEnd func()) {
	p.power.Cancel()
	p.Mode = PacmanPower
	p.powerTotal = d
	if onStart != nil {
		onStart()
	}
	p.power = p.sched.After(d, func() {
		p.Mode = PacmanNormal
		p.power = nil
		if onEnd != nil {
			onEnd()
		}
	})
}

// EndPowerMode drops power mode without running its end callback.
func (p *Pacman) EndPowerMode() {
	p.power.Cancel()
	p.power = nil
	p.Mode = PacmanNormal
}

// PowerRemaining returns the power time left, 0 outside power mode.
func (p *Pacman) PowerRemaining() time.Duration {
	return p.power.Remaining()
}

// PowerTotal returns the duration of the current or last power mode.
func (p *Pacman) PowerTotal() time.Duration {
	return p.powerTotal
}

// Die stops pacman and schedules the respawn after the death animation.
func (p *Pacman) Die() {
	if !p.alive {
		return
	}
	p.alive = false
	p.Stop()
	p.power.Cancel()
	p.power = nil
	p.Mode = PacmanNormal
	p.respawn = p.sched.After(p.deathDuration, p.Respawn)
}

// Dying reports whether the death animation is playing.
func (p *Pacman) Dying() bool {
	return !p.alive && p.respawn.Pending()
}

// Respawn puts pacman back on its spawn, waiting for the first input.
func (p *Pacman) Respawn() {
	p.respawn.Cancel()
	p.respawn = nil
	p.alive = true
	p.started = false
	p.Mode = PacmanNormal
	p.X, p.Y = p.spawnX, p.spawnY
	p.Stop()
	p.ClearArrival()
	if p.onRespawn != nil {
		p.onRespawn()
	}
}

func (p *Pacman) UpdatePosition(w Walls, dt float64) {
	if !p.alive {
		return
	}
	p.Movable.UpdatePosition(w, dt)
}
