package game

import (
	"time"

	"github.com/Tombarr/pacman-kaios/internal/entities"
)

// normalSoonRatio is the share of power time left at which frightened ghosts
// start blinking.
const normalSoonRatio = 0.3

// Input is what the host read from its keys this frame.
type Input struct {
	Dir     entities.Direction
	Confirm bool // enter or space, on press
	Mute    bool // soft key, on press
	Back    bool // back or escape, on press
	Store   bool // opens the store page when an update is offered
}

// Tick advances the session by one frame. Timers run first so their
// callbacks land between frames, then the fixed pipeline runs: walls,
// overlaps, ghosts, the power warning, pacman, controls.
func (s *Session) Tick(in Input) {
	s.sched.Update()
	elapsed := s.sched.Elapsed()
	step := min(elapsed-s.lastElapsed, maxStep)
	s.lastElapsed = elapsed

	if !s.active {
		s.stopAll()
		return
	}
	if s.sched.Paused() {
		return
	}
	dt := step.Seconds()

	s.collideWalls()
	s.checkOverlaps()
	if !s.active {
		return
	}

	for _, g := range s.ghosts {
		g.Tick(step)
		g.UpdatePosition(s.tileMap, dt)
	}
	s.updateTargets()

	if s.powerEndingSoon() {
		for _, g := range s.ghosts {
			g.NormalSoon()
		}
	}

	s.pacman.UpdatePosition(s.tileMap, dt)
	s.checkControls(in)
}

// collideWalls parks pacman when it sits on a tile centre facing a wall, so
// it rests until a new direction is taken. Ghosts pick their way out of dead
// ends in their own movement.
func (s *Session) collideWalls() {
	p := s.pacman
	if p.Dir != entities.DirNone && p.AtCenter() && !p.CanGo(s.tileMap, p.Dir) {
		p.Dir = entities.DirNone
	}
}

func (s *Session) updateTargets() {
	pm := s.pacman.Marker()
	blinky := s.ghosts[entities.Blinky].Marker()
	for _, g := range s.ghosts {
		g.UpdateTarget(pm, s.pacman.Dir, blinky)
	}
}

func (s *Session) powerEndingSoon() bool {
	left := s.pacman.PowerRemaining()
	total := s.pacman.PowerTotal()
	return left > 0 && float64(left) < float64(total)*normalSoonRatio
}

// checkControls turns the buffered direction into a turn. A frame without a
// direction keeps the buffer, so a tap before a corner is still honoured.
func (s *Session) checkControls(in Input) {
	if in.Dir != entities.DirNone {
		s.pacman.OnControls(in.Dir)
	}
	if s.pacman.Turning != entities.DirNone {
		s.pacman.Turn(s.tileMap)
	}
}

// PowerRemaining exposes the power-mode countdown for the HUD.
func (s *Session) PowerRemaining() time.Duration {
	return s.pacman.PowerRemaining()
}
