package entities

import (
	"testing"
	"time"

	"github.com/Tombarr/pacman-kaios/internal/tilemap"
)

func TestAfterStartFiresOncePerSpawn(t *testing.T) {
	m := mustParse(t, hookMaze)
	p, _, _ := newTestPacman(t, m, tilemap.Marker{X: 1, Y: 1})
	starts := 0
	p.AfterStart(func() { starts++ })

	p.OnControls(DirNone)
	if starts != 0 || p.Started() {
		t.Fatalf("DirNone must not count as a start")
	}
	p.OnControls(DirRight)
	p.OnControls(DirLeft)
	if starts != 1 {
		t.Fatalf("afterStart fired %d times, want 1", starts)
	}
	p.Respawn()
	p.OnControls(DirRight)
	if starts != 2 {
		t.Fatalf("afterStart should fire again after a respawn, got %d", starts)
	}
}

func TestPowerModeTimer(t *testing.T) {
	m := mustParse(t, hookMaze)
	p, s, clock := newTestPacman(t, m, tilemap.Marker{X: 1, Y: 1})
	started, ended := 0, 0
	p.EnablePowerMode(6*time.Second, func() { started++ }, func() { ended++ })
	if started != 1 || p.Mode != PacmanPower {
		t.Fatalf("onStart should run immediately, mode=%v", p.Mode)
	}

	clock.Advance(4 * time.Second)
	s.Update()
	if got := p.PowerRemaining(); got != 2*time.Second {
		t.Fatalf("PowerRemaining = %v, want 2s", got)
	}

	// A second pill restarts the countdown.
	p.EnablePowerMode(6*time.Second, nil, func() { ended++ })
	clock.Advance(5 * time.Second)
	s.Update()
	if ended != 0 || p.Mode != PacmanPower {
		t.Fatalf("first timer should have been replaced, ended=%d", ended)
	}
	clock.Advance(time.Second)
	s.Update()
	if ended != 1 || p.Mode != PacmanNormal || p.PowerRemaining() != 0 {
		t.Fatalf("power mode should end once, ended=%d mode=%v", ended, p.Mode)
	}
}

func TestEndPowerModeSkipsCallback(t *testing.T) {
	m := mustParse(t, hookMaze)
	p, s, clock := newTestPacman(t, m, tilemap.Marker{X: 1, Y: 1})
	ended := 0
	p.EnablePowerMode(6*time.Second, nil, func() { ended++ })
	p.EndPowerMode()
	if p.Mode != PacmanNormal || p.PowerRemaining() != 0 {
		t.Fatalf("mode=%v remaining=%v", p.Mode, p.PowerRemaining())
	}
	clock.Advance(7 * time.Second)
	s.Update()
	if ended != 0 {
		t.Fatalf("end callback ran %d times", ended)
	}
	p.EndPowerMode()
}

func TestDieCancelsPowerAndRespawns(t *testing.T) {
	m := mustParse(t, hookMaze)
	p, s, clock := newTestPacman(t, m, tilemap.Marker{X: 1, Y: 1})
	ended := 0
	respawned := 0
	p.OnRespawn(func() { respawned++ })
	p.EnablePowerMode(6*time.Second, nil, func() { ended++ })
	p.OnControls(DirRight)
	p.Turn(m)
	p.UpdatePosition(m, 2)

	p.Die()
	p.Die()
	if p.Alive() || !p.Dying() || p.Mode != PacmanNormal {
		t.Fatalf("die should stop pacman and drop power mode")
	}
	x := p.X
	p.UpdatePosition(m, 1)
	if p.X != x {
		t.Fatalf("dead pacman moved")
	}

	clock.Advance(time.Second)
	s.Update()
	if !p.Alive() || respawned != 1 || p.Started() {
		t.Fatalf("pacman should respawn after the death animation, alive=%v respawned=%d", p.Alive(), respawned)
	}
	if p.X != 24 || p.Y != 24 || p.Dir != DirNone {
		t.Fatalf("respawn should return to spawn at rest, got (%v,%v) %v", p.X, p.Y, p.Dir)
	}
	clock.Advance(10 * time.Second)
	s.Update()
	if ended != 0 {
		t.Fatalf("cancelled power timer fired")
	}
}
