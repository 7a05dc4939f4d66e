package entities

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Tombarr/pacman-kaios/internal/tilemap"
	"github.com/Tombarr/pacman-kaios/internal/timer"
)

var loopMaze = []string{
	"#######",
	"#     #",
	"# ### #",
	"#     #",
	"#######",
}

var testWaves = []Wave{
	{Mode: GhostScatter, Duration: 7 * time.Second},
	{Mode: GhostChase, Duration: 20 * time.Second},
	{Mode: GhostScatter},
}

func newTestGhost(t *testing.T, m *tilemap.TileMap, name GhostName) *Ghost {
	t.Helper()
	x, y := m.TileCenter(tilemap.Marker{X: 1, Y: 3})
	return NewGhost(name, x, y, GhostConfig{
		TileSize:        m.TileSize,
		Speed:           80,
		FrightenedSpeed: 40,
		EatenSpeed:      160,
		Corner:          tilemap.Marker{X: 6, Y: -1},
		Home:            tilemap.Marker{X: 3, Y: 1},
		Waves:           testWaves,
		Roam:            m.Reachable(tilemap.Marker{X: 1, Y: 1}),
		Rand:            rand.New(rand.NewSource(1)),
	})
}

func TestGhostTransitionTable(t *testing.T) {
	tests := []struct {
		from, to GhostMode
		want     bool
	}{
		{GhostHome, GhostChase, true},
		{GhostHome, GhostFrightened, false},
		{GhostChase, GhostScatter, true},
		{GhostChase, GhostEaten, false},
		{GhostFrightened, GhostEaten, true},
		{GhostEaten, GhostFrightened, false},
		{GhostEaten, GhostScatter, true},
	}
	for _, tc := range tests {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransition = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseNames(t *testing.T) {
	if n, err := ParseGhostName("Inky"); err != nil || n != Inky {
		t.Fatalf("ParseGhostName(Inky) = %v, %v", n, err)
	}
	if _, err := ParseGhostName("sue"); err == nil {
		t.Fatalf("expected error for unknown ghost")
	}
	if m, err := ParseGhostMode("SCATTER"); err != nil || m != GhostScatter {
		t.Fatalf("ParseGhostMode(SCATTER) = %v, %v", m, err)
	}
}

func TestReleaseFollowsWaveSchedule(t *testing.T) {
	m := mustParse(t, loopMaze)
	g := newTestGhost(t, m, Blinky)
	g.Tick(time.Hour)
	if g.Mode() != GhostHome {
		t.Fatalf("waiting ghost should not advance the schedule")
	}
	g.Release()
	if g.Mode() != GhostScatter || g.Marker() != (tilemap.Marker{X: 3, Y: 1}) {
		t.Fatalf("release should enter wave 0 at home exit, got %v at %+v", g.Mode(), g.Marker())
	}
	g.Tick(6 * time.Second)
	if g.Mode() != GhostScatter {
		t.Fatalf("still within first wave, got %v", g.Mode())
	}
	g.Tick(time.Second)
	if g.Mode() != GhostChase {
		t.Fatalf("expected chase after 7s, got %v", g.Mode())
	}
	g.Tick(20 * time.Second)
	g.Tick(time.Hour)
	if g.Mode() != GhostScatter {
		t.Fatalf("last wave should last forever, got %v", g.Mode())
	}
}

func TestSensitiveModeCycle(t *testing.T) {
	m := mustParse(t, loopMaze)
	g := newTestGhost(t, m, Pinky)

	g.EnableSensitiveMode()
	if g.Mode() != GhostHome {
		t.Fatalf("waiting ghost should stay home, got %v", g.Mode())
	}

	g.Release()
	g.EnableSensitiveMode()
	if g.Mode() != GhostFrightened || g.Speed != 40 {
		t.Fatalf("expected frightened at half speed, got %v %v", g.Mode(), g.Speed)
	}
	g.Tick(time.Hour)
	g.NormalSoon()
	if !g.Blinking() {
		t.Fatalf("NormalSoon should make a frightened ghost blink")
	}
	g.DisableSensitiveMode()
	if g.Mode() != GhostScatter || g.Blinking() || g.Speed != 80 {
		t.Fatalf("expected back to scatter, got %v blinking=%v", g.Mode(), g.Blinking())
	}
	if g.Die() {
		t.Fatalf("a scattering ghost cannot be eaten")
	}
}

func TestEatenGhostReturnsHome(t *testing.T) {
	m := mustParse(t, loopMaze)
	g := newTestGhost(t, m, Inky)
	g.Release()
	g.EnableSensitiveMode()
	g.X, g.Y = m.TileCenter(tilemap.Marker{X: 1, Y: 3})
	if !g.Die() || g.Alive() || g.Mode() != GhostEaten {
		t.Fatalf("frightened ghost should be eaten")
	}
	g.DisableSensitiveMode()
	if g.Mode() != GhostEaten {
		t.Fatalf("power end must not revive eyes, got %v", g.Mode())
	}
	for i := 0; i < 100 && g.Mode() == GhostEaten; i++ {
		g.UpdateTarget(tilemap.Marker{X: 5, Y: 3}, DirLeft, g.Marker())
		g.UpdatePosition(m, 0.05)
	}
	if g.Mode() != GhostScatter || !g.Alive() {
		t.Fatalf("eyes should rejoin the wave at home, mode=%v", g.Mode())
	}
}

func TestChaseTargets(t *testing.T) {
	m := mustParse(t, loopMaze)
	pac := tilemap.Marker{X: 10, Y: 10}
	blinky := tilemap.Marker{X: 8, Y: 10}
	tests := []struct {
		name GhostName
		want tilemap.Marker
	}{
		{Blinky, pac},
		{Pinky, tilemap.Marker{X: 10, Y: 6}},
		{Inky, tilemap.Marker{X: 12, Y: 6}},
		{Clyde, pac},
	}
	for _, tc := range tests {
		t.Run(tc.name.String(), func(t *testing.T) {
			g := newTestGhost(t, m, tc.name)
			g.Release()
			g.Tick(7 * time.Second)
			g.UpdateTarget(pac, DirUp, blinky)
			if g.Target != tc.want {
				t.Fatalf("target = %+v, want %+v", g.Target, tc.want)
			}
		})
	}

	g := newTestGhost(t, m, Clyde)
	g.Release()
	g.Tick(7 * time.Second)
	g.UpdateTarget(g.Marker().Add(1, 0), DirUp, blinky)
	if g.Target != (tilemap.Marker{X: 6, Y: -1}) {
		t.Fatalf("clyde close to pacman should head to his corner, got %+v", g.Target)
	}
}

func TestGhostNeverReversesInCorridor(t *testing.T) {
	m := mustParse(t, loopMaze)
	g := newTestGhost(t, m, Blinky)
	g.Release()
	g.Tick(7 * time.Second)
	// Target behind the ghost: it still has to go around the loop.
	for i := 0; i < 40; i++ {
		prev := g.Dir
		g.UpdateTarget(tilemap.Marker{X: 1, Y: 1}, DirNone, g.Marker())
		g.UpdatePosition(m, 0.05)
		if prev != DirNone && g.Dir == prev.Opposite() {
			t.Fatalf("ghost reversed from %v to %v at %+v", prev, g.Dir, g.Marker())
		}
	}
}

func TestEscapeFromHomeAndRespawn(t *testing.T) {
	m := mustParse(t, loopMaze)
	clock := timer.NewMockClock(time.Unix(0, 0))
	s := timer.New(clock)
	g := newTestGhost(t, m, Clyde)
	g.EscapeFromHome(s, 1200*time.Millisecond)

	clock.Advance(1199 * time.Millisecond)
	s.Update()
	if g.Mode() != GhostHome {
		t.Fatalf("released too early")
	}
	clock.Advance(time.Millisecond)
	s.Update()
	if g.Mode() != GhostScatter {
		t.Fatalf("expected release after 1200ms, got %v", g.Mode())
	}

	g.Respawn()
	if g.Mode() != GhostHome || g.Marker() != (tilemap.Marker{X: 1, Y: 3}) {
		t.Fatalf("respawn should park the ghost at its spawn, got %v at %+v", g.Mode(), g.Marker())
	}
	g.EscapeFromHome(s, time.Second)
	g.Respawn()
	clock.Advance(time.Hour)
	s.Update()
	if g.Mode() != GhostHome {
		t.Fatalf("respawn must cancel a pending release")
	}
}
