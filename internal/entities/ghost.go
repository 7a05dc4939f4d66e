package entities

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/Tombarr/pacman-kaios/internal/tilemap"
	"github.com/Tombarr/pacman-kaios/internal/timer"
)

type GhostName int

const (
	Blinky GhostName = iota
	Pinky
	Inky
	Clyde

	GhostCount
)

var ghostNames = [GhostCount]string{"blinky", "pinky", "inky", "clyde"}

func (n GhostName) String() string {
	if n < 0 || n >= GhostCount {
		return fmt.Sprintf("GhostName(%d)", int(n))
	}
	return ghostNames[n]
}

func ParseGhostName(s string) (GhostName, error) {
	for i, name := range ghostNames {
		if strings.EqualFold(s, name) {
			return GhostName(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ghost %q", s)
}

type GhostMode int

const (
	GhostHome GhostMode = iota
	GhostChase
	GhostScatter
	GhostFrightened
	GhostEaten
)

func (m GhostMode) String() string {
	switch m {
	case GhostHome:
		return "home"
	case GhostChase:
		return "chase"
	case GhostScatter:
		return "scatter"
	case GhostFrightened:
		return "frightened"
	case GhostEaten:
		return "eaten"
	default:
		return fmt.Sprintf("GhostMode(%d)", int(m))
	}
}

func ParseGhostMode(s string) (GhostMode, error) {
	for m := GhostHome; m <= GhostEaten; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown ghost mode %q", s)
}

// ghostTransitions lists the legal mode changes. Waiting ghosts are not in
// play, so only a ghost already out of the house can be frightened.
var ghostTransitions = map[GhostMode][]GhostMode{
	GhostHome:       {GhostChase, GhostScatter},
	GhostChase:      {GhostScatter, GhostFrightened, GhostHome},
	GhostScatter:    {GhostChase, GhostFrightened, GhostHome},
	GhostFrightened: {GhostChase, GhostScatter, GhostEaten, GhostHome},
	GhostEaten:      {GhostChase, GhostScatter, GhostHome},
}

func CanTransition(from, to GhostMode) bool {
	for _, m := range ghostTransitions[from] {
		if m == to {
			return true
		}
	}
	return false
}

// Wave is one step of the chase/scatter schedule. A zero Duration lasts
// until the level ends.
type Wave struct {
	Mode     GhostMode
	Duration time.Duration
}

type GhostConfig struct {
	TileSize        int
	Speed           float64
	FrightenedSpeed float64
	EatenSpeed      float64
	Corner          tilemap.Marker // scatter target
	Home            tilemap.Marker // where released ghosts appear and eaten ghosts return
	Waves           []Wave
	Roam            []tilemap.Marker // tiles a frightened ghost may wander to
	Rand            *rand.Rand
}

type Ghost struct {
	Movable
	Name   GhostName
	Target tilemap.Marker

	cfg      GhostConfig
	mode     GhostMode
	spawnX   float64
	spawnY   float64
	homeX    float64
	homeY    float64
	wave     int
	waveTime time.Duration
	blinking bool
	release  *timer.Task
}

func NewGhost(name GhostName, x, y float64, cfg GhostConfig) *Ghost {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(int64(name) + 1))
	}
	half := float64(cfg.TileSize) / 2
	g := &Ghost{
		Movable: newMovable(x, y, cfg.TileSize, cfg.Speed),
		Name:    name,
		cfg:     cfg,
		mode:    GhostHome,
		spawnX:  x,
		spawnY:  y,
		homeX:   float64(cfg.Home.X*cfg.TileSize) + half,
		homeY:   float64(cfg.Home.Y*cfg.TileSize) + half,
	}
	g.Target = g.Marker()
	return g
}

func (g *Ghost) Mode() GhostMode { return g.mode }

// Alive reports whether the ghost collides with pacman. Eaten ghosts are
// only eyes on their way home.
func (g *Ghost) Alive() bool { return g.mode != GhostEaten }

// Blinking reports whether a frightened ghost is about to recover.
func (g *Ghost) Blinking() bool { return g.blinking }

// WaveMode returns the chase/scatter mode the schedule is currently in.
func (g *Ghost) WaveMode() GhostMode {
	if len(g.cfg.Waves) == 0 {
		return GhostChase
	}
	return g.cfg.Waves[g.wave].Mode
}

func (g *Ghost) setMode(to GhostMode) bool {
	if !CanTransition(g.mode, to) {
		return false
	}
	from := g.mode
	g.mode = to
	switch to {
	case GhostFrightened:
		g.Speed = g.cfg.FrightenedSpeed
	case GhostEaten:
		g.Speed = g.cfg.EatenSpeed
	default:
		g.Speed = g.cfg.Speed
	}
	// Ghosts in play turn around whenever their mode changes, except when
	// leaving the eaten state: the eyes keep going the way they came.
	if from != GhostHome && from != GhostEaten && to != GhostHome && to != GhostEaten {
		g.Dir = g.Dir.Opposite()
	}
	if to == GhostFrightened {
		g.Target = g.Marker()
	}
	return true
}

// Release takes a waiting ghost out of the house into the current wave.
func (g *Ghost) Release() {
	if g.mode != GhostHome {
		return
	}
	g.release = nil
	g.X, g.Y = g.homeX, g.homeY
	g.Dir = DirLeft
	g.setMode(g.WaveMode())
}

// EscapeFromHome releases the ghost after delay.
func (g *Ghost) EscapeFromHome(s *timer.Scheduler, delay time.Duration) {
	g.release.Cancel()
	if delay <= 0 {
		g.Release()
		return
	}
	g.release = s.After(delay, g.Release)
}

// Tick advances the chase/scatter schedule. The schedule clock stops while
// the ghost is frightened, eaten or at home.
func (g *Ghost) Tick(dt time.Duration) {
	if g.mode != GhostChase && g.mode != GhostScatter {
		return
	}
	g.waveTime += dt
	for g.wave < len(g.cfg.Waves)-1 {
		d := g.cfg.Waves[g.wave].Duration
		if d <= 0 || g.waveTime < d {
			return
		}
		g.waveTime -= d
		g.wave++
		if next := g.cfg.Waves[g.wave].Mode; next != g.mode {
			g.setMode(next)
		}
	}
}

// EnableSensitiveMode frightens a ghost in play.
func (g *Ghost) EnableSensitiveMode() {
	switch g.mode {
	case GhostChase, GhostScatter:
		g.setMode(GhostFrightened)
	}
	if g.mode == GhostFrightened {
		g.blinking = false
	}
}

// DisableSensitiveMode returns a frightened ghost to the current wave.
func (g *Ghost) DisableSensitiveMode() {
	g.blinking = false
	if g.mode == GhostFrightened {
		g.setMode(g.WaveMode())
	}
}

// NormalSoon warns a frightened ghost that power mode is about to end.
func (g *Ghost) NormalSoon() {
	if g.mode == GhostFrightened {
		g.blinking = true
	}
}

// Die turns a frightened ghost into eyes heading home.
func (g *Ghost) Die() bool {
	if g.mode != GhostFrightened {
		return false
	}
	g.blinking = false
	g.setMode(GhostEaten)
	g.Target = g.cfg.Home
	return true
}

// Respawn puts the ghost back in the house with a fresh schedule.
func (g *Ghost) Respawn() {
	g.release.Cancel()
	g.release = nil
	if g.mode != GhostHome {
		g.setMode(GhostHome)
	}
	g.Speed = g.cfg.Speed
	g.X, g.Y = g.spawnX, g.spawnY
	g.Stop()
	g.ClearArrival()
	g.wave = 0
	g.waveTime = 0
	g.blinking = false
	g.Target = g.Marker()
}

// UpdateTarget recomputes the tile the ghost steers towards. blinky is the
// position of the blinky ghost, which inky's chase target pivots around.
func (g *Ghost) UpdateTarget(pacman tilemap.Marker, pacmanDir Direction, blinky tilemap.Marker) {
	switch g.mode {
	case GhostChase:
		g.Target = g.chaseTarget(pacman, pacmanDir, blinky)
	case GhostScatter:
		g.Target = g.cfg.Corner
	case GhostFrightened:
		if g.Marker() == g.Target && len(g.cfg.Roam) > 0 {
			g.Target = g.cfg.Roam[g.cfg.Rand.Intn(len(g.cfg.Roam))]
		}
	case GhostEaten:
		g.Target = g.cfg.Home
	}
}

func (g *Ghost) chaseTarget(pacman tilemap.Marker, dir Direction, blinky tilemap.Marker) tilemap.Marker {
	dx, dy := DirDelta(dir)
	switch g.Name {
	case Pinky:
		return pacman.Add(4*dx, 4*dy)
	case Inky:
		pivot := pacman.Add(2*dx, 2*dy)
		return pivot.Add(pivot.X-blinky.X, pivot.Y-blinky.Y)
	case Clyde:
		if dist2(g.Marker(), pacman) > 64 {
			return pacman
		}
		return g.cfg.Corner
	default:
		return pacman
	}
}

func dist2(a, b tilemap.Marker) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func (g *Ghost) UpdatePosition(w Walls, dt float64) {
	if g.mode == GhostHome {
		return
	}
	g.advance(w, dt, g.chooseDirection)
}

// chooseDirection runs on every tile centre: eyes that reached home rejoin
// the wave, then the open neighbour closest to the target wins. Reversing
// is only allowed at a dead end.
func (g *Ghost) chooseDirection(w Walls) {
	mk := g.Marker()
	if g.mode == GhostEaten && mk == g.cfg.Home {
		g.setMode(g.WaveMode())
	}
	if g.mode == GhostFrightened && mk == g.Target && len(g.cfg.Roam) > 0 {
		g.Target = g.cfg.Roam[g.cfg.Rand.Intn(len(g.cfg.Roam))]
	}
	best := DirNone
	bestDist := math.MaxInt
	for _, d := range ghostDirOrder {
		if g.Dir != DirNone && d == g.Dir.Opposite() {
			continue
		}
		if !g.CanGo(w, d) {
			continue
		}
		dx, dy := DirDelta(d)
		if dist := dist2(mk.Add(dx, dy), g.Target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == DirNone && g.CanGo(w, g.Dir.Opposite()) {
		best = g.Dir.Opposite()
	}
	g.Dir = best
}
