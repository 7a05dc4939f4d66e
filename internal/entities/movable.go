package entities

import (
	"math"

	"github.com/Tombarr/pacman-kaios/internal/tilemap"
)

const centerEpsilon = 1e-6

// Walls is the part of a level map that movement needs.
type Walls interface {
	IsWall(x, y int) bool
}

// Rect is an axis-aligned bounding box in pixels.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func RectAround(cx, cy, half float64) Rect {
	return Rect{MinX: cx - half, MinY: cy - half, MaxX: cx + half, MaxY: cy + half}
}

func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Movable is a grid-aligned walker. Position is the pixel centre of the
// body; turns are only taken on tile centres so the body never cuts corners.
type Movable struct {
	X, Y     float64
	Dir      Direction
	Turning  Direction
	Speed    float64 // pixels per second
	TileSize int
	Half     float64 // half the body size, for overlap checks

	moving  bool
	arrival tilemap.Marker
	arrived bool
}

func newMovable(x, y float64, tileSize int, speed float64) Movable {
	return Movable{
		X:        x,
		Y:        y,
		Speed:    speed,
		TileSize: tileSize,
		Half:     float64(tileSize)/2 - 2,
	}
}

// Marker returns the tile under the body centre.
func (m *Movable) Marker() tilemap.Marker {
	ts := float64(m.TileSize)
	return tilemap.Marker{X: int(math.Floor(m.X / ts)), Y: int(math.Floor(m.Y / ts))}
}

func (m *Movable) Bounds() Rect {
	return RectAround(m.X, m.Y, m.Half)
}

// Moving reports whether the last position update advanced the body.
func (m *Movable) Moving() bool {
	return m.moving
}

func (m *Movable) SetDirection(d Direction) {
	m.Dir = d
}

func (m *Movable) Stop() {
	m.Dir = DirNone
	m.Turning = DirNone
	m.moving = false
}

// Teleport moves the body keeping its direction. The arrival tile is
// remembered so the portal it lands on does not send it straight back.
func (m *Movable) Teleport(x, y float64) {
	m.X, m.Y = x, y
	m.arrival = m.Marker()
	m.arrived = true
}

// ArrivedAt reports whether the body was teleported onto at and has not
// left it since.
func (m *Movable) ArrivedAt(at tilemap.Marker) bool {
	return m.arrived && m.arrival == at
}

func (m *Movable) ClearArrival() {
	m.arrived = false
}

func (m *Movable) center() (float64, float64) {
	half := float64(m.TileSize) / 2
	mk := m.Marker()
	return float64(mk.X*m.TileSize) + half, float64(mk.Y*m.TileSize) + half
}

// AtCenter reports whether the body sits on a tile centre.
func (m *Movable) AtCenter() bool {
	cx, cy := m.center()
	return math.Abs(m.X-cx) < centerEpsilon && math.Abs(m.Y-cy) < centerEpsilon
}

func (m *Movable) snap() {
	m.X, m.Y = m.center()
}

// CanGo reports whether the tile next to the body in direction d is open.
func (m *Movable) CanGo(w Walls, d Direction) bool {
	if d == DirNone {
		return false
	}
	dx, dy := DirDelta(d)
	mk := m.Marker()
	return !w.IsWall(mk.X+dx, mk.Y+dy)
}

// Turn applies the pending direction if it is legal now. A reversal is
// always legal; other turns need a tile centre and an open tile ahead.
func (m *Movable) Turn(w Walls) bool {
	t := m.Turning
	switch {
	case t == DirNone:
		return false
	case t == m.Dir:
		m.Turning = DirNone
		return false
	case m.Dir != DirNone && t == m.Dir.Opposite():
		m.Dir = t
		m.Turning = DirNone
		return true
	case m.AtCenter() && m.CanGo(w, t):
		m.Dir = t
		m.Turning = DirNone
		return true
	}
	return false
}

func (m *Movable) commitTurn(w Walls) {
	if m.Turning != DirNone && m.Turning != m.Dir && m.CanGo(w, m.Turning) {
		m.Dir = m.Turning
		m.Turning = DirNone
	}
}

// UpdatePosition advances the body by Speed*dt seconds of travel.
func (m *Movable) UpdatePosition(w Walls, dt float64) {
	m.advance(w, dt, m.commitTurn)
}

// advance walks tile centre to tile centre. On every centre it reaches it
// calls decide, then halts if the tile ahead is a wall.
func (m *Movable) advance(w Walls, dt float64, decide func(Walls)) {
	m.moving = false
	remaining := m.Speed * dt
	for remaining > centerEpsilon {
		if m.AtCenter() {
			m.snap()
			decide(w)
			if !m.CanGo(w, m.Dir) {
				return
			}
		}
		if m.Dir == DirNone {
			return
		}
		step := math.Min(remaining, m.distToNextCenter())
		dx, dy := DirDelta(m.Dir)
		cx, cy := m.center()
		if dx != 0 {
			m.Y = cy
		} else {
			m.X = cx
		}
		m.X += float64(dx) * step
		m.Y += float64(dy) * step
		remaining -= step
		m.moving = true
	}
}

func (m *Movable) distToNextCenter() float64 {
	dx, dy := DirDelta(m.Dir)
	cx, cy := m.center()
	ahead := (cx-m.X)*float64(dx) + (cy-m.Y)*float64(dy)
	if ahead > centerEpsilon {
		return ahead
	}
	return ahead + float64(m.TileSize)
}
