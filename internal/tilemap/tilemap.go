package tilemap

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

type Tile int

const (
	TileEmpty Tile = iota
	TileWall
)

// ObjectKind tags the markers placed on the object layer of a level.
type ObjectKind int

const (
	ObjPellet ObjectKind = iota
	ObjPill
	ObjPortal
	ObjSpawn
	ObjTarget
)

func (k ObjectKind) String() string {
	switch k {
	case ObjPellet:
		return "pellet"
	case ObjPill:
		return "pill"
	case ObjPortal:
		return "portal"
	case ObjSpawn:
		return "spawn"
	case ObjTarget:
		return "target"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

// Marker is a tile coordinate.
type Marker struct {
	X, Y int
}

func (m Marker) Add(dx, dy int) Marker {
	return Marker{X: m.X + dx, Y: m.Y + dy}
}

// Object is a named marker on the object layer. Index and Target are only
// meaningful for portals: a unit entering portal Index leaves through the
// portal whose Index equals Target.
type Object struct {
	Kind   ObjectKind
	Name   string
	X, Y   int
	Index  int
	Target int
}

func (o Object) Marker() Marker {
	return Marker{X: o.X, Y: o.Y}
}

var ErrEmptyMaze = errors.New("tilemap: empty maze")

// TileMap is the immutable geometry of one level.
type TileMap struct {
	Name     string
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	Objects  []Object
}

// Parse builds a map from ASCII rows. '#' is a wall, '.' a pellet, 'o' a
// power pill, 'P' the pacman spawn and 'B', 'N', 'I', 'C' the blinky, pinky,
// inky and clyde spawns. Anything else is an empty corridor tile.
func Parse(lines []string, tileSize int) (*TileMap, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyMaze
	}
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	if w == 0 {
		return nil, ErrEmptyMaze
	}
	m := &TileMap{
		Width:    w,
		Height:   len(lines),
		TileSize: tileSize,
		Tiles:    make([][]Tile, len(lines)),
	}
	for y, line := range lines {
		m.Tiles[y] = make([]Tile, w)
		for x := 0; x < len(line); x++ {
			switch line[x] {
			case '#':
				m.Tiles[y][x] = TileWall
			case '.':
				m.Objects = append(m.Objects, Object{Kind: ObjPellet, Name: "pellet", X: x, Y: y})
			case 'o':
				m.Objects = append(m.Objects, Object{Kind: ObjPill, Name: "pill", X: x, Y: y})
			default:
				if name, ok := spawnGlyphs[line[x]]; ok {
					m.Objects = append(m.Objects, Object{Kind: ObjSpawn, Name: name, X: x, Y: y})
				}
			}
		}
	}
	return m, nil
}

var spawnGlyphs = map[byte]string{
	'P': "pacman",
	'B': "blinky",
	'N': "pinky",
	'I': "inky",
	'C': "clyde",
}

func (m *TileMap) IsWall(x, y int) bool {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return true
	}
	return m.Tiles[y][x] == TileWall
}

func (m *TileMap) PixelWidth() int  { return m.Width * m.TileSize }
func (m *TileMap) PixelHeight() int { return m.Height * m.TileSize }

// TileCenter returns the pixel centre of a tile.
func (m *TileMap) TileCenter(at Marker) (float64, float64) {
	half := float64(m.TileSize) / 2
	return float64(at.X*m.TileSize) + half, float64(at.Y*m.TileSize) + half
}

// MarkerAt returns the tile containing a pixel position.
func (m *TileMap) MarkerAt(px, py float64) Marker {
	ts := float64(m.TileSize)
	return Marker{X: int(math.Floor(px / ts)), Y: int(math.Floor(py / ts))}
}

// ObjectsByType returns the objects of one kind in map order.
func (m *TileMap) ObjectsByType(kind ObjectKind) []Object {
	var out []Object
	for _, o := range m.Objects {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func (m *TileMap) findObject(kind ObjectKind, name string) (Object, bool) {
	for _, o := range m.Objects {
		if o.Kind == kind && strings.EqualFold(o.Name, name) {
			return o, true
		}
	}
	return Object{}, false
}

// RespawnPoint returns the pixel centre of the named spawn marker. Levels
// are expected to define every spawn; a missing one yields (0, 0, false).
func (m *TileMap) RespawnPoint(name string) (float64, float64, bool) {
	o, ok := m.findObject(ObjSpawn, name)
	if !ok {
		return 0, 0, false
	}
	x, y := m.TileCenter(o.Marker())
	return x, y, true
}

// TargetPoint returns the named scatter target. Targets may lie outside the
// maze, so no bounds check is made.
func (m *TileMap) TargetPoint(name string) (Marker, bool) {
	o, ok := m.findObject(ObjTarget, name)
	if !ok {
		return Marker{}, false
	}
	return o.Marker(), true
}

// Reachable returns every non-wall tile connected to from, sorted row-major.
func (m *TileMap) Reachable(from Marker) []Marker {
	if m.IsWall(from.X, from.Y) {
		return nil
	}
	visited := mapset.New[Marker]()
	queue := []Marker{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited.Has(cur) {
			continue
		}
		visited.Put(cur)
		for _, n := range [4]Marker{cur.Add(0, -1), cur.Add(-1, 0), cur.Add(0, 1), cur.Add(1, 0)} {
			if !m.IsWall(n.X, n.Y) && !visited.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	out := make([]Marker, 0, visited.Size())
	visited.Each(func(mk Marker) {
		out = append(out, mk)
	})
	slices.SortFunc(out, func(a, b Marker) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}
