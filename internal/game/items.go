package game

import (
	"github.com/Tombarr/pacman-kaios/internal/entities"
	"github.com/Tombarr/pacman-kaios/internal/tilemap"
)

const (
	pelletPoints = 10
	pillPoints   = 50
	ghostPoints  = 200
)

type ItemKind int

const (
	ItemPellet ItemKind = iota
	ItemPill
	ItemBonus
)

type Fruit int

const (
	FruitNone Fruit = iota
	FruitCherry
	FruitStrawberry
	FruitApple
)

func (f Fruit) String() string {
	switch f {
	case FruitCherry:
		return "cherry"
	case FruitStrawberry:
		return "strawberry"
	case FruitApple:
		return "apple"
	default:
		return "none"
	}
}

// Factor is how much eating the fruit multiplies the score multiplier by.
func (f Fruit) Factor() int {
	switch f {
	case FruitCherry:
		return 2
	case FruitStrawberry:
		return 3
	case FruitApple:
		return 4
	default:
		return 1
	}
}

// bonusThresholds maps eaten-pellet counts to the fruit placed at that point.
var bonusThresholds = map[int]Fruit{
	60:  FruitCherry,
	120: FruitStrawberry,
	150: FruitApple,
}

// Item is a collectible sitting on a tile centre.
type Item struct {
	Kind   ItemKind
	Fruit  Fruit
	Marker tilemap.Marker
	X, Y   float64

	half  float64
	alive bool
}

func newItem(kind ItemKind, m *tilemap.TileMap, at tilemap.Marker) *Item {
	x, y := m.TileCenter(at)
	return &Item{Kind: kind, Marker: at, X: x, Y: y, half: float64(m.TileSize) / 4, alive: true}
}

func (it *Item) Alive() bool { return it.alive }

func (it *Item) Bounds() entities.Rect {
	return entities.RectAround(it.X, it.Y, it.half)
}

func (it *Item) points() int {
	switch it.Kind {
	case ItemPellet:
		return pelletPoints
	case ItemPill:
		return pillPoints
	}
	return 0
}

// Portal teleports whatever overlaps it to the portal whose Index equals
// its Target.
type Portal struct {
	Marker tilemap.Marker
	X, Y   float64
	Index  int
	Target int

	half float64
}

func (p *Portal) Bounds() entities.Rect {
	return entities.RectAround(p.X, p.Y, p.half)
}
