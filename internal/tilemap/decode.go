package tilemap

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultTileSize = 16

// levelFile is the on-disk layout of a level. Pellets, pills and spawns come
// from the maze glyphs; targets and portals are listed as objects because
// they carry names and pair indexes.
type levelFile struct {
	Name     string       `yaml:"name"`
	TileSize int          `yaml:"tileSize"`
	Maze     string       `yaml:"maze"`
	Objects  []objectFile `yaml:"objects"`
}

type objectFile struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Index  int    `yaml:"index"`
	Target int    `yaml:"target"`
}

var objectKinds = map[string]ObjectKind{
	"pellet": ObjPellet,
	"pill":   ObjPill,
	"portal": ObjPortal,
	"spawn":  ObjSpawn,
	"target": ObjTarget,
}

// Decode reads a YAML level.
func Decode(r io.Reader) (*TileMap, error) {
	var lf levelFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("tilemap: decode level: %w", err)
	}
	ts := lf.TileSize
	if ts <= 0 {
		ts = defaultTileSize
	}
	lines := strings.Split(strings.TrimRight(lf.Maze, "\n"), "\n")
	m, err := Parse(lines, ts)
	if err != nil {
		return nil, fmt.Errorf("tilemap: level %q: %w", lf.Name, err)
	}
	m.Name = lf.Name
	for _, of := range lf.Objects {
		kind, ok := objectKinds[strings.ToLower(of.Type)]
		if !ok {
			return nil, fmt.Errorf("tilemap: level %q: unknown object type %q", lf.Name, of.Type)
		}
		name := of.Name
		if name == "" {
			name = kind.String()
		}
		m.Objects = append(m.Objects, Object{
			Kind:   kind,
			Name:   name,
			X:      of.X,
			Y:      of.Y,
			Index:  of.Index,
			Target: of.Target,
		})
	}
	return m, nil
}
