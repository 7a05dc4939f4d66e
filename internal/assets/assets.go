package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"

	"github.com/Tombarr/pacman-kaios/internal/tilemap"
)

//go:embed levels/*.yaml
var levels embed.FS

// LoadLevel decodes an embedded level by file name, e.g. "classic.yaml".
func LoadLevel(name string) (*tilemap.TileMap, error) {
	data, err := levels.ReadFile("levels/" + name)
	if err != nil {
		return nil, fmt.Errorf("assets: level %q: %w", name, err)
	}
	return tilemap.Decode(bytes.NewReader(data))
}

// Levels lists the embedded level files.
func Levels() []string {
	entries, err := fs.ReadDir(levels, "levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
