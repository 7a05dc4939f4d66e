package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tombarr/pacman-kaios/internal/entities"
)

//go:embed difficulty.yaml
var defaultDifficulty []byte

// EnvDifficultyFile names a YAML file that replaces the built-in profiles.
const EnvDifficultyFile = "PACMAN_DIFFICULTY_FILE"

var ErrNoLevels = errors.New("config: no levels defined")

type WaveSpec struct {
	Mode     string        `yaml:"mode"`
	Duration time.Duration `yaml:"duration"`
}

// Profile holds the per-level constants.
type Profile struct {
	Map              string                   `yaml:"map"`
	PacmanSpeed      float64                  `yaml:"pacmanSpeed"`
	GhostSpeed       float64                  `yaml:"ghostSpeed"`
	FrightenedFactor float64                  `yaml:"frightenedFactor"`
	EatenFactor      float64                  `yaml:"eatenFactor"`
	PowerModeTime    time.Duration            `yaml:"powerModeTime"`
	Multiplier       int                      `yaml:"multiplier"`
	DeathDuration    time.Duration            `yaml:"deathDuration"`
	Release          map[string]time.Duration `yaml:"release"`
	Waves            []WaveSpec               `yaml:"waves"`

	waves []entities.Wave
}

type Config struct {
	Lives       int           `yaml:"lives"`
	BonusWindow time.Duration `yaml:"bonusWindow"`
	Levels      []Profile     `yaml:"levels"`
}

// Default decodes the embedded profiles.
func Default() (*Config, error) {
	return Parse(defaultDifficulty)
}

// Load reads the file named by PACMAN_DIFFICULTY_FILE, or the embedded
// profiles when it is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvDifficultyFile)
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if len(c.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if c.Lives <= 0 {
		c.Lives = 3
	}
	if c.BonusWindow <= 0 {
		c.BonusWindow = 3 * time.Second
	}
	for i := range c.Levels {
		if err := c.Levels[i].compile(); err != nil {
			return nil, fmt.Errorf("config: level %d: %w", i+1, err)
		}
	}
	return &c, nil
}

func (p *Profile) compile() error {
	if p.Multiplier <= 0 {
		p.Multiplier = 1
	}
	if p.FrightenedFactor <= 0 {
		p.FrightenedFactor = 0.5
	}
	if p.EatenFactor <= 0 {
		p.EatenFactor = 2
	}
	p.waves = p.waves[:0]
	for _, w := range p.Waves {
		mode, err := entities.ParseGhostMode(w.Mode)
		if err != nil {
			return err
		}
		if mode != entities.GhostChase && mode != entities.GhostScatter {
			return fmt.Errorf("wave mode must be chase or scatter, got %q", w.Mode)
		}
		p.waves = append(p.waves, entities.Wave{Mode: mode, Duration: w.Duration})
	}
	for name := range p.Release {
		if _, err := entities.ParseGhostName(name); err != nil {
			return err
		}
	}
	return nil
}

// GhostWaves returns the chase/scatter schedule.
func (p *Profile) GhostWaves() []entities.Wave {
	return p.waves
}

// ReleaseDelay returns how long after pacman starts the ghost leaves the
// house. Ghosts without an entry leave at once.
func (p *Profile) ReleaseDelay(name entities.GhostName) time.Duration {
	for k, d := range p.Release {
		if n, err := entities.ParseGhostName(k); err == nil && n == name {
			return d
		}
	}
	return 0
}

// FinalLevel is the last playable level.
func (c *Config) FinalLevel() int {
	return len(c.Levels)
}

// Profile returns the profile for a 1-based level, clamped to the defined
// range.
func (c *Config) Profile(level int) *Profile {
	i := min(max(level, 1), len(c.Levels)) - 1
	return &c.Levels[i]
}
