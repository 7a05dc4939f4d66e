package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

const (
	configDirName = "pacman-kaios"
	prefsFileName = "prefs.json"

	KeyMute      = "mute"
	KeyHighScore = "highscore"
)

var ErrNegativeScore = errors.New("storage: score must be non-negative")

// Store is a small string key/value store persisted as a JSON object,
// the same shape as the browser localStorage the game used on the phone.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// configBaseDir determines the base directory to store config.
// If PACMAN_CONFIG_DIR is set, it is used as-is. Otherwise, use UserConfigDir()/pacman-kaios.
func configBaseDir() (string, error) {
	if env := os.Getenv("PACMAN_CONFIG_DIR"); env != "" {
		if err := os.MkdirAll(env, 0o755); err != nil {
			return "", err
		}
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Open loads the preferences file from the config directory. A missing or
// unreadable file yields an empty store.
func Open() (*Store, error) {
	dir, err := configBaseDir()
	if err != nil {
		return nil, fmt.Errorf("storage: config dir: %w", err)
	}
	return OpenFile(filepath.Join(dir, prefsFileName)), nil
}

func OpenFile(path string) *Store {
	s := &Store{path: path, values: map[string]string{}}
	if data, err := os.ReadFile(path); err == nil {
		// a corrupt file is treated as empty and rewritten on the next Set
		var values map[string]string
		if err := json.Unmarshal(data, &values); err == nil && values != nil {
			s.values = values
		} else if err != nil {
			log.Printf("storage: ignoring %s: %v", path, err)
		}
	}
	return s
}

// Memory returns a store that never touches the disk.
func Memory() *Store {
	return &Store{values: map[string]string{}}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// GetBool reads a "1"/"0" flag, returning def when the key is absent.
func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return v == "1"
}

func (s *Store) SetBool(key string, v bool) error {
	if v {
		return s.Set(key, "1")
	}
	return s.Set(key, "0")
}

// HighScore returns the persisted best score, 0 if none.
func (s *Store) HighScore() int {
	v, ok := s.Get(KeyHighScore)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SaveHighScore records score if it beats the stored one.
func (s *Store) SaveHighScore(score int) error {
	if score < 0 {
		return ErrNegativeScore
	}
	if score <= s.HighScore() {
		return nil
	}
	return s.Set(KeyHighScore, strconv.Itoa(score))
}

// flush writes the values atomically through a temp file. Callers hold mu.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}
