package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenWithEnvOverride(t *testing.T) {
	tdir := t.TempDir()
	t.Setenv("PACMAN_CONFIG_DIR", tdir)

	s, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Path() != filepath.Join(tdir, "prefs.json") {
		t.Fatalf("unexpected path %q", s.Path())
	}
	if got := s.HighScore(); got != 0 {
		t.Fatalf("expected initial high score 0, got %d", got)
	}
	if err := s.SaveHighScore(12345); err != nil {
		t.Fatalf("SaveHighScore: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("prefs file not written: %v", err)
	}

	reopened, err := Open()
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.HighScore(); got != 12345 {
		t.Fatalf("expected loaded 12345, got %d", got)
	}
}

func TestSaveHighScoreKeepsBest(t *testing.T) {
	s := OpenFile(filepath.Join(t.TempDir(), "prefs.json"))
	if err := s.SaveHighScore(500); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveHighScore(200); err != nil {
		t.Fatalf("save lower: %v", err)
	}
	if got := s.HighScore(); got != 500 {
		t.Fatalf("lower score replaced the best: %d", got)
	}
	if err := s.SaveHighScore(-1); !errors.Is(err, ErrNegativeScore) {
		t.Fatalf("expected ErrNegativeScore, got %v", err)
	}
	if got := s.HighScore(); got != 500 {
		t.Fatalf("negative save changed the score: %d", got)
	}
}

func TestBoolFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s := OpenFile(path)
	if !s.GetBool(KeyMute, true) {
		t.Fatalf("missing key should return the default")
	}
	if err := s.SetBool(KeyMute, false); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if OpenFile(path).GetBool(KeyMute, true) {
		t.Fatalf("mute=false was not persisted")
	}
	if v, _ := s.Get(KeyMute); v != "0" {
		t.Fatalf("flags are stored as 0/1, got %q", v)
	}
}

func TestCorruptFileIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "syntax", data: "{not json"},
		{name: "truncated", data: `{"mute":"0","highscore":`},
		{name: "wrong value type", data: `{"mute":"0","highscore":5}`},
		{name: "not an object", data: `["x"]`},
		{name: "null", data: "null"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.json")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			s := OpenFile(path)
			if s.HighScore() != 0 || !s.GetBool(KeyMute, true) {
				t.Fatalf("corrupt file should read as empty")
			}
			if err := s.Set("k", "v"); err != nil {
				t.Fatalf("Set after corrupt read: %v", err)
			}
			if v, ok := OpenFile(path).Get("k"); !ok || v != "v" {
				t.Fatalf("rewrite failed: %q %v", v, ok)
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	s := Memory()
	if err := s.SetBool(KeyMute, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if !s.GetBool(KeyMute, false) {
		t.Fatalf("memory store lost the value")
	}
}
