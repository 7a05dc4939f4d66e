package sfx

import (
	"testing"

	"github.com/Tombarr/pacman-kaios/internal/game"
)

func TestEveryToneRendersItsDuration(t *testing.T) {
	for _, s := range game.Sounds() {
		t.Run(s.String(), func(t *testing.T) {
			st, err := Tone(s)
			if err != nil {
				t.Fatalf("Tone: %v", err)
			}
			pcm := PCM16(st)
			want := SampleRate.N(Duration(s)) * 4
			// each note is rounded to whole samples
			if diff := len(pcm) - want; diff < -16 || diff > 16 {
				t.Fatalf("got %d bytes, want about %d", len(pcm), want)
			}
		})
	}
}

func TestToneUnknownSound(t *testing.T) {
	if _, err := Tone(game.Sound(99)); err == nil {
		t.Fatalf("expected error for unknown sound")
	}
}

func TestEnabledSwitches(t *testing.T) {
	tests := []struct {
		enable, disable string
		want            bool
	}{
		{"", "", false},
		{"1", "", true},
		{"1", "1", false},
		{"", "1", false},
	}
	for _, tc := range tests {
		t.Setenv("PACMAN_ENABLE_AUDIO", tc.enable)
		t.Setenv("PACMAN_DISABLE_AUDIO", tc.disable)
		if got := Enabled(); got != tc.want {
			t.Fatalf("enable=%q disable=%q: got %v", tc.enable, tc.disable, got)
		}
	}
}
