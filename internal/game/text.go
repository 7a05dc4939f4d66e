package game

import (
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

const (
	msgLevelCompleted = "level %d completed"
	msgGameCompleted  = "game completed"
	msgGameOver       = "game over"
	msgPaused         = "paused"
	msgUpdate         = "update available"
)

// ConfigureLocale loads translations from PACMAN_LOCALES (default
// "locales") for PACMAN_LANG (default "en_US"). Untranslated messages fall
// back to English.
func ConfigureLocale() {
	dir := os.Getenv("PACMAN_LOCALES")
	if dir == "" {
		dir = "locales"
	}
	lang := os.Getenv("PACMAN_LANG")
	if lang == "" {
		lang = "en_US"
	}
	gotext.Configure(dir, lang, "default")
}

// banner renders a notification in the upper-case bitmap font style.
func banner(msg string, vars ...interface{}) string {
	return strings.ToUpper(gotext.Get(msg, vars...))
}
