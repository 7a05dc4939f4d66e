package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Tombarr/pacman-kaios/internal/entities"
	"github.com/Tombarr/pacman-kaios/internal/game"
)

// Direction keys are read while held; the rest fire once per press.
var (
	dirKeys = []struct {
		key ebiten.Key
		dir entities.Direction
	}{
		{ebiten.KeyArrowUp, entities.DirUp},
		{ebiten.KeyArrowDown, entities.DirDown},
		{ebiten.KeyArrowLeft, entities.DirLeft},
		{ebiten.KeyArrowRight, entities.DirRight},
		{ebiten.KeyDigit2, entities.DirUp},
		{ebiten.KeyDigit8, entities.DirDown},
		{ebiten.KeyDigit4, entities.DirLeft},
		{ebiten.KeyDigit6, entities.DirRight},
	}
	confirmKeys = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace}
	muteKeys    = []ebiten.Key{ebiten.KeyM, ebiten.KeyF1}
	backKeys    = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyBackspace}
	storeKeys   = []ebiten.Key{ebiten.KeyU, ebiten.KeyF2}
)

func anyKey(keys []ebiten.Key, pressed func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// readInput builds a frame's input from a held-key query and a just-pressed
// query, normally ebiten.IsKeyPressed and inpututil.IsKeyJustPressed.
func readInput(held, justPressed func(ebiten.Key) bool) game.Input {
	in := game.Input{
		Confirm: anyKey(confirmKeys, justPressed),
		Mute:    anyKey(muteKeys, justPressed),
		Back:    anyKey(backKeys, justPressed),
		Store:   anyKey(storeKeys, justPressed),
	}
	for _, b := range dirKeys {
		if held(b.key) {
			in.Dir = b.dir
			break
		}
	}
	return in
}
