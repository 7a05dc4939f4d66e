package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Tombarr/pacman-kaios/internal/entities"
	"github.com/Tombarr/pacman-kaios/internal/game"
)

var arrowKeys = map[tcell.Key]entities.Direction{
	tcell.KeyUp:    entities.DirUp,
	tcell.KeyDown:  entities.DirDown,
	tcell.KeyLeft:  entities.DirLeft,
	tcell.KeyRight: entities.DirRight,
}

var runeKeys = map[rune]entities.Direction{
	'w': entities.DirUp, '2': entities.DirUp,
	's': entities.DirDown, '8': entities.DirDown,
	'a': entities.DirLeft, '4': entities.DirLeft,
	'd': entities.DirRight, '6': entities.DirRight,
}

// merge folds a key press into the input gathered for the next frame.
// Terminals report presses only, so a direction counts for one frame and
// pacman buffers it until the turn is possible.
func merge(in *game.Input, ev *tcell.EventKey) {
	if d, ok := arrowKeys[ev.Key()]; ok {
		in.Dir = d
		return
	}
	switch ev.Key() {
	case tcell.KeyEnter:
		in.Confirm = true
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyCtrlC:
		in.Back = true
	case tcell.KeyF1:
		in.Mute = true
	case tcell.KeyRune:
		r := ev.Rune()
		if d, ok := runeKeys[r]; ok {
			in.Dir = d
			return
		}
		switch r {
		case ' ':
			in.Confirm = true
		case 'm':
			in.Mute = true
		case 'q':
			in.Back = true
		case 'u':
			in.Store = true
		}
	}
}
