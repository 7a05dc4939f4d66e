package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Tombarr/pacman-kaios/internal/entities"
	"github.com/Tombarr/pacman-kaios/internal/game"
)

// Each tile takes two terminal cells so the maze keeps its aspect.
const cellW = 2

// canvas is the part of tcell.Screen the renderer writes to.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	pelletStyle = tcell.StyleDefault.Foreground(tcell.ColorPeachPuff)
	pacStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	scaredStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)

	ghostStyles = [entities.GhostCount]tcell.Style{
		entities.Blinky: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		entities.Pinky:  tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true),
		entities.Inky:   tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
		entities.Clyde:  tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
	}
	fruitStyles = map[game.Fruit]tcell.Style{
		game.FruitCherry:     tcell.StyleDefault.Foreground(tcell.ColorRed),
		game.FruitStrawberry: tcell.StyleDefault.Foreground(tcell.ColorHotPink),
		game.FruitApple:      tcell.StyleDefault.Foreground(tcell.ColorGreen),
	}
)

func drawText(c canvas, x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		c.SetContent(x+i, y, r, nil, st)
	}
}

// render draws one frame: the HUD on the first row, the board below it and
// lives on the row after the board.
func render(c canvas, a *game.App, frame int) {
	s := a.Session()
	m := s.Map()
	width := m.Width * cellW
	top := 1

	drawText(c, 0, 0, "SCORE "+s.ScoreText(), hudStyle)
	hi := fmt.Sprintf("HIGH %d", a.HighScore())
	drawText(c, width-len(hi), 0, hi, hudStyle)
	if a.UpdateAvailable() {
		up := game.UpdateBanner() + " (U)"
		drawText(c, (width-len(up))/2, 0, up, bannerStyle)
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r := ' '
			if m.IsWall(x, y) {
				r = '█'
			}
			c.SetContent(x*cellW, top+y, r, nil, wallStyle)
			c.SetContent(x*cellW+1, top+y, r, nil, wallStyle)
		}
	}
	for _, it := range s.Items() {
		r, st := '·', pelletStyle
		switch it.Kind {
		case game.ItemPill:
			r = '●'
		case game.ItemBonus:
			r, st = '%', fruitStyles[it.Fruit]
		}
		c.SetContent(it.Marker.X*cellW, top+it.Marker.Y, r, nil, st)
	}
	for _, g := range s.Ghosts() {
		r, st := ghostGlyph(g, frame)
		at := g.Marker()
		c.SetContent(at.X*cellW, top+at.Y, r, nil, st)
	}
	p := s.Pacman()
	at := p.Marker()
	pr := 'C'
	if p.Dying() {
		pr = '*'
	}
	c.SetContent(at.X*cellW, top+at.Y, pr, nil, pacStyle)

	bottom := top + m.Height
	for i := 0; i < s.Lives; i++ {
		c.SetContent(i*cellW, bottom, 'C', nil, pacStyle)
	}
	lvl := fmt.Sprintf("LEVEL %d", s.Level)
	if a.Muted() {
		lvl = "MUTED  " + lvl
	}
	drawText(c, width-len(lvl), bottom, lvl, dimStyle)

	if n := s.Notification(); n != "" {
		drawText(c, (width-len(n))/2, top+m.Height/2, n, bannerStyle)
	}
}

func ghostGlyph(g *entities.Ghost, frame int) (rune, tcell.Style) {
	switch g.Mode() {
	case entities.GhostEaten:
		return '"', hudStyle
	case entities.GhostFrightened:
		if g.Blinking() && (frame/8)%2 == 0 {
			return 'M', hudStyle
		}
		return 'M', scaredStyle
	}
	return 'M', ghostStyles[g.Name]
}
