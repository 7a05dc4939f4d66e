package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Tombarr/pacman-kaios/internal/entities"
	"github.com/Tombarr/pacman-kaios/internal/game"
	tm "github.com/Tombarr/pacman-kaios/internal/tilemap"
)

// basicfont.Face7x13 glyphs are 7 pixels wide.
const glyphW = 7

var (
	wallColor   = color.RGBA{R: 33, G: 33, B: 222, A: 255}
	pelletColor = color.RGBA{R: 255, G: 184, B: 151, A: 255}
	pacColor    = color.RGBA{R: 255, G: 221, B: 0, A: 255}
	scaredColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	gold        = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	grey        = color.RGBA{R: 128, G: 128, B: 128, A: 255}

	ghostColors = [entities.GhostCount]color.RGBA{
		entities.Blinky: {R: 255, G: 0, B: 0, A: 255},
		entities.Pinky:  {R: 255, G: 128, B: 255, A: 255},
		entities.Inky:   {R: 0, G: 191, B: 255, A: 255},
		entities.Clyde:  {R: 255, G: 128, B: 0, A: 255},
	}
	fruitColors = map[game.Fruit]color.RGBA{
		game.FruitCherry:     {R: 222, G: 0, B: 0, A: 255},
		game.FruitStrawberry: {R: 255, G: 64, B: 96, A: 255},
		game.FruitApple:      {R: 64, G: 200, B: 64, A: 255},
	}
)

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	// Draw at native resolution then scale up
	if a.off == nil {
		a.off = ebiten.NewImage(a.nativeW, a.nativeH)
	}
	off := a.off
	off.Clear()

	switch a.scene {
	case sceneBoot, scenePreload:
		drawCentered(off, "LOADING", a.nativeH/2, color.White)
	case sceneTitle:
		a.drawTitle(off)
	case scenePlay:
		a.drawPlay(off)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(a.scale, a.scale)
	screen.DrawImage(off, op)
}

func drawCentered(dst *ebiten.Image, s string, y int, c color.Color) {
	w := dst.Bounds().Dx()
	text.Draw(dst, s, basicfont.Face7x13, (w-len(s)*glyphW)/2, y, c)
}

func (a *App) drawTitle(dst *ebiten.Image) {
	drawCentered(dst, "PAC-MAN", a.nativeH/2-28, gold)
	drawCentered(dst, fmt.Sprintf("HIGH SCORE %d", a.game.HighScore()), a.nativeH/2, color.White)
	drawCentered(dst, "PRESS ENTER", a.nativeH/2+20, color.White)
	if a.game.UpdateAvailable() {
		drawCentered(dst, game.UpdateBanner()+"  U: STORE", a.nativeH-24, pacColor)
	}
	drawCentered(dst, "F: FULLSCREEN  M: SOUND", a.nativeH-8, grey)
}

func (a *App) drawPlay(dst *ebiten.Image) {
	s := a.game.Session()
	m := s.Map()
	oy := float32(hudHeight)

	drawMaze(dst, m, oy)
	for _, it := range s.Items() {
		drawItem(dst, it, float32(m.TileSize), oy)
	}
	for _, g := range s.Ghosts() {
		drawGhost(dst, g, oy, a.frame)
	}
	drawPacman(dst, s.Pacman(), oy)
	a.drawHUD(dst, s)
}

func drawMaze(dst *ebiten.Image, m *tm.TileMap, oy float32) {
	ts := float32(m.TileSize)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.IsWall(x, y) {
				vector.DrawFilledRect(dst, float32(x)*ts+1, float32(y)*ts+oy+1, ts-2, ts-2, wallColor, false)
			}
		}
	}
}

func drawItem(dst *ebiten.Image, it *game.Item, ts, oy float32) {
	x, y := float32(it.X), float32(it.Y)+oy
	switch it.Kind {
	case game.ItemPellet:
		vector.DrawFilledCircle(dst, x, y, ts/8, pelletColor, true)
	case game.ItemPill:
		vector.DrawFilledCircle(dst, x, y, ts/3, pelletColor, true)
	case game.ItemBonus:
		vector.DrawFilledCircle(dst, x, y, ts/3, fruitColors[it.Fruit], true)
	}
}

func drawPacman(dst *ebiten.Image, p *entities.Pacman, oy float32) {
	c := pacColor
	if p.Dying() {
		c = color.RGBA{R: 128, G: 110, B: 0, A: 255}
	}
	r := float32(p.TileSize)/2 - 2
	vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y)+oy, r, c, true)
}

// ghostColor picks the body colour; nil means only the eyes are drawn.
func ghostColor(g *entities.Ghost, frame int) color.Color {
	switch g.Mode() {
	case entities.GhostEaten:
		return nil
	case entities.GhostFrightened:
		if g.Blinking() && (frame/8)%2 == 0 {
			return color.White
		}
		return scaredColor
	}
	return ghostColors[g.Name]
}

func drawGhost(dst *ebiten.Image, g *entities.Ghost, oy float32, frame int) {
	x, y := float32(g.X), float32(g.Y)+oy
	r := float32(g.TileSize)/2 - 2
	if c := ghostColor(g, frame); c != nil {
		vector.DrawFilledCircle(dst, x, y, r, c, true)
	}
	dx, dy := entities.DirDelta(g.Dir)
	for _, side := range []float32{-1, 1} {
		ex, ey := x+side*r/2.5, y-r/4
		vector.DrawFilledCircle(dst, ex, ey, r/4, color.White, true)
		vector.DrawFilledCircle(dst, ex+float32(dx)*r/8, ey+float32(dy)*r/8, r/8, scaredColor, true)
	}
}

func (a *App) drawHUD(dst *ebiten.Image, s *game.Session) {
	w := dst.Bounds().Dx()
	text.Draw(dst, "SCORE "+s.ScoreText(), basicfont.Face7x13, 4, 12, color.White)
	hi := fmt.Sprintf("HIGH %d", a.game.HighScore())
	text.Draw(dst, hi, basicfont.Face7x13, w-len(hi)*glyphW-4, 12, color.White)

	bottom := float32(a.nativeH - hudHeight/2)
	for i := 0; i < s.Lives; i++ {
		vector.DrawFilledCircle(dst, float32(10+i*14), bottom, 5, pacColor, true)
	}
	lvl := fmt.Sprintf("LEVEL %d", s.Level)
	if a.game.Muted() {
		lvl = "MUTED  " + lvl
	}
	text.Draw(dst, lvl, basicfont.Face7x13, w-len(lvl)*glyphW-4, a.nativeH-4, grey)

	if n := s.Notification(); n != "" {
		y := a.nativeH / 2
		bw := float32(len(n)*glyphW + 16)
		vector.DrawFilledRect(dst, (float32(w)-bw)/2, float32(y-14), bw, 20, color.Black, false)
		drawCentered(dst, n, y, pacColor)
	}
}
