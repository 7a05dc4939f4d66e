package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Tombarr/pacman-kaios/internal/config"
	"github.com/Tombarr/pacman-kaios/internal/game"
	"github.com/Tombarr/pacman-kaios/internal/platform"
	"github.com/Tombarr/pacman-kaios/internal/storage"
	"github.com/Tombarr/pacman-kaios/internal/ui"
)

func main() {
	sounds := flag.String("sounds", "assets/sounds", "directory with <sound>.wav overrides")
	flag.Parse()

	game.ConfigureLocale()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	store, err := storage.Open()
	if err != nil {
		log.Fatal(err)
	}
	app, err := ui.New(ui.Options{
		Config:    cfg,
		Store:     store,
		Services:  platform.Desktop(),
		SoundsDir: *sounds,
	})
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Pac-Man")
	ebiten.SetWindowResizable(false)
	ebiten.SetWindowSize(app.ScreenWidth(), app.ScreenHeight())
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
