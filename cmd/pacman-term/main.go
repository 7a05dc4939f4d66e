package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Tombarr/pacman-kaios/internal/config"
	"github.com/Tombarr/pacman-kaios/internal/game"
	"github.com/Tombarr/pacman-kaios/internal/platform"
	"github.com/Tombarr/pacman-kaios/internal/storage"
	"github.com/Tombarr/pacman-kaios/internal/term"
)

func main() {
	game.ConfigureLocale()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	store, err := storage.Open()
	if err != nil {
		log.Fatal(err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.Run(ctx, s, term.Options{
		Config:   cfg,
		Store:    store,
		Services: platform.Desktop(),
	})
	stop()
	s.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
