package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	settings, err := loadSettings()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("seed %d", settings.Field.Seed)

	sim, err := NewSimulation(settings)
	if err != nil {
		log.Fatal(err)
	}
	sim.SnapshotPath = *snapshotFlag

	// Set up Ebitengine game
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(settings.Window.TPS))

	// Run the game loop
	if err := ebiten.RunGame(sim); err != nil {
		log.Fatal(err)
	}
	sim.teardown()
}
