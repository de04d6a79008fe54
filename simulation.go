package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/plexus-field/config"
	"github.com/olivierh59500/plexus-field/driver"
	"github.com/olivierh59500/plexus-field/dust"
	"github.com/olivierh59500/plexus-field/field"
)

// Simulation struct: holds the game state and implements ebiten.Game
type Simulation struct {
	Width, Height float64
	Field         *field.Field
	Dust          *dust.Cloud // nil when disabled
	Canvas        *Canvas
	Driver        *driver.Driver
	Paused        bool
	ShowDust      bool
	SnapshotPath  string

	settings config.File
	snap     field.Snapshot
	motes    []dust.MoteView
	rng      *rand.Rand // Seeds for reseeding
}

// NewSimulation creates a new simulation instance from settings
func NewSimulation(settings config.File) (*Simulation, error) {
	s := &Simulation{
		Width:        float64(settings.Window.Width),
		Height:       float64(settings.Window.Height),
		ShowDust:     settings.Dust.Enabled,
		SnapshotPath: "snapshot.json",
		settings:     settings,
		rng:          rand.New(rand.NewSource(settings.Field.Seed)),
		Canvas:       NewCanvas(int(settings.Window.TPS)),
	}

	var err error
	s.Field, err = field.New(s.Width, s.Height, settings.FieldConfig(), s.rng)
	if err != nil {
		return nil, err
	}
	if settings.Dust.Enabled {
		if s.Dust, err = dust.New(s.Width, s.Height, settings.DustConfig(), s.rng); err != nil {
			return nil, err
		}
	}

	interval := time.Duration(float64(time.Second) / settings.Window.TPS)
	if s.Driver, err = driver.New(interval, s.frame); err != nil {
		return nil, err
	}
	return s, s.capture()
}

// frame advances the field and the dust by one tick
func (s *Simulation) frame(uint64) error {
	if err := s.Field.Step(); err != nil {
		return err
	}
	if s.Dust != nil {
		if err := s.Dust.Step(); err != nil {
			return err
		}
	}
	if err := s.capture(); err != nil {
		return err
	}
	s.Canvas.Observe(s.snap)
	return nil
}

// capture stores the snapshots Draw renders
func (s *Simulation) capture() error {
	snap, err := s.Field.Snapshot()
	if err != nil {
		return err
	}
	s.snap = snap
	if s.Dust != nil {
		if s.motes, err = s.Dust.Snapshot(); err != nil {
			return err
		}
	}
	return nil
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	if err := s.handleInput(); err != nil {
		return err
	}
	if s.Paused {
		return nil
	}
	_, err := s.Driver.Tick()
	return err
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	var motes []dust.MoteView
	if s.ShowDust {
		motes = s.motes
	}
	s.Canvas.Draw(screen, s.snap, motes)
}

// Layout follows the window size, which becomes the field bounds
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (s *Simulation) resize(width, height float64) {
	if width == s.Width && height == s.Height {
		return
	}
	if err := s.Field.SetBounds(width, height); err != nil {
		log.Printf("resize: %v", err)
		return
	}
	if s.Dust != nil {
		if err := s.Dust.SetBounds(width, height); err != nil {
			log.Printf("resize dust: %v", err)
		}
	}
	s.Width, s.Height = width, height
}

// handleInput processes keyboard and mouse input
func (s *Simulation) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.teardown()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Paused = !s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := s.reseed(s.rng.Int63()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		s.ShowDust = !s.ShowDust
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.saveSnapshot()
	}

	mx, my := ebiten.CursorPosition()
	return s.point(float64(mx), float64(my), ebiten.IsFocused())
}

// point feeds the cursor to the field; a cursor outside the window is no pointer
func (s *Simulation) point(x, y float64, focused bool) error {
	if focused && x >= 0 && y >= 0 && x < s.Width && y < s.Height {
		return s.Field.SetPointer(x, y)
	}
	return s.Field.ClearPointer()
}

// reseed replaces the particles with a fresh layout
func (s *Simulation) reseed(seed int64) error {
	next, err := field.NewSeeded(s.Width, s.Height, s.settings.FieldConfig(), seed)
	if err != nil {
		return err
	}
	s.Field.Destroy()
	s.Field = next
	log.Printf("reseeded with %d", seed)
	return s.capture()
}

// saveSnapshot writes the current frame to SnapshotPath
func (s *Simulation) saveSnapshot() {
	if err := field.SaveSnapshot(s.SnapshotPath, s.snap); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	log.Printf("snapshot written to %s", s.SnapshotPath)
}

// teardown stops the clock before releasing the particles, so no frame can
// run against a destroyed field
func (s *Simulation) teardown() {
	s.Driver.Stop()
	s.Field.Destroy()
	s.Dust.Destroy()
}
