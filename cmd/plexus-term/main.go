// Command plexus-term runs the plexus background in a terminal. Move the
// mouse to push particles away; c clears the pointer, space pauses, q quits.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/plexus-field/config"
	"github.com/olivierh59500/plexus-field/driver"
	"github.com/olivierh59500/plexus-field/dust"
	"github.com/olivierh59500/plexus-field/field"
	"github.com/olivierh59500/plexus-field/render"
)

var settingsFlags = config.RegisterFlags(flag.CommandLine, false)

// app owns the screen and everything the frame loop mutates. Input arrives
// on events and is applied at the start of the next frame, so the field is
// only touched from the driver goroutine.
type app struct {
	screen tcell.Screen
	term   *render.Terminal
	field  *field.Field
	dust   *dust.Cloud
	driver *driver.Driver
	events chan tcell.Event
	quit   chan struct{} // closed by teardown to release pump
	paused bool
}

func newApp(screen tcell.Screen, settings config.File) (*app, error) {
	a := &app{
		screen: screen,
		term:   render.NewTerminal(screen),
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
	}
	rng := rand.New(rand.NewSource(settings.Field.Seed))
	width, height := a.term.FieldSize()

	var err error
	if a.field, err = field.New(width, height, settings.FieldConfig(), rng); err != nil {
		return nil, err
	}
	if settings.Dust.Enabled {
		if a.dust, err = dust.New(width, height, settings.DustConfig(), rng); err != nil {
			return nil, err
		}
	}
	interval := time.Duration(float64(time.Second) / settings.Window.TPS)
	if a.driver, err = driver.New(interval, a.frame); err != nil {
		return nil, err
	}
	return a, nil
}

// frame applies pending input, steps the simulation and redraws
func (a *app) frame(uint64) error {
	for pending := true; pending; {
		select {
		case ev := <-a.events:
			running, err := a.handle(ev)
			if err != nil {
				return err
			}
			if !running {
				a.driver.Stop()
				return nil
			}
		default:
			pending = false
		}
	}

	if !a.paused {
		if err := a.field.Step(); err != nil {
			return err
		}
		if a.dust != nil {
			if err := a.dust.Step(); err != nil {
				return err
			}
		}
	}

	snap, err := a.field.Snapshot()
	if err != nil {
		return err
	}
	var motes []dust.MoteView
	if a.dust != nil {
		if motes, err = a.dust.Snapshot(); err != nil {
			return err
		}
	}
	a.term.Draw(snap, motes)
	return nil
}

// handle applies one input event and reports whether to keep running
func (a *app) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false, nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false, nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'c':
			return true, a.field.ClearPointer()
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			a.paused = !a.paused
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		return true, a.field.SetPointer(render.FieldPoint(col, row))

	case *tcell.EventResize:
		a.screen.Sync()
		width, height := a.term.FieldSize()
		if err := a.field.SetBounds(width, height); err != nil {
			return true, err
		}
		if a.dust != nil {
			return true, a.dust.SetBounds(width, height)
		}
	}
	return true, nil
}

// pump forwards screen events until the screen is finalised or the app is
// torn down
func (a *app) pump() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

func (a *app) teardown() {
	a.driver.Stop()
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
	a.field.Destroy()
	a.dust.Destroy()
}

func main() {
	flag.Parse()

	settings, err := settingsFlags.Settings()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)

	a, err := newApp(screen, settings)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	go a.pump()

	if err := a.driver.Start(context.Background()); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	err = a.driver.Wait()
	a.teardown()
	screen.Fini()

	if err != nil {
		log.Fatal(err)
	}
	log.Printf("seed %d, %d frames", settings.Field.Seed, a.driver.Frames())
}
