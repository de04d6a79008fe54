package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/olivierh59500/plexus-field/config"
)

func testSettings() config.File {
	settings := config.Default()
	settings.Window.Width, settings.Window.Height = 400, 300
	settings.Field.Seed = 17
	return settings
}

func TestSimulationTicksThroughDriver(t *testing.T) {
	sim, err := NewSimulation(testSettings())
	if err != nil {
		t.Fatal(err)
	}
	before := sim.snap

	for i := 0; i < 10; i++ {
		if ran, err := sim.Driver.Tick(); !ran || err != nil {
			t.Fatalf("tick %d: ran=%v err=%v", i, ran, err)
		}
	}
	if reflect.DeepEqual(before.Particles, sim.snap.Particles) {
		t.Fatal("particles did not move")
	}
	if len(sim.motes) != sim.settings.Dust.Count {
		t.Fatalf("expected %d motes, got %d", sim.settings.Dust.Count, len(sim.motes))
	}
}

func TestSimulationIsReproducible(t *testing.T) {
	a, _ := NewSimulation(testSettings())
	b, _ := NewSimulation(testSettings())
	for i := 0; i < 30; i++ {
		a.Driver.Tick()
		b.Driver.Tick()
	}
	if !reflect.DeepEqual(a.snap, b.snap) || !reflect.DeepEqual(a.motes, b.motes) {
		t.Fatal("same seed gave different frames")
	}
}

func TestSimulationLayoutResizesField(t *testing.T) {
	sim, _ := NewSimulation(testSettings())
	w, h := sim.Layout(200, 100)
	if w != 200 || h != 100 {
		t.Fatalf("Layout returned %dx%d", w, h)
	}
	if fw, fh := sim.Field.Bounds(); fw != 200 || fh != 100 {
		t.Fatalf("field bounds %vx%v", fw, fh)
	}

	sim.Driver.Tick()
	for i, p := range sim.snap.Particles {
		if p.X > 200 || p.Y > 100 {
			t.Fatalf("particle %d at (%v,%v) after shrinking", i, p.X, p.Y)
		}
	}
}

func TestSimulationResizeKeepsSizeOnFailure(t *testing.T) {
	sim, _ := NewSimulation(testSettings())
	sim.Field.Destroy()
	sim.Layout(200, 100)
	if sim.Width != 400 || sim.Height != 300 {
		t.Fatalf("cached size %vx%v changed although the field rejected it", sim.Width, sim.Height)
	}
}

func TestSimulationPointer(t *testing.T) {
	sim, _ := NewSimulation(testSettings())

	sim.point(50, 60, true)
	sim.Driver.Tick()
	if sim.snap.Pointer == nil || sim.snap.Pointer.X != 50 || sim.snap.Pointer.Y != 60 {
		t.Fatalf("pointer %+v", sim.snap.Pointer)
	}

	sim.point(500, 60, true) // Outside the window
	sim.Driver.Tick()
	if sim.snap.Pointer != nil {
		t.Fatal("cursor outside the window should clear the pointer")
	}

	sim.point(50, 60, false)
	sim.Driver.Tick()
	if sim.snap.Pointer != nil {
		t.Fatal("unfocused window should clear the pointer")
	}
}

func TestSimulationReseed(t *testing.T) {
	sim, _ := NewSimulation(testSettings())
	old := sim.Field
	if err := sim.reseed(99); err != nil {
		t.Fatal(err)
	}
	if old.Alive() {
		t.Fatal("previous field should be destroyed")
	}
	if sim.Field.Len() != sim.settings.Field.Particles {
		t.Fatalf("reseeded field has %d particles", sim.Field.Len())
	}
}

func TestSimulationTeardownStopsFrames(t *testing.T) {
	sim, _ := NewSimulation(testSettings())
	sim.Driver.Tick()
	sim.teardown()
	sim.teardown()

	ran, err := sim.Driver.Tick()
	if ran || err != nil {
		t.Fatalf("frame after teardown: ran=%v err=%v", ran, err)
	}
	if sim.Field.Alive() {
		t.Fatal("field survived teardown")
	}
}

func TestSimulationSavesSnapshot(t *testing.T) {
	sim, _ := NewSimulation(testSettings())
	sim.SnapshotPath = filepath.Join(t.TempDir(), "frame.json")
	sim.saveSnapshot()

	info, err := os.Stat(sim.SnapshotPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("empty snapshot file")
	}
}

func TestSimulationWithoutDust(t *testing.T) {
	settings := testSettings()
	settings.Dust.Enabled = false
	sim, err := NewSimulation(settings)
	if err != nil {
		t.Fatal(err)
	}
	sim.Driver.Tick()
	if sim.Dust != nil || len(sim.motes) != 0 {
		t.Fatal("dust should be off")
	}
	sim.teardown()
}

func TestCanvasHaloFollowsPointer(t *testing.T) {
	sim, _ := NewSimulation(testSettings())
	sim.point(120, 80, true)
	for i := 0; i < 5; i++ {
		sim.Driver.Tick()
	}
	if !sim.Canvas.Halo.Visible() {
		t.Fatal("halo should open while the pointer is present")
	}
	if c := sim.Canvas.Halo.Center(); c.X != 120 || c.Y != 80 {
		t.Fatalf("halo centred at %+v", c)
	}
}
