package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func parseFlags(t *testing.T, window bool, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("plexus", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fl := RegisterFlags(fs, window)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fl
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plexus.toml")
	doc := "[field]\nparticles = 20\nseed = 3\n[window]\ntps = 30.0\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	fl := parseFlags(t, true, "-config", path, "-particles", "40", "-width", "640", "-dust=false")
	settings, err := fl.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Field.Particles != 40 {
		t.Errorf("particles %d, flag should win", settings.Field.Particles)
	}
	if settings.Field.Seed != 3 || settings.Window.TPS != 30 {
		t.Errorf("unset flags should keep file values, got seed %d tps %v", settings.Field.Seed, settings.Window.TPS)
	}
	if settings.Window.Width != 640 || settings.Window.Height != Default().Window.Height {
		t.Errorf("window %dx%d", settings.Window.Width, settings.Window.Height)
	}
	if settings.Dust.Enabled {
		t.Error("-dust=false should disable dust")
	}
}

func TestFlagsDefaultFlagValuesDoNotOverride(t *testing.T) {
	settings, err := parseFlags(t, false).Settings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Field.Particles != Default().Field.Particles {
		t.Errorf("particles %d, want the default", settings.Field.Particles)
	}
	if settings.Field.Seed == 0 {
		t.Error("zero seed should become a time seed")
	}
}

func TestFlagsWithoutWindow(t *testing.T) {
	fs := flag.NewFlagSet("plexus-term", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs, false)
	if err := fs.Parse([]string{"-width", "10"}); err == nil {
		t.Fatal("terminal flags should not accept -width")
	}
}

func TestFlagsRejectInvalidOverride(t *testing.T) {
	if _, err := parseFlags(t, false, "-tps", "-5").Settings(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := parseFlags(t, false, "-config", filepath.Join(t.TempDir(), "missing.toml")).Settings(); err == nil {
		t.Fatal("missing config file should fail")
	}
}
