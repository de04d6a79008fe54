package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivierh59500/plexus-field/field"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
	if got := Default().FieldConfig(); got != field.DefaultConfig() {
		t.Fatalf("default field config %+v differs from field.DefaultConfig()", got)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
[window]
width = 640
tps = 30.0

[field]
particles = 200
connection_distance = 90.5
seed = 42

[dust]
enabled = false
min_period = "10s"
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if f.Window.Width != 640 || f.Window.Height != 720 || f.Window.TPS != 30 {
		t.Errorf("window %+v", f.Window)
	}
	if f.Field.Particles != 200 || f.Field.ConnectionDistance != 90.5 || f.Field.Seed != 42 {
		t.Errorf("field %+v", f.Field)
	}
	if f.Field.InfluenceRadius != field.DefaultInfluenceRadius {
		t.Errorf("unset influence radius lost its default: %v", f.Field.InfluenceRadius)
	}
	if f.Dust.Enabled || time.Duration(f.Dust.MinPeriod) != 10*time.Second {
		t.Errorf("dust %+v", f.Dust)
	}
	if got := f.DustConfig().TPS; got != 30 {
		t.Errorf("dust tps %v should follow the window", got)
	}
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "[field]\nparticle_count = 3\n",
		"bad syntax":       "[field\n",
		"zero particles":   "[field]\nparticles = 0\n",
		"negative window":  "[window]\nwidth = -1\n",
		"bad duration":     "[dust]\nmin_period = \"soon\"\n",
		"inverted periods": "[dust]\nmin_period = \"40s\"\nmax_period = \"20s\"\n",
		"NaN tps":          "[window]\ntps = nan\n[dust]\nenabled = false\n",
		"infinite tps":     "[window]\ntps = inf\n[dust]\nenabled = false\n",
		"NaN sway":         "[dust]\nsway = nan\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestDisabledDustSkipsValidation(t *testing.T) {
	if _, err := Parse([]byte("[dust]\nenabled = false\ncount = 0\n")); err != nil {
		t.Fatalf("disabled dust should not be validated: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plexus.toml")
	if err := os.WriteFile(path, []byte("[field]\nparticles = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Field.Particles != 12 {
		t.Fatalf("particles = %d", f.Field.Particles)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}
}

func TestSampleFileParses(t *testing.T) {
	f, err := Load(filepath.Join("..", "plexus.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if f.FieldConfig() != field.DefaultConfig() {
		t.Fatalf("sample file drifted from the defaults: %+v", f.FieldConfig())
	}
}
