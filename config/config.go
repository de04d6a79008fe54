// Package config loads the optional TOML settings file of the plexus
// binaries. Every key is optional; missing keys keep their defaults.
//
//	[window]
//	width = 1280
//	height = 720
//	tps = 60.0
//
//	[field]
//	particles = 80
//	influence_radius = 100.0
//	connection_distance = 120.0
//	seed = 42
//
//	[dust]
//	enabled = true
//	count = 50
//	min_period = "15s"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/olivierh59500/plexus-field/dust"
	"github.com/olivierh59500/plexus-field/field"
)

var ErrInvalid = errors.New("config: invalid")

// Duration is a time.Duration written as a string such as "15s"
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Window is the drawing surface and frame rate
type Window struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	TPS    float64 `toml:"tps"`
	Title  string  `toml:"title"`
}

// Field mirrors field.Config, plus the seed
type Field struct {
	Particles          int     `toml:"particles"`
	InfluenceRadius    float64 `toml:"influence_radius"`
	Coupling           float64 `toml:"coupling"`
	Damping            float64 `toml:"damping"`
	ConnectionDistance float64 `toml:"connection_distance"`
	Drift              float64 `toml:"drift"`
	MinRadius          float64 `toml:"min_radius"`
	MaxRadius          float64 `toml:"max_radius"`
	MinOpacity         float64 `toml:"min_opacity"`
	MaxOpacity         float64 `toml:"max_opacity"`
	GridThreshold      int     `toml:"grid_threshold"`
	Seed               int64   `toml:"seed"` // 0 picks a time seed
}

// Dust mirrors dust.Config
type Dust struct {
	Enabled    bool     `toml:"enabled"`
	Count      int      `toml:"count"`
	MinSize    float64  `toml:"min_size"`
	MaxSize    float64  `toml:"max_size"`
	MinOpacity float64  `toml:"min_opacity"`
	MaxOpacity float64  `toml:"max_opacity"`
	MinPeriod  Duration `toml:"min_period"`
	MaxPeriod  Duration `toml:"max_period"`
	Sway       float64  `toml:"sway"`
}

// File is the whole settings document
type File struct {
	Window Window `toml:"window"`
	Field  Field  `toml:"field"`
	Dust   Dust   `toml:"dust"`
}

// Default returns the settings used when no file is given
func Default() File {
	fc := field.DefaultConfig()
	dc := dust.DefaultConfig()
	return File{
		Window: Window{Width: 1280, Height: 720, TPS: 60, Title: "Plexus Field"},
		Field: Field{
			Particles:          fc.ParticleCount,
			InfluenceRadius:    fc.InfluenceRadius,
			Coupling:           fc.Coupling,
			Damping:            fc.Damping,
			ConnectionDistance: fc.ConnectionDistance,
			Drift:              fc.Drift,
			MinRadius:          fc.MinRadius,
			MaxRadius:          fc.MaxRadius,
			MinOpacity:         fc.MinOpacity,
			MaxOpacity:         fc.MaxOpacity,
			GridThreshold:      fc.GridThreshold,
		},
		Dust: Dust{
			Enabled:    true,
			Count:      dc.Count,
			MinSize:    dc.MinSize,
			MaxSize:    dc.MaxSize,
			MinOpacity: dc.MinOpacity,
			MaxOpacity: dc.MaxOpacity,
			MinPeriod:  Duration(dc.MinPeriod),
			MaxPeriod:  Duration(dc.MaxPeriod),
			Sway:       dc.Sway,
		},
	}
}

// Parse decodes data over the defaults. Unknown keys are an error.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return File{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return File{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads and parses the file at path
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks the window and delegates the rest to the packages that own
// the settings
func (f File) Validate() error {
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, f.Window.Width, f.Window.Height)
	}
	if f.Window.TPS <= 0 || math.IsNaN(f.Window.TPS) || math.IsInf(f.Window.TPS, 0) {
		return fmt.Errorf("%w: tps %v", ErrInvalid, f.Window.TPS)
	}
	if err := f.FieldConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if f.Dust.Enabled {
		if err := f.DustConfig().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}

// FieldConfig converts the [field] table
func (f File) FieldConfig() field.Config {
	cfg := field.DefaultConfig()
	cfg.ParticleCount = f.Field.Particles
	cfg.InfluenceRadius = f.Field.InfluenceRadius
	cfg.Coupling = f.Field.Coupling
	cfg.Damping = f.Field.Damping
	cfg.ConnectionDistance = f.Field.ConnectionDistance
	cfg.Drift = f.Field.Drift
	cfg.MinRadius = f.Field.MinRadius
	cfg.MaxRadius = f.Field.MaxRadius
	cfg.MinOpacity = f.Field.MinOpacity
	cfg.MaxOpacity = f.Field.MaxOpacity
	cfg.GridThreshold = f.Field.GridThreshold
	return cfg
}

// DustConfig converts the [dust] table
func (f File) DustConfig() dust.Config {
	cfg := dust.DefaultConfig()
	cfg.Count = f.Dust.Count
	cfg.MinSize = f.Dust.MinSize
	cfg.MaxSize = f.Dust.MaxSize
	cfg.MinOpacity = f.Dust.MinOpacity
	cfg.MaxOpacity = f.Dust.MaxOpacity
	cfg.MinPeriod = time.Duration(f.Dust.MinPeriod)
	cfg.MaxPeriod = time.Duration(f.Dust.MaxPeriod)
	cfg.Sway = f.Dust.Sway
	cfg.TPS = f.Window.TPS
	return cfg
}
