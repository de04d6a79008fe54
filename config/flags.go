package config

import (
	"flag"
	"time"
)

// Flags are the command-line overrides shared by the plexus binaries. Any
// flag given explicitly beats the matching value of the -config file.
type Flags struct {
	fs *flag.FlagSet

	// Path names an optional TOML settings file.
	Path string

	seed          int64
	particles     int
	width, height int
	tps           float64
	dust          bool
}

// RegisterFlags defines the shared flags on fs. Window size flags are only
// added when window is set, since a terminal takes its size from the tty.
func RegisterFlags(fs *flag.FlagSet, window bool) *Flags {
	fl := &Flags{fs: fs}
	fs.StringVar(&fl.Path, "config", "", "path to a TOML settings file")
	fs.Int64Var(&fl.seed, "seed", 0, "random seed for particles and dust (0 = time based)")
	fs.IntVar(&fl.particles, "particles", 0, "number of particles")
	fs.Float64Var(&fl.tps, "tps", 0, "simulation ticks per second")
	fs.BoolVar(&fl.dust, "dust", true, "draw floating dust motes")
	if window {
		fs.IntVar(&fl.width, "width", 0, "initial window width")
		fs.IntVar(&fl.height, "height", 0, "initial window height")
	}
	return fl
}

// Settings loads the -config file, or the defaults, applies the flags that
// were set and validates the result. A zero seed becomes a time seed.
func (fl *Flags) Settings() (File, error) {
	settings := Default()
	if fl.Path != "" {
		var err error
		if settings, err = Load(fl.Path); err != nil {
			return File{}, err
		}
	}

	fl.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			settings.Field.Seed = fl.seed
		case "particles":
			settings.Field.Particles = fl.particles
		case "width":
			settings.Window.Width = fl.width
		case "height":
			settings.Window.Height = fl.height
		case "tps":
			settings.Window.TPS = fl.tps
		case "dust":
			settings.Dust.Enabled = fl.dust
		}
	})
	if err := settings.Validate(); err != nil {
		return File{}, err
	}

	if settings.Field.Seed == 0 {
		settings.Field.Seed = time.Now().UnixNano()
	}
	return settings, nil
}
