// Package field implements the plexus particle field: a fixed set of
// particles drifting inside a bounded plane, pushed away from a pointer,
// reflecting off the bounds and linked to their near neighbours.
//
// A Field is not safe for concurrent use. It is meant to be owned by a
// single loop that feeds it bounds and pointer updates between ticks.
package field

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is the full mutable state of one particle
type Particle struct {
	Pos      r2.Vec
	Vel      r2.Vec
	Baseline r2.Vec // Drift target, flipped on bounce
	Radius   float64
	Opacity  float64
	ColorID  int
}

// Field owns the particles, the bounds and the pointer
type Field struct {
	cfg           Config
	particles     []Particle
	width, height float64
	pointer       r2.Vec
	pointerOn     bool
	destroyed     bool
}

// New creates a field of cfg.ParticleCount randomised particles. rng is the
// source of every random attribute; nil means a time-seeded generator.
func New(width, height float64, cfg Config, rng *rand.Rand) (*Field, error) {
	if err := validBounds(width, height); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f := newField(width, height, cfg)
	f.particles = make([]Particle, cfg.ParticleCount)
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos = r2.Vec{X: rng.Float64() * width, Y: rng.Float64() * height}
		p.Vel = r2.Vec{X: f.drift(rng), Y: f.drift(rng)}
		p.Radius = cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius)
		p.Opacity = cfg.MinOpacity + rng.Float64()*(cfg.MaxOpacity-cfg.MinOpacity)
		p.ColorID = rng.Intn(cfg.PaletteSize)
		p.Baseline = r2.Vec{X: f.drift(rng), Y: f.drift(rng)}
	}
	return f, nil
}

// NewSeeded is New with a generator seeded from seed.
func NewSeeded(width, height float64, cfg Config, seed int64) (*Field, error) {
	return New(width, height, cfg, rand.New(rand.NewSource(seed)))
}

// NewWithParticles builds a field from explicit particle state. The particle
// count of cfg is replaced by len(particles).
func NewWithParticles(width, height float64, cfg Config, particles []Particle) (*Field, error) {
	if err := validBounds(width, height); err != nil {
		return nil, err
	}
	cfg.ParticleCount = len(particles)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, p := range particles {
		if !finite(p.Pos.X) || !finite(p.Pos.Y) || !finite(p.Vel.X) || !finite(p.Vel.Y) ||
			!finite(p.Baseline.X) || !finite(p.Baseline.Y) {
			return nil, fmt.Errorf("%w: particle %d has non-finite state", ErrInvalidArgument, i)
		}
		if p.ColorID < 0 || p.ColorID >= cfg.PaletteSize {
			return nil, fmt.Errorf("%w: particle %d colour %d outside palette", ErrInvalidArgument, i, p.ColorID)
		}
	}

	f := newField(width, height, cfg)
	f.particles = append([]Particle(nil), particles...)
	return f, nil
}

func newField(width, height float64, cfg Config) *Field {
	return &Field{
		cfg:     cfg,
		width:   width,
		height:  height,
		pointer: r2.Vec{X: PointerSentinel, Y: PointerSentinel},
	}
}

func (f *Field) drift(rng *rand.Rand) float64 {
	return (rng.Float64()*2 - 1) * f.cfg.Drift
}

func (f *Field) check() error {
	if f == nil || f.destroyed {
		return ErrInvalidState
	}
	return nil
}

// Alive reports whether the field can still be stepped
func (f *Field) Alive() bool {
	return f.check() == nil
}

// Config returns the settings the field was built with
func (f *Field) Config() Config {
	if f == nil {
		return Config{}
	}
	return f.cfg
}

// Len returns the particle count, zero once destroyed
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.particles)
}

// Bounds returns the current width and height
func (f *Field) Bounds() (float64, float64) {
	if f == nil {
		return 0, 0
	}
	return f.width, f.height
}

// Pointer returns the pointer position and whether it is present
func (f *Field) Pointer() (r2.Vec, bool) {
	if f == nil {
		return r2.Vec{X: PointerSentinel, Y: PointerSentinel}, false
	}
	return f.pointer, f.pointerOn
}

// Particles returns a copy of the particle state
func (f *Field) Particles() ([]Particle, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return append([]Particle(nil), f.particles...), nil
}

// SetBounds stores new bounds. Particles are only clamped on the next Step.
func (f *Field) SetBounds(width, height float64) error {
	if err := f.check(); err != nil {
		return err
	}
	if err := validBounds(width, height); err != nil {
		return err
	}
	f.width, f.height = width, height
	return nil
}

// SetPointer moves the repulsion point. Any finite position is accepted;
// positions far outside the bounds simply influence nothing.
func (f *Field) SetPointer(x, y float64) error {
	if err := f.check(); err != nil {
		return err
	}
	if !finite(x) || !finite(y) {
		return fmt.Errorf("%w: pointer (%v,%v)", ErrInvalidArgument, x, y)
	}
	f.pointer = r2.Vec{X: x, Y: y}
	f.pointerOn = true
	return nil
}

// ClearPointer parks the pointer at the sentinel so no particle is influenced
func (f *Field) ClearPointer() error {
	if err := f.check(); err != nil {
		return err
	}
	f.pointer = r2.Vec{X: PointerSentinel, Y: PointerSentinel}
	f.pointerOn = false
	return nil
}

// Step advances the simulation by one tick
func (f *Field) Step() error {
	if err := f.check(); err != nil {
		return err
	}

	r := f.cfg.InfluenceRadius
	for i := range f.particles {
		p := &f.particles[i]

		// Pointer repulsion, otherwise relax toward the baseline drift
		toPointer := r2.Sub(f.pointer, p.Pos)
		d := r2.Norm(toPointer)
		if f.pointerOn && d < r {
			force := (r - d) / r
			dir := r2.Vec{X: 1, Y: 0} // Pointer on top of the particle
			if d > 0 {
				dir = r2.Scale(1/d, toPointer)
			}
			p.Vel = r2.Sub(p.Vel, r2.Scale(f.cfg.Coupling*force, dir))
		} else {
			p.Vel = r2.Add(p.Vel, r2.Scale(f.cfg.Damping, r2.Sub(p.Baseline, p.Vel)))
		}

		p.Pos = r2.Add(p.Pos, p.Vel)

		// Bounce: the baseline flips too, so the drift direction stays reversed
		if p.Pos.X < 0 || p.Pos.X > f.width {
			p.Vel.X = -p.Vel.X
			p.Baseline.X = -p.Baseline.X
		}
		if p.Pos.Y < 0 || p.Pos.Y > f.height {
			p.Vel.Y = -p.Vel.Y
			p.Baseline.Y = -p.Baseline.Y
		}

		p.Pos.X = math.Max(0, math.Min(f.width, p.Pos.X))
		p.Pos.Y = math.Max(0, math.Min(f.height, p.Pos.Y))
	}
	return nil
}

// Destroy releases every particle. Calling it again is a no-op.
func (f *Field) Destroy() {
	if f == nil || f.destroyed {
		return
	}
	f.destroyed = true
	f.particles = nil
	f.pointerOn = false
}
