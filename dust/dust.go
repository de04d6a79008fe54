// Package dust animates the faint motes that float up through the plexus
// background. Each mote rises from the bottom edge to just past the top over
// its own period, fading in and out and swaying sideways along a Perlin
// noise curve.
package dust

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
)

var (
	ErrInvalidState    = errors.New("dust: invalid state")
	ErrInvalidArgument = errors.New("dust: invalid argument")
)

// Perlin parameters for the sideways sway
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	swayFreq    = 2.0 // Noise units travelled per cycle
	fadeSpan    = 0.1 // Fraction of the cycle spent fading in, and out
)

// Config holds the cloud settings
type Config struct {
	Count      int
	MinSize    float64
	MaxSize    float64
	MinOpacity float64
	MaxOpacity float64
	MinPeriod  time.Duration
	MaxPeriod  time.Duration
	Sway       float64 // Max sideways offset
	Overshoot  float64 // How far past the top a mote travels
	TPS        float64 // Ticks per second of the driving loop
}

// DefaultConfig matches the original overlay: 50 motes, 15-35 s per rise
func DefaultConfig() Config {
	return Config{
		Count:      50,
		MinSize:    1,
		MaxSize:    5,
		MinOpacity: 0.2,
		MaxOpacity: 0.8,
		MinPeriod:  15 * time.Second,
		MaxPeriod:  35 * time.Second,
		Sway:       50,
		Overshoot:  100,
		TPS:        60,
	}
}

// Validate reports the first out-of-range setting
func (c Config) Validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("%w: count %d must be positive", ErrInvalidArgument, c.Count)
	case !finite(c.MinSize, c.MaxSize, c.MinOpacity, c.MaxOpacity, c.Sway, c.Overshoot):
		return fmt.Errorf("%w: settings must be finite", ErrInvalidArgument)
	case c.MinSize <= 0 || c.MaxSize < c.MinSize:
		return fmt.Errorf("%w: size range [%v,%v]", ErrInvalidArgument, c.MinSize, c.MaxSize)
	case c.MinOpacity <= 0 || c.MaxOpacity > 1 || c.MaxOpacity < c.MinOpacity:
		return fmt.Errorf("%w: opacity range [%v,%v]", ErrInvalidArgument, c.MinOpacity, c.MaxOpacity)
	case c.MinPeriod <= 0 || c.MaxPeriod < c.MinPeriod:
		return fmt.Errorf("%w: period range [%v,%v]", ErrInvalidArgument, c.MinPeriod, c.MaxPeriod)
	case c.TPS <= 0 || math.IsInf(c.TPS, 0) || math.IsNaN(c.TPS):
		return fmt.Errorf("%w: tps %v", ErrInvalidArgument, c.TPS)
	case c.Sway < 0 || c.Overshoot < 0:
		return fmt.Errorf("%w: sway %v overshoot %v", ErrInvalidArgument, c.Sway, c.Overshoot)
	}
	return nil
}

// Mote is one floating speck
type Mote struct {
	Anchor  float64 // Horizontal position as a fraction of the width
	Phase   float64 // Progress through the current rise, [0,1)
	Rate    float64 // Phase advance per tick
	Size    float64
	Opacity float64
	Offset  float64 // Start point on the noise curve
}

// MoteView is the render-facing state of a mote
type MoteView struct {
	X, Y     float64
	Size     float64
	Opacity  float64
	Rotation float64 // Radians, one full turn per rise
}

// Cloud owns the motes
type Cloud struct {
	cfg           Config
	motes         []Mote
	noise         *perlin.Perlin
	width, height float64
	destroyed     bool
}

// New scatters cfg.Count motes at random points of their cycle. rng nil
// means a time-seeded generator.
func New(width, height float64, cfg Config, rng *rand.Rand) (*Cloud, error) {
	if err := validBounds(width, height); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Cloud{
		cfg:    cfg,
		motes:  make([]Mote, cfg.Count),
		noise:  perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, rng.Int63()),
		width:  width,
		height: height,
	}
	for i := range c.motes {
		period := cfg.MinPeriod + time.Duration(rng.Float64()*float64(cfg.MaxPeriod-cfg.MinPeriod))
		c.motes[i] = Mote{
			Anchor:  rng.Float64(),
			Phase:   rng.Float64(),
			Rate:    1 / (period.Seconds() * cfg.TPS),
			Size:    cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize),
			Opacity: cfg.MinOpacity + rng.Float64()*(cfg.MaxOpacity-cfg.MinOpacity),
			Offset:  rng.Float64() * 100,
		}
	}
	return c, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validBounds(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) ||
		width < 0 || height < 0 {
		return fmt.Errorf("%w: bounds %vx%v", ErrInvalidArgument, width, height)
	}
	return nil
}

func (c *Cloud) check() error {
	if c == nil || c.destroyed {
		return ErrInvalidState
	}
	return nil
}

// Len returns the mote count
func (c *Cloud) Len() int {
	if c == nil {
		return 0
	}
	return len(c.motes)
}

// SetBounds stores the area the motes rise through
func (c *Cloud) SetBounds(width, height float64) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := validBounds(width, height); err != nil {
		return err
	}
	c.width, c.height = width, height
	return nil
}

// Step advances every mote by one tick, restarting finished rises at the bottom
func (c *Cloud) Step() error {
	if err := c.check(); err != nil {
		return err
	}
	for i := range c.motes {
		m := &c.motes[i]
		m.Phase += m.Rate
		if m.Phase >= 1 {
			m.Phase -= math.Floor(m.Phase)
		}
	}
	return nil
}

// Snapshot returns the current mote positions
func (c *Cloud) Snapshot() ([]MoteView, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	views := make([]MoteView, len(c.motes))
	for i, m := range c.motes {
		views[i] = MoteView{
			X:        m.Anchor*c.width + c.cfg.Sway*c.noise.Noise1D(m.Offset+m.Phase*swayFreq),
			Y:        c.height - m.Phase*(c.height+c.cfg.Overshoot),
			Size:     m.Size,
			Opacity:  m.Opacity * envelope(m.Phase),
			Rotation: m.Phase * 2 * math.Pi,
		}
	}
	return views, nil
}

// envelope fades a mote in over the first tenth of its rise and out over the last
func envelope(phase float64) float64 {
	switch {
	case phase < fadeSpan:
		return phase / fadeSpan
	case phase > 1-fadeSpan:
		return (1 - phase) / fadeSpan
	}
	return 1
}

// Destroy drops every mote. Safe to call twice.
func (c *Cloud) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.destroyed = true
	c.motes = nil
}
