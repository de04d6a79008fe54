package field

import (
	"fmt"
	"math"
)

// Field defaults
const (
	DefaultParticleCount      = 80
	DefaultInfluenceRadius    = 100.0
	DefaultCoupling           = 0.02
	DefaultDamping            = 0.02
	DefaultConnectionDistance = 120.0
	DefaultDrift              = 0.25 // Max baseline speed per axis, units/tick
	DefaultMinRadius          = 1.0
	DefaultMaxRadius          = 4.0
	DefaultMinOpacity         = 0.2
	DefaultMaxOpacity         = 0.7
	DefaultPaletteSize        = 5
	DefaultGridThreshold      = 300 // Above this count links are found through the grid

	// PointerSentinel is where an absent pointer is parked, far outside any canvas
	PointerSentinel = -1000.0
)

// Config holds the tunables of a Field. All of them are fixed at construction.
type Config struct {
	ParticleCount      int
	InfluenceRadius    float64 // R: pointer repulsion radius
	Coupling           float64 // k: repulsion strength
	Damping            float64 // d_f: relaxation fraction per tick
	ConnectionDistance float64 // C: max link distance
	Drift              float64
	MinRadius          float64
	MaxRadius          float64
	MinOpacity         float64
	MaxOpacity         float64
	PaletteSize        int
	GridThreshold      int // <= 0 disables the grid
}

// DefaultConfig returns the stock plexus background settings.
func DefaultConfig() Config {
	return Config{
		ParticleCount:      DefaultParticleCount,
		InfluenceRadius:    DefaultInfluenceRadius,
		Coupling:           DefaultCoupling,
		Damping:            DefaultDamping,
		ConnectionDistance: DefaultConnectionDistance,
		Drift:              DefaultDrift,
		MinRadius:          DefaultMinRadius,
		MaxRadius:          DefaultMaxRadius,
		MinOpacity:         DefaultMinOpacity,
		MaxOpacity:         DefaultMaxOpacity,
		PaletteSize:        DefaultPaletteSize,
		GridThreshold:      DefaultGridThreshold,
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.ParticleCount <= 0:
		return fmt.Errorf("%w: particle count %d must be positive", ErrInvalidArgument, c.ParticleCount)
	case !positive(c.InfluenceRadius):
		return fmt.Errorf("%w: influence radius %v must be positive", ErrInvalidArgument, c.InfluenceRadius)
	case !positive(c.ConnectionDistance):
		return fmt.Errorf("%w: connection distance %v must be positive", ErrInvalidArgument, c.ConnectionDistance)
	case !finite(c.Coupling) || c.Coupling < 0:
		return fmt.Errorf("%w: coupling %v must be non-negative", ErrInvalidArgument, c.Coupling)
	case !finite(c.Damping) || c.Damping <= 0 || c.Damping > 1:
		return fmt.Errorf("%w: damping %v must be in (0,1]", ErrInvalidArgument, c.Damping)
	case !finite(c.Drift) || c.Drift < 0:
		return fmt.Errorf("%w: drift %v must be non-negative", ErrInvalidArgument, c.Drift)
	case !positive(c.MinRadius) || !finite(c.MaxRadius) || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("%w: radius range [%v,%v]", ErrInvalidArgument, c.MinRadius, c.MaxRadius)
	case !positive(c.MinOpacity) || !finite(c.MaxOpacity) || c.MaxOpacity >= 1 || c.MaxOpacity < c.MinOpacity:
		return fmt.Errorf("%w: opacity range [%v,%v] must lie in (0,1)", ErrInvalidArgument, c.MinOpacity, c.MaxOpacity)
	case c.PaletteSize <= 0:
		return fmt.Errorf("%w: palette size %d must be positive", ErrInvalidArgument, c.PaletteSize)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func validBounds(width, height float64) error {
	if !finite(width) || !finite(height) || width < 0 || height < 0 {
		return fmt.Errorf("%w: bounds %vx%v", ErrInvalidArgument, width, height)
	}
	return nil
}
