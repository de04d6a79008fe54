// Package render holds the colours and overlays shared by the plexus
// frontends, and draws field and dust snapshots onto a tcell terminal.
// Nothing here feeds back into the simulation.
package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Drawing constants
const (
	LinkAlpha        = 0.3 // Scales particle link strength
	PointerLinkAlpha = 0.6 // Scales pointer link strength
	LinkWidth        = 1.0
	PointerLinkWidth = 2.0
	CursorDotRadius  = 5.0
	CursorDotAlpha   = 0.8
	HaloRadius       = 15.0
	HaloAlpha        = 0.4
	GlowScale        = 2.5 // Glow radius relative to the particle
	GlowAlpha        = 0.25
	MoteAlpha        = 0.6
)

var (
	// Palette is indexed by field.ParticleView.ColorID
	Palette = []colorful.Color{
		colorful.MustParseHex("#007bff"),
		colorful.MustParseHex("#48dbfb"),
		colorful.MustParseHex("#00bfff"),
		colorful.MustParseHex("#00ffff"),
		colorful.MustParseHex("#64c8ff"),
	}

	LinkColor       = colorful.MustParseHex("#007bff")
	PointerColor    = colorful.MustParseHex("#48dbfb")
	MoteColor       = colorful.Color{R: 1, G: 1, B: 1}
	BackgroundColor = colorful.MustParseHex("#0a0e1a")
)

// ParticleColor returns the palette entry for id, wrapping out-of-range ids
func ParticleColor(id int) colorful.Color {
	n := len(Palette)
	return Palette[((id%n)+n)%n]
}

// WithAlpha converts c to a premultiplied color.RGBA at opacity a
func WithAlpha(c colorful.Color, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	c = c.Clamped()
	return color.RGBA{
		R: uint8(c.R*a*255 + 0.5),
		G: uint8(c.G*a*255 + 0.5),
		B: uint8(c.B*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Over flattens c at opacity a onto bg, for surfaces without alpha
func Over(c, bg colorful.Color, a float64) colorful.Color {
	a = math.Max(0, math.Min(1, a))
	return bg.BlendRgb(c, a).Clamped()
}
