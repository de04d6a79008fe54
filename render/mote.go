package render

import (
	"math"

	"github.com/olivierh59500/plexus-field/dust"
)

// GlintLength is the spinning streak across a mote, relative to its size
const GlintLength = 1.5

// Glint returns the ends of the streak drawn through m, turned by its rotation
func Glint(m dust.MoteView) (x0, y0, x1, y1 float64) {
	half := m.Size * GlintLength / 2
	dx, dy := half*math.Cos(m.Rotation), half*math.Sin(m.Rotation)
	return m.X - dx, m.Y - dy, m.X + dx, m.Y + dy
}
