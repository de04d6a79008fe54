package render

import (
	"github.com/charmbracelet/harmonica"

	"github.com/olivierh59500/plexus-field/field"
)

// Halo spring tuning
const (
	haloFrequency = 6.0
	haloDamping   = 0.6
	haloRest      = 0.05 // Below this the ring is not drawn
)

// Halo tracks the ring drawn around the pointer. The ring springs open when
// the pointer enters and collapses in place when it leaves.
type Halo struct {
	spring   harmonica.Spring
	radius   float64
	velocity float64
	pos      field.Point
}

// NewHalo returns a closed halo updated tps times a second
func NewHalo(tps int) *Halo {
	if tps <= 0 {
		tps = 60
	}
	return &Halo{spring: harmonica.NewSpring(harmonica.FPS(tps), haloFrequency, haloDamping)}
}

// Update advances the spring one tick toward the state of pointer
func (h *Halo) Update(pointer *field.Point) {
	target := 0.0
	if pointer != nil {
		target = HaloRadius
		h.pos = *pointer
	}
	h.radius, h.velocity = h.spring.Update(h.radius, h.velocity, target)
}

// Radius returns the current ring radius
func (h *Halo) Radius() float64 {
	return h.radius
}

// Center returns where the ring is drawn, the last known pointer position
func (h *Halo) Center() field.Point {
	return h.pos
}

// Visible reports whether the ring is open enough to draw
func (h *Halo) Visible() bool {
	return h.radius > haloRest
}
