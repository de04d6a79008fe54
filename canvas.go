package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/plexus-field/dust"
	"github.com/olivierh59500/plexus-field/field"
	"github.com/olivierh59500/plexus-field/render"
)

// Canvas draws snapshots into an ebiten image, back to front: dust, links,
// particles, pointer links, cursor.
type Canvas struct {
	Halo *render.Halo
}

// NewCanvas returns a canvas whose halo springs at tps
func NewCanvas(tps int) *Canvas {
	return &Canvas{Halo: render.NewHalo(tps)}
}

// Observe feeds one simulated tick to the animated overlays
func (c *Canvas) Observe(snap field.Snapshot) {
	c.Halo.Update(snap.Pointer)
}

// Draw renders snap and motes onto screen. motes may be nil.
func (c *Canvas) Draw(screen *ebiten.Image, snap field.Snapshot, motes []dust.MoteView) {
	screen.Fill(render.BackgroundColor)

	for _, m := range motes {
		clr := render.WithAlpha(render.MoteColor, m.Opacity*render.MoteAlpha)
		vector.DrawFilledCircle(screen, float32(m.X), float32(m.Y), float32(m.Size/2), clr, true)
		x0, y0, x1, y1 := render.Glint(m)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
	}

	for _, l := range snap.Links {
		a, b := snap.Particles[l.I], snap.Particles[l.J]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), render.LinkWidth, render.WithAlpha(render.LinkColor, l.Strength*render.LinkAlpha), true)
	}

	for _, p := range snap.Particles {
		col := render.ParticleColor(p.ColorID)
		// Glow
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius*render.GlowScale), render.WithAlpha(col, p.Opacity*render.GlowAlpha), true)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), render.WithAlpha(col, p.Opacity), true)
	}

	if snap.Pointer != nil {
		px, py := float32(snap.Pointer.X), float32(snap.Pointer.Y)
		for _, l := range snap.PointerLinks {
			p := snap.Particles[l.I]
			vector.StrokeLine(screen, float32(p.X), float32(p.Y), px, py, render.PointerLinkWidth, render.WithAlpha(render.PointerColor, l.Strength*render.PointerLinkAlpha), true)
		}
		vector.DrawFilledCircle(screen, px, py, render.CursorDotRadius, render.WithAlpha(render.PointerColor, render.CursorDotAlpha), true)
	}

	if c.Halo != nil && c.Halo.Visible() {
		center := c.Halo.Center()
		vector.StrokeCircle(screen, float32(center.X), float32(center.Y), float32(c.Halo.Radius()), 1, render.WithAlpha(render.PointerColor, render.HaloAlpha), true)
	}
}
