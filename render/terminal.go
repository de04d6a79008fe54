package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/plexus-field/dust"
	"github.com/olivierh59500/plexus-field/field"
)

// Field units covered by one terminal cell. Cells are twice as tall as wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Terminal glyphs
const (
	glyphLink        = '·'
	glyphPointerLink = '∙'
	glyphSmall       = '•'
	glyphLarge       = '●'
	glyphPointer     = '+'
	glyphMote        = '.'
	largeRadius      = 2.5
)

// Terminal draws snapshots onto a tcell screen
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal wraps screen
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// FieldSize returns the field bounds matching the current screen size
func (t *Terminal) FieldSize() (float64, float64) {
	cols, rows := t.screen.Size()
	return float64(cols) * CellWidth, float64(rows) * CellHeight
}

// CellAt maps a field point to a cell
func CellAt(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// FieldPoint maps a cell to the field point at its centre
func FieldPoint(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

func style(c colorful.Color) tcell.Style {
	r, g, b := c.RGB255()
	br, bg, bb := BackgroundColor.RGB255()
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b))).
		Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
}

// set writes a glyph at a field point. Points on the far edge land in the
// last cell; anything else off screen is dropped.
func (t *Terminal) set(x, y float64, glyph rune, st tcell.Style) {
	cols, rows := t.screen.Size()
	col, row := CellAt(x, y)
	if col == cols {
		col--
	}
	if row == rows {
		row--
	}
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	t.screen.SetContent(col, row, glyph, nil, st)
}

// line draws a Bresenham line between the cells of two points, leaving the
// end cells to the particles
func (t *Terminal) line(x0, y0, x1, y1 float64, glyph rune, st tcell.Style) {
	cols, rows := t.screen.Size()
	c0, r0 := CellAt(x0, y0)
	c1, r1 := CellAt(x1, y1)

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr

	c, r := c0, r0
	for c != c1 || r != r1 {
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c += sc
		}
		if e2 <= dc {
			e += dc
			r += sr
		}
		if (c == c1 && r == r1) || c < 0 || r < 0 || c >= cols || r >= rows {
			continue
		}
		t.screen.SetContent(c, r, glyph, nil, st)
	}
}

// Draw renders one frame and shows it
func (t *Terminal) Draw(snap field.Snapshot, motes []dust.MoteView) {
	bg := style(BackgroundColor)
	t.screen.SetStyle(bg)
	t.screen.Clear()

	for _, m := range motes {
		t.set(m.X, m.Y, glyphMote, style(Over(MoteColor, BackgroundColor, m.Opacity*MoteAlpha)))
	}

	// Terminals have no translucency, so links are blended at full strength
	for _, l := range snap.Links {
		a, b := snap.Particles[l.I], snap.Particles[l.J]
		t.line(a.X, a.Y, b.X, b.Y, glyphLink, style(Over(LinkColor, BackgroundColor, l.Strength)))
	}

	if snap.Pointer != nil {
		for _, l := range snap.PointerLinks {
			p := snap.Particles[l.I]
			t.line(p.X, p.Y, snap.Pointer.X, snap.Pointer.Y, glyphPointerLink, style(Over(PointerColor, BackgroundColor, l.Strength)))
		}
	}

	for _, p := range snap.Particles {
		glyph := glyphSmall
		if p.Radius >= largeRadius {
			glyph = glyphLarge
		}
		// Opacity tops out at 0.7, stretch it so particles stay readable
		t.set(p.X, p.Y, glyph, style(Over(ParticleColor(p.ColorID), BackgroundColor, 0.3+p.Opacity)))
	}

	if snap.Pointer != nil {
		t.set(snap.Pointer.X, snap.Pointer.Y, glyphPointer, style(PointerColor).Bold(true))
	}

	t.screen.Show()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
