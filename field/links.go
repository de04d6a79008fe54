package field

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Link joins two particles closer than the connection distance, I < J
type Link struct {
	I        int     `json:"i"`
	J        int     `json:"j"`
	Strength float64 `json:"strength"` // (C-d)/C
}

// PointerLink joins the pointer to a particle inside the influence radius
type PointerLink struct {
	I        int     `json:"i"`
	Strength float64 `json:"strength"` // (R-d)/R
}

// Connections lists every particle pair closer than the connection
// distance, ordered by I then J.
func (f *Field) Connections() ([]Link, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.connections(), nil
}

// connections picks the grid above the threshold and the pair scan below it
func (f *Field) connections() []Link {
	if f.cfg.GridThreshold > 0 && len(f.particles) > f.cfg.GridThreshold {
		return f.gridConnections()
	}
	return f.pairConnections()
}

// pairConnections is the plain O(n²) scan
func (f *Field) pairConnections() []Link {
	c := f.cfg.ConnectionDistance
	var links []Link
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			d := r2.Norm(r2.Sub(f.particles[i].Pos, f.particles[j].Pos))
			if d < c {
				links = append(links, Link{I: i, J: j, Strength: (c - d) / c})
			}
		}
	}
	return links
}

// Bin for spatial partitioning: list of particle indices
type Bin []int

type binKey struct{ x, y int }

// buildBins assigns particles to square cells of the connection distance,
// so any linked pair sits in the same or an adjacent cell
func (f *Field) buildBins() map[binKey]Bin {
	size := f.cfg.ConnectionDistance
	bins := make(map[binKey]Bin)
	for i, p := range f.particles {
		key := binKey{int(math.Floor(p.Pos.X / size)), int(math.Floor(p.Pos.Y / size))}
		bins[key] = append(bins[key], i)
	}
	return bins
}

// gridConnections checks each particle against its 3x3 cell neighbourhood
func (f *Field) gridConnections() []Link {
	c := f.cfg.ConnectionDistance
	bins := f.buildBins()

	var links []Link
	for key, bin := range bins {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				nBin, ok := bins[binKey{key.x + dx, key.y + dy}]
				if !ok {
					continue
				}
				for _, i := range bin {
					for _, j := range nBin {
						if j <= i {
							continue
						}
						d := r2.Norm(r2.Sub(f.particles[i].Pos, f.particles[j].Pos))
						if d < c {
							links = append(links, Link{I: i, J: j, Strength: (c - d) / c})
						}
					}
				}
			}
		}
	}

	sort.Slice(links, func(a, b int) bool {
		if links[a].I != links[b].I {
			return links[a].I < links[b].I
		}
		return links[a].J < links[b].J
	})
	return links
}

// PointerLinks lists the particles inside the influence radius of the
// pointer. It is empty while the pointer is absent.
func (f *Field) PointerLinks() ([]PointerLink, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.pointerLinks(), nil
}

func (f *Field) pointerLinks() []PointerLink {
	if !f.pointerOn {
		return nil
	}
	r := f.cfg.InfluenceRadius
	var links []PointerLink
	for i, p := range f.particles {
		d := r2.Norm(r2.Sub(f.pointer, p.Pos))
		if d < r {
			links = append(links, PointerLink{I: i, Strength: (r - d) / r})
		}
	}
	return links
}
