package field

import (
	"io"
	"os"

	"github.com/goccy/go-json"
)

// ParticleView is the render-facing part of a particle
type ParticleView struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`
	ColorID int     `json:"colorId"`
}

// Point is a pointer position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is everything a renderer needs for one frame. It shares no
// memory with the Field.
type Snapshot struct {
	Particles    []ParticleView `json:"particles"`
	Links        []Link         `json:"links"`
	PointerLinks []PointerLink  `json:"pointerLinks"`
	Pointer      *Point         `json:"pointer"` // nil when absent
}

// Snapshot captures the current frame
func (f *Field) Snapshot() (Snapshot, error) {
	if err := f.check(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Particles: make([]ParticleView, len(f.particles)),
	}
	for i, p := range f.particles {
		snap.Particles[i] = ParticleView{
			X:       p.Pos.X,
			Y:       p.Pos.Y,
			Radius:  p.Radius,
			Opacity: p.Opacity,
			ColorID: p.ColorID,
		}
	}
	snap.Links = f.connections()
	snap.PointerLinks = f.pointerLinks()
	if f.pointerOn {
		snap.Pointer = &Point{X: f.pointer.X, Y: f.pointer.Y}
	}
	return snap, nil
}

// EncodeSnapshot writes snap as indented JSON
func EncodeSnapshot(w io.Writer, snap Snapshot) error {
	// Empty lists encode as [] rather than null
	if snap.Links == nil {
		snap.Links = []Link{}
	}
	if snap.PointerLinks == nil {
		snap.PointerLinks = []PointerLink{}
	}
	if snap.Particles == nil {
		snap.Particles = []ParticleView{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// SaveSnapshot writes snap to filename
func SaveSnapshot(filename string, snap Snapshot) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := EncodeSnapshot(file, snap); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
