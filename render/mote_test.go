package render

import (
	"math"
	"testing"

	"github.com/olivierh59500/plexus-field/dust"
)

func TestGlintTurnsWithRotation(t *testing.T) {
	tests := []struct {
		rotation       float64
		x0, y0, x1, y1 float64
	}{
		{0, 7, 10, 13, 10},
		{math.Pi / 2, 10, 7, 10, 13},
		{math.Pi, 13, 10, 7, 10},
	}
	for _, tt := range tests {
		x0, y0, x1, y1 := Glint(dust.MoteView{X: 10, Y: 10, Size: 4, Rotation: tt.rotation})
		got := []float64{x0, y0, x1, y1}
		want := []float64{tt.x0, tt.y0, tt.x1, tt.y1}
		for i := range got {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Errorf("rotation %v: glint %v, want %v", tt.rotation, got, want)
				break
			}
		}
	}
}
