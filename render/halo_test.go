package render

import (
	"math"
	"testing"

	"github.com/olivierh59500/plexus-field/field"
)

func TestHaloOpensAndCloses(t *testing.T) {
	h := NewHalo(60)
	if h.Visible() {
		t.Fatal("new halo should be closed")
	}

	pointer := &field.Point{X: 40, Y: 30}
	for i := 0; i < 300; i++ {
		h.Update(pointer)
	}
	if math.Abs(h.Radius()-HaloRadius) > 0.01 {
		t.Fatalf("radius %v did not settle at %v", h.Radius(), HaloRadius)
	}
	if !h.Visible() {
		t.Fatal("open halo should be visible")
	}

	for i := 0; i < 300; i++ {
		h.Update(nil)
	}
	if h.Visible() {
		t.Fatalf("halo still open at radius %v", h.Radius())
	}
	if h.Center() != *pointer {
		t.Fatalf("halo should collapse where the pointer left, got %+v", h.Center())
	}
}

func TestHaloSpringsRatherThanSnaps(t *testing.T) {
	h := NewHalo(60)
	h.Update(&field.Point{X: 1, Y: 1})
	if h.Radius() <= 0 || h.Radius() >= HaloRadius {
		t.Fatalf("one tick should open the halo part way, got %v", h.Radius())
	}
}
