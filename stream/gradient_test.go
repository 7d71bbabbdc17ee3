package stream

import (
	"math"
	"math/rand"
	"testing"

	"github.com/matt-g-everett/afterimage/trail"
)

func TestRandomColoursAreOpaqueAndSeeded(t *testing.T) {
	a := NewRandomColours(rand.New(rand.NewSource(7)))
	b := NewRandomColours(rand.New(rand.NewSource(7)))
	for i := 0; i < 20; i++ {
		ca, cb := a.Next(), b.Next()
		if ca != cb {
			t.Fatalf("colour %d differs between equal seeds: %+v %+v", i, ca, cb)
		}
		if ca.A != 255 {
			t.Fatalf("colour %d alpha = %d", i, ca.A)
		}
	}
}

func TestGradientColoursWrap(t *testing.T) {
	g := NewGradientColours(RainbowGradient, 4)
	first := g.Next()
	for i := 0; i < 3; i++ {
		if c := g.Next(); c.A != 255 {
			t.Fatalf("alpha = %d", c.A)
		}
	}
	if again := g.Next(); again != first {
		t.Errorf("after a full cycle got %+v, want %+v", again, first)
	}
}

func TestGradientTablePastEnd(t *testing.T) {
	c := RainbowGradient.GetColor(1.5, 0.8, 0.6)
	h, _, _ := c.Hcl()
	if math.Abs(h-360) > 1 && h > 1 {
		t.Errorf("hue past the end = %v, want the last keypoint", h)
	}
}

func TestShapeSelector(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if k := NewShapeSelector("rectangle", rng).Next(); k != trail.KindRectangle {
		t.Errorf("rectangle selector gave %v", k)
	}
	if k := NewShapeSelector("", rng).Next(); k != trail.KindEllipse {
		t.Errorf("default selector gave %v", k)
	}

	seen := map[trail.Kind]bool{}
	random := NewShapeSelector("random", rng)
	for i := 0; i < 100; i++ {
		k := random.Next()
		if k != trail.KindEllipse && k != trail.KindCircle && k != trail.KindRectangle {
			t.Fatalf("random selector gave %v", k)
		}
		seen[k] = true
	}
	if len(seen) != 3 {
		t.Errorf("random selector only produced %v", seen)
	}
}

func TestOrbitOffsets(t *testing.T) {
	still := NewOrbit(400, 200, 0)
	if p := still.Offset(12345); p != (trail.Point{X: 200, Y: 0}) {
		t.Errorf("static orbit = %+v", p)
	}

	moving := NewOrbit(400, 200, 1000)
	// Half way through the eased cycle is half way round the ellipse.
	p := moving.Offset(1500)
	if math.Abs(p.X+200) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("half period offset = %+v, want (-200,0)", p)
	}
}
