package stream

import (
	"math"
	"math/rand"

	"github.com/matt-g-everett/afterimage/trail"
	"github.com/matt-g-everett/afterimage/util"
)

// Orbit offsets the primary shape along an ellipse around the mouse.
type Orbit struct {
	a        float64
	b        float64
	periodMs int64
}

// NewOrbit creates an Orbit with the given ellipse size. A zero period keeps
// the offset fixed at the start of the orbit.
func NewOrbit(width, height float64, periodMs int64) Orbit {
	return Orbit{a: width / 2, b: height / 2, periodMs: periodMs}
}

// Offset returns the orbit position at runtimeMs.
func (o Orbit) Offset(runtimeMs int64) trail.Point {
	phase := 0.0
	if o.periodMs > 0 {
		phase = float64(runtimeMs%o.periodMs) / float64(o.periodMs)
		phase = util.EasedPhase(phase)
	}
	radians := 2 * math.Pi * phase
	return trail.Point{X: o.a * math.Cos(radians), Y: o.b * math.Sin(radians)}
}

// ShapeSelector chooses the kind of each new after-image.
type ShapeSelector struct {
	rng   *rand.Rand
	fixed trail.Kind
}

// NewShapeSelector creates a selector for the named shape: ellipse, circle,
// rectangle, or random to pick one of the three every time.
func NewShapeSelector(name string, rng *rand.Rand) *ShapeSelector {
	s := &ShapeSelector{rng: rng}
	switch name {
	case "circle":
		s.fixed = trail.KindCircle
	case "rectangle":
		s.fixed = trail.KindRectangle
	case "random":
		s.fixed = trail.KindUnknown
	default:
		s.fixed = trail.KindEllipse
	}
	return s
}

// Next returns the kind for the next after-image.
func (s *ShapeSelector) Next() trail.Kind {
	if s.fixed != trail.KindUnknown {
		return s.fixed
	}
	return trail.Kind(s.rng.Intn(3)) + trail.KindEllipse
}
