package trail

// Policy is the per-cycle aging applied to every after-image: alpha decays by
// FadeStep and the geometry is rescaled according to the shape kind.
type Policy struct {
	FadeStep uint8
	// Ellipses at or below Threshold alpha switch from puffing to deflating.
	Threshold uint8

	GrowStretch    float64
	ShrinkStretch  float64
	DeflateStretch float64
	InflateStretch float64

	// Growth multiplies circle radius and rectangle scale every cycle.
	Growth float64
}

// DefaultPolicy returns the aging policy for a trail of the given capacity.
func DefaultPolicy(capacity int) Policy {
	if capacity < 1 {
		capacity = 1
	}
	step := 255 / capacity
	return Policy{
		FadeStep:       uint8(step),
		Threshold:      255 / 2,
		GrowStretch:    1.15,
		ShrinkStretch:  0.85,
		DeflateStretch: 0.75,
		InflateStretch: 1.25,
		Growth:         1.005,
	}
}

// Age applies one aging cycle to s. It reports false, leaving s untouched,
// when the kind is not one the policy knows.
func (p Policy) Age(s *Shape) bool {
	switch s.Kind {
	case KindEllipse:
		s.Fill = s.Fill.Fade(p.FadeStep)
		if s.Fill.A > p.Threshold {
			s.Ellipse.StretchX *= p.GrowStretch
			s.Ellipse.StretchY *= p.ShrinkStretch
		} else {
			s.Ellipse.StretchX *= p.DeflateStretch
			s.Ellipse.StretchY *= p.InflateStretch
		}
	case KindCircle:
		s.Fill = s.Fill.Fade(p.FadeStep)
		s.Circle.Radius *= p.Growth
	case KindRectangle:
		s.Fill = s.Fill.Fade(p.FadeStep)
		s.Rectangle.Scale *= p.Growth
	default:
		return false
	}
	return true
}

// Growing reports whether an ellipse with the given alpha is still in its
// puffing phase.
func (p Policy) Growing(alpha uint8) bool {
	return alpha > p.Threshold
}
