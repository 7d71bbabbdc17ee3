package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/afterimage/trail"
	"github.com/matt-g-everett/afterimage/util"
)

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []struct {
	Hue float64
	Pos float64
}

// RainbowGradient is the hue table the LED tree used for its trails.
var RainbowGradient = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},   // Pink
	{87.0, 0.14},  // Red
	{88.0, 0.28},  // Orange
	{98.0, 0.42},  // Yellow
	{180.0, 0.56}, // Green
	{190.0, 0.70}, // Turquoise
	{320.0, 0.84}, // Blue
	{328.0, 0.91}, // Violet
	{360.0, 1.0},  // Pink wrap
}

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, s, l float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, s, l)
		}
	}

	// Past the last keypoint.
	return colorful.Hcl(g[len(g)-1].Hue, s, l)
}

// A ColourSource picks the fill colour of each new after-image.
type ColourSource interface {
	Next() trail.Colour
}

// RandomColours picks uniformly random opaque colours.
type RandomColours struct {
	rng *rand.Rand
}

// NewRandomColours creates a RandomColours drawing from rng.
func NewRandomColours(rng *rand.Rand) *RandomColours {
	return &RandomColours{rng: rng}
}

// Next returns a random opaque colour.
func (r *RandomColours) Next() trail.Colour {
	return trail.Colour{
		R: util.RandomByte(r.rng),
		G: util.RandomByte(r.rng),
		B: util.RandomByte(r.rng),
		A: 255,
	}
}

// GradientColours walks a GradientTable, one step per colour.
type GradientColours struct {
	gradient  GradientTable
	current   float64
	increment float64
	chroma    float64
	luminance float64
}

// NewGradientColours creates a GradientColours that wraps around the table
// after steps colours.
func NewGradientColours(gradient GradientTable, steps int) *GradientColours {
	if steps < 1 {
		steps = 1
	}
	g := new(GradientColours)
	g.gradient = gradient
	g.current = 0
	g.increment = 1.0 / float64(steps)
	g.chroma = 0.8
	g.luminance = 0.6
	return g
}

// Next returns the colour at the current gradient position and advances it.
func (g *GradientColours) Next() trail.Colour {
	c := g.gradient.GetColor(g.current, g.chroma, g.luminance)
	r, gr, b := c.Clamped().RGB255()

	g.current += g.increment
	if g.current >= 1.0 {
		g.current -= 1.0
	}

	return trail.Colour{R: r, G: gr, B: b, A: 255}
}
