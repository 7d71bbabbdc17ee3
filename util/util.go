package util

import (
	"math/rand"

	"github.com/fogleman/ease"
)

// RandomByte returns a uniformly distributed value in [0,255].
func RandomByte(rng *rand.Rand) uint8 {
	return uint8(rng.Intn(256))
}

// Sign returns -1, 0 or 1 following the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Clamp limits v to [min,max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// EasedPhase maps a linear phase in [0,1) onto an eased one, slowing down at
// both ends of the cycle.
func EasedPhase(phase float64) float64 {
	return ease.InOutQuad(phase)
}

// GenerateLut builds a rise-then-fall lookup table of eased gains.
func GenerateLut(length int) []float64 {
	if length < 2 {
		return []float64{0}
	}
	increment := 1.0 / float64(length/2)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := float64(i) * increment
		lut[i] = ease.InOutQuad(value)
		lut[j] = ease.InOutQuad(value)
	}
	return lut
}
