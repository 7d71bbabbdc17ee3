package stream

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/matt-g-everett/afterimage/util"
)

const (
	chimeRate     = beep.SampleRate(44100)
	chimeDuration = 40 * time.Millisecond
)

// Chime plays a short tone every time an after-image is added.
type Chime struct {
	pitch float64
	lut   []float64
}

// NewChime opens the speaker. The caller should carry on without sound when
// this fails.
func NewChime(pitch float64) (*Chime, error) {
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	c := new(Chime)
	c.pitch = pitch
	c.lut = util.GenerateLut(chimeRate.N(chimeDuration))
	return c, nil
}

// Play queues one enveloped tone.
func (c *Chime) Play() {
	tone, err := generators.SineTone(chimeRate, c.pitch)
	if err != nil {
		return
	}
	speaker.Play(envelope(tone, c.lut))
}

// Close releases the speaker.
func (c *Chime) Close() {
	speaker.Close()
}

// envelope scales s by the gains in lut and ends when lut runs out, which
// keeps the tone from clicking at either end.
func envelope(s beep.Streamer, lut []float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(lut) {
			return 0, false
		}
		if remaining := len(lut) - pos; len(samples) > remaining {
			samples = samples[:remaining]
		}
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			g := lut[pos]
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}
