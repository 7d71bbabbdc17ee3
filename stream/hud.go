package stream

import (
	"fmt"
	"image"
	"os"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const fpsWindow = 3000 * time.Millisecond

// LoadFont reads a TrueType/OpenType font file and returns a face of the
// given point size.
func LoadFont(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", path, err)
	}
	return face, nil
}

// HUD shows the measured frame rate.
type HUD struct {
	face   font.Face
	origin image.Point
	timer  Timer
	frames int
	fps    int
}

// NewHUD creates a HUD whose text starts at origin. A nil face disables drawing.
func NewHUD(face font.Face, origin image.Point, now time.Time) *HUD {
	h := new(HUD)
	h.face = face
	h.origin = origin
	h.timer = NewTimer(now)
	return h
}

// Tick counts one frame. The average restarts every few seconds so the
// reading follows the current rate.
func (h *HUD) Tick(now time.Time) {
	h.frames++
	elapsed := h.timer.Elapsed(now)
	if elapsed > 0 {
		h.fps = int(float64(h.frames) / elapsed.Seconds())
	}
	if elapsed > fpsWindow {
		h.timer.Restart(now)
		h.frames = 0
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() int {
	return h.fps
}

// Text returns the HUD line.
func (h *HUD) Text() string {
	return fmt.Sprintf("[ Frame Rate: %d FPS ]", h.fps)
}

// Draw writes the HUD text onto f.
func (h *HUD) Draw(f *Frame) {
	if h.face == nil {
		return
	}
	ascent := h.face.Metrics().Ascent
	d := font.Drawer{
		Dst:  f.Image(),
		Src:  image.White,
		Face: h.face,
		Dot:  fixed.P(h.origin.X, h.origin.Y).Add(fixed.Point26_6{Y: ascent}),
	}
	d.DrawString(h.Text())
}
