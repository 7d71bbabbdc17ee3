package stream

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFontMissingFile(t *testing.T) {
	if _, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 20); err == nil {
		t.Error("expected an error for a missing font")
	}
}

func TestHUDFrameRate(t *testing.T) {
	clock := newMockClock()
	h := NewHUD(nil, image.Point{}, clock.Now())
	for i := 0; i < 30; i++ {
		h.Tick(clock.Advance(time.Second / 30))
	}
	if fps := h.FPS(); fps < 29 || fps > 30 {
		t.Errorf("FPS = %d, want 30", fps)
	}
	if h.Text() != "[ Frame Rate: 30 FPS ]" && h.Text() != "[ Frame Rate: 29 FPS ]" {
		t.Errorf("text = %q", h.Text())
	}

	// The counter restarts after the averaging window.
	h.Tick(clock.Advance(4 * time.Second))
	h.Tick(clock.Advance(time.Second / 10))
	if fps := h.FPS(); fps < 9 || fps > 10 {
		t.Errorf("FPS after restart = %d, want 10", fps)
	}

	// Drawing without a face is a no-op.
	h.Draw(NewFrame(10, 10, true))
}

func TestHUDDrawsWithLoadedFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	face, err := LoadFont(path, 20)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}

	clock := newMockClock()
	h := NewHUD(face, image.Pt(2, 2), clock.Now())
	f := NewFrame(300, 40, true)
	h.Draw(f)

	lit := 0
	for _, v := range f.Image().Pix {
		if v != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("HUD text left the frame blank")
	}
}
