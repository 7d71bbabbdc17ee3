package window

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimulatedTerminal(t *testing.T, cols, rows int) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return newTerminal(screen, Options{Width: 80, Height: 40, FrameRate: 60})
}

func TestTerminalMouseMapsToFramePixels(t *testing.T) {
	term := newSimulatedTerminal(t, 40, 20)

	term.events <- tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)
	in := term.drain()

	// Cell (10,5) covers pixels x 20-21 and y 10-11 of an 80x40 frame.
	if in.MouseX != 21 || in.MouseY != 11 {
		t.Errorf("mouse = (%d,%d), want (21,11)", in.MouseX, in.MouseY)
	}

	// The position sticks until the mouse moves again.
	in = term.drain()
	if in.MouseX != 21 || in.MouseY != 11 {
		t.Errorf("mouse after idle frame = (%d,%d)", in.MouseX, in.MouseY)
	}
}

func TestTerminalKeysPressAndRelease(t *testing.T) {
	term := newSimulatedTerminal(t, 40, 20)

	term.events <- tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	in := term.drain()
	if len(in.Events) != 1 || in.Events[0] != (Event{Type: KeyPressed, Key: KeyW}) {
		t.Fatalf("first frame events = %+v", in.Events)
	}

	// A repeat keeps the key held without a second press.
	term.events <- tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	in = term.drain()
	if len(in.Events) != 0 {
		t.Fatalf("repeat frame events = %+v", in.Events)
	}

	in = term.drain()
	if len(in.Events) != 1 || in.Events[0] != (Event{Type: KeyReleased, Key: KeyW}) {
		t.Fatalf("idle frame events = %+v", in.Events)
	}
}

func TestTerminalCloseAndEscape(t *testing.T) {
	term := newSimulatedTerminal(t, 40, 20)

	term.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	term.events <- tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	in := term.drain()

	want := []Event{{Type: KeyPressed, Key: KeyEscape}, {Type: Closed}}
	if len(in.Events) != len(want) {
		t.Fatalf("events = %+v, want %+v", in.Events, want)
	}
	for i := range want {
		if in.Events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, in.Events[i], want[i])
		}
	}
}

func TestTerminalDrainIsBounded(t *testing.T) {
	term := newSimulatedTerminal(t, 40, 20)
	for i := 0; i < maxEventsPerFrame+10; i++ {
		term.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	}
	in := term.drain()
	if len(in.Events) != maxEventsPerFrame {
		t.Errorf("drained %d events, want %d", len(in.Events), maxEventsPerFrame)
	}
	if len(term.events) != 10 {
		t.Errorf("%d events left queued, want 10", len(term.events))
	}
}

func TestTerminalPumpStopsWhenQueueIsFull(t *testing.T) {
	term := newSimulatedTerminal(t, 40, 20)
	for len(term.events) < cap(term.events) {
		term.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		term.pump(done)
		close(stopped)
	}()
	if err := term.screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	close(done)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("pump still blocked after done was closed")
	}
}

func TestTerminalPresentsHalfBlocks(t *testing.T) {
	term := newSimulatedTerminal(t, 4, 2)

	img := image.NewRGBA(image.Rect(0, 0, 80, 40))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			// Alternate bands of 10 rows: each cell's top half is red and
			// its bottom half blue.
			if (y/10)%2 == 0 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}
	term.present(img)

	mainc, _, style, _ := term.screen.GetContent(1, 1)
	if mainc != halfBlock {
		t.Fatalf("cell rune = %q, want half block", mainc)
	}
	fg, bg, _ := style.Decompose()
	if r, g, b := fg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("foreground = (%d,%d,%d), want red", r, g, b)
	}
	if r, g, b := bg.RGB(); r != 0 || g != 0 || b != 255 {
		t.Errorf("background = (%d,%d,%d), want blue", r, g, b)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New("hologram", Options{}); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}
