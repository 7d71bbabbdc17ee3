package window

import (
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	maxEventsPerFrame = 64
	halfBlock         = '▀'
)

var terminalRunes = map[rune]Key{
	'w': KeyW, 'W': KeyW,
	'a': KeyA, 'A': KeyA,
	's': KeyS, 'S': KeyS,
	'd': KeyD, 'D': KeyD,
	'q': KeyQ, 'Q': KeyQ,
}

// Terminal shows frames in a terminal using half-block cells, two pixels per
// cell. Terminals report no key releases, so a held key is released on the
// first frame in which it did not repeat.
type Terminal struct {
	opts   Options
	screen tcell.Screen
	events chan tcell.Event

	held   map[Key]bool
	mouseX int
	mouseY int
}

// NewTerminal creates a Terminal on the controlling tty.
func NewTerminal(opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal screen: %w", err)
	}
	return newTerminal(screen, opts), nil
}

func newTerminal(screen tcell.Screen, opts Options) *Terminal {
	t := new(Terminal)
	t.opts = opts
	t.screen = screen
	t.events = make(chan tcell.Event, 100)
	t.held = make(map[Key]bool)
	return t
}

// Run takes over the terminal until the handler stops.
func (t *Terminal) Run(h Handler) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer t.screen.Fini()
	t.screen.EnableMouse()
	t.screen.HideCursor()

	done := make(chan struct{})
	defer close(done)
	go t.pump(done)

	ticker := time.NewTicker(frameInterval(t.opts.FrameRate))
	defer ticker.Stop()
	for now := range ticker.C {
		if !h.Update(t.drain(), now) {
			return nil
		}
		t.present(h.Render())
	}
	return nil
}

// pump forwards screen events until the screen is finalised or done is
// closed.
func (t *Terminal) pump(done <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-done:
			return
		}
	}
}

// drain collects at most maxEventsPerFrame pending events without blocking.
func (t *Terminal) drain() Input {
	var in Input
	pressed := make(map[Key]bool)
loop:
	for i := 0; i < maxEventsPerFrame; i++ {
		select {
		case ev := <-t.events:
			t.translate(ev, &in, pressed)
		default:
			break loop
		}
	}

	for k := range t.held {
		if !pressed[k] {
			delete(t.held, k)
			in.Events = append(in.Events, Event{Type: KeyReleased, Key: k})
		}
	}
	for k := range pressed {
		t.held[k] = true
	}

	in.MouseX, in.MouseY = t.mouseX, t.mouseY
	return in
}

func (t *Terminal) translate(ev tcell.Event, in *Input, pressed map[Key]bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			in.Events = append(in.Events, Event{Type: Closed})
		case tcell.KeyEscape:
			in.Events = append(in.Events, Event{Type: KeyPressed, Key: KeyEscape})
		case tcell.KeyRune:
			if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
				in.Events = append(in.Events, Event{Type: Closed})
				return
			}
			if k, ok := terminalRunes[ev.Rune()]; ok {
				pressed[k] = true
				if !t.held[k] {
					in.Events = append(in.Events, Event{Type: KeyPressed, Key: k})
				}
			}
		}
	case *tcell.EventMouse:
		t.mouseX, t.mouseY = t.cellToPixel(ev.Position())
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// cellToPixel maps a cell to the frame pixel at its centre.
func (t *Terminal) cellToPixel(x, y int) (int, int) {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	px := (2*x + 1) * t.opts.Width / (2 * cols)
	py := (2*y + 1) * t.opts.Height / (2 * rows)
	return px, py
}

func (t *Terminal) present(img *image.RGBA) {
	cols, rows := t.screen.Size()
	b := img.Bounds()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := b.Min.X + x*b.Dx()/cols
			top := img.RGBAAt(px, b.Min.Y+(2*y)*b.Dy()/(2*rows))
			bottom := img.RGBAAt(px, b.Min.Y+(2*y+1)*b.Dy()/(2*rows))
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}
