package window

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var desktopKeys = map[ebiten.Key]Key{
	ebiten.KeyEscape: KeyEscape,
	ebiten.KeyW:      KeyW,
	ebiten.KeyA:      KeyA,
	ebiten.KeyS:      KeyS,
	ebiten.KeyD:      KeyD,
	ebiten.KeyQ:      KeyQ,
}

// Desktop is a native window driven by ebiten.
type Desktop struct {
	opts    Options
	handler Handler
	canvas  *ebiten.Image
	keys    []ebiten.Key
}

// NewDesktop creates a Desktop window. Nothing is opened until Run.
func NewDesktop(opts Options) *Desktop {
	return &Desktop{opts: opts}
}

// Run opens the window and blocks until it is closed.
func (d *Desktop) Run(h Handler) error {
	d.handler = h
	ebiten.SetWindowSize(d.opts.Width, d.opts.Height)
	ebiten.SetWindowTitle(d.opts.Title)
	ebiten.SetTPS(d.opts.FrameRate)

	err := ebiten.RunGame(d)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update implements ebiten.Game.
func (d *Desktop) Update() error {
	var in Input
	d.keys = inpututil.AppendJustPressedKeys(d.keys[:0])
	for _, k := range d.keys {
		if key, ok := desktopKeys[k]; ok {
			in.Events = append(in.Events, Event{Type: KeyPressed, Key: key})
		}
	}
	d.keys = inpututil.AppendJustReleasedKeys(d.keys[:0])
	for _, k := range d.keys {
		if key, ok := desktopKeys[k]; ok {
			in.Events = append(in.Events, Event{Type: KeyReleased, Key: key})
		}
	}
	in.MouseX, in.MouseY = ebiten.CursorPosition()

	if !d.handler.Update(in, time.Now()) {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (d *Desktop) Draw(screen *ebiten.Image) {
	img := d.handler.Render()
	if d.canvas == nil {
		b := img.Bounds()
		d.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}
	d.canvas.WritePixels(img.Pix)
	screen.DrawImage(d.canvas, nil)
}

// Layout implements ebiten.Game. The logical screen always matches the
// configured size and ebiten scales it into the window.
func (d *Desktop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.opts.Width, d.opts.Height
}
