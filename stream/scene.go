package stream

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/matt-g-everett/afterimage/trail"
	"github.com/matt-g-everett/afterimage/window"
	"golang.org/x/image/font"
)

const wasdRadius = 50.0

var (
	backColour    = color.Black
	centredColour = trail.Colour{G: 255, A: 255}
	wasdColour    = trail.Colour{R: 255, G: 255, B: 255, A: 255}
)

// An Observer is notified of every rendered frame.
type Observer interface {
	Observe(f *Frame, now time.Time)
}

// Scene is the demo: a colour-cycling circle anchored to the mouse leaving a
// trail of after-images behind it.
type Scene struct {
	width  int
	height int
	radius float64
	points int

	trail    *trail.Buffer
	colours  ColourSource
	selector *ShapeSelector
	orbit    Orbit
	mover    *Mover
	hud      *HUD

	primary trail.Shape
	centred trail.Shape

	colourTimer  Timer
	colourPeriod time.Duration
	start        time.Time
	now          time.Time

	frame     *Frame
	onInsert  []func(trail.Shape)
	observers []Observer
}

// NewScene creates a Scene from the configuration. The scene owns rng and
// uses it for every random choice it makes.
func NewScene(config Config, face font.Face, rng *rand.Rand, now time.Time) *Scene {
	s := new(Scene)
	s.width = config.Window.Width
	s.height = config.Window.Height
	s.radius = config.Trail.Radius
	s.points = config.Trail.Points
	capacity := max(config.Trail.Capacity, 1)

	policy := trail.DefaultPolicy(capacity)
	if config.Trail.Stretch > 0 {
		policy.GrowStretch = config.Trail.Stretch
		policy.ShrinkStretch = 2 - config.Trail.Stretch
	}
	if config.Trail.Growth > 0 {
		policy.Growth = config.Trail.Growth
	}
	s.trail = trail.NewBuffer(capacity, policy)

	if config.Trail.Colours == "gradient" {
		s.colours = NewGradientColours(RainbowGradient, 10*capacity)
	} else {
		s.colours = NewRandomColours(rng)
	}
	s.selector = NewShapeSelector(config.Trail.Shape, rng)
	s.orbit = NewOrbit(config.Orbit.Width, config.Orbit.Height, config.Orbit.PeriodMs)
	s.mover = NewMover(wasdRadius, s.width, s.height)
	s.hud = NewHUD(face, image.Pt(s.width*3/5, 10), now)

	s.primary = trail.NewCircle(s.radius, wasdColour, trail.Point{})
	s.centred = trail.NewCircle(s.radius, centredColour, trail.Point{})

	s.colourTimer = NewTimer(now)
	s.colourPeriod = time.Second / time.Duration(capacity)
	s.start = now
	s.now = now

	s.frame = NewFrame(s.width, s.height, config.Window.Antialias)
	return s
}

// OnInsert registers fn to be called with every new after-image.
func (s *Scene) OnInsert(fn func(trail.Shape)) {
	s.onInsert = append(s.onInsert, fn)
}

// AddObserver registers o for every rendered frame.
func (s *Scene) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Trail returns the after-image buffer.
func (s *Scene) Trail() *trail.Buffer {
	return s.trail
}

// Primary returns the shape following the mouse.
func (s *Scene) Primary() trail.Shape {
	return s.primary
}

// Mover returns the keyboard driven circle.
func (s *Scene) Mover() *Mover {
	return s.mover
}

// Update runs one frame of scene logic. It returns false once the user has
// asked to quit.
func (s *Scene) Update(in window.Input, now time.Time) bool {
	s.now = now
	for _, ev := range in.Events {
		switch ev.Type {
		case window.Closed:
			return false
		case window.KeyPressed:
			if ev.Key == window.KeyEscape || ev.Key == window.KeyQ {
				return false
			}
			s.mover.Press(moveFor(ev.Key))
		case window.KeyReleased:
			s.mover.Release(moveFor(ev.Key))
		}
	}
	s.mover.Step()

	anchor := trail.Point{X: float64(in.MouseX) - s.radius, Y: float64(in.MouseY) - s.radius}
	runtimeMs := now.Sub(s.start).Milliseconds()
	s.primary.Position = anchor.Add(s.orbit.Offset(runtimeMs))
	s.centred.Position = anchor

	if s.colourTimer.Fired(now, s.colourPeriod) {
		s.primary.Fill = s.colours.Next()
		s.addAfterImage()
	}

	s.hud.Tick(now)
	return true
}

func (s *Scene) addAfterImage() {
	pos := s.primary.Position
	fill := s.primary.Fill
	r := s.radius

	var shape trail.Shape
	switch s.selector.Next() {
	case trail.KindCircle:
		shape = trail.NewCircle(r, fill, pos)
	case trail.KindRectangle:
		shape = trail.NewRectangle(trail.Point{X: 2 * r, Y: 2 * r}, fill, pos)
	default:
		shape = trail.NewEllipse(trail.Point{X: r, Y: r}, s.points, fill, pos)
	}
	s.trail.Insert(shape)

	for _, fn := range s.onInsert {
		fn(shape)
	}
}

func moveFor(k window.Key) int {
	switch k {
	case window.KeyW:
		return MoveUp
	case window.KeyA:
		return MoveLeft
	case window.KeyS:
		return MoveDown
	case window.KeyD:
		return MoveRight
	}
	return -1
}

// Draw paints every layer onto f, back to front.
func (s *Scene) Draw(f *Frame) {
	f.Clear(backColour)
	f.DrawShape(s.centred)
	f.DrawShape(s.primary)
	s.trail.Draw(f)
	s.hud.Draw(f)
	f.DrawShape(trail.NewCircle(s.mover.Radius(), wasdColour, s.mover.Position()))
}

// Render draws the scene into its own frame, notifies observers and returns
// the pixels.
func (s *Scene) Render() *image.RGBA {
	s.Draw(s.frame)
	for _, o := range s.observers {
		o.Observe(s.frame, s.now)
	}
	return s.frame.Image()
}

// CalculateFrame advances the scene to runtimeMs with the anchor parked in
// the middle of the window and renders it. It drives the scene when no
// window is attached.
func (s *Scene) CalculateFrame(runtimeMs int64) *Frame {
	now := s.start.Add(time.Duration(runtimeMs) * time.Millisecond)
	s.Update(window.Input{MouseX: s.width / 2, MouseY: s.height / 2}, now)
	s.Render()
	return s.frame
}
