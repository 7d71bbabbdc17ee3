// Package window adapts windowing and input libraries to a small polling
// interface: each frame the backend gathers pending input, asks the handler
// to update and then shows the picture it renders.
package window

import (
	"fmt"
	"image"
	"time"
)

// Key identifies a keyboard key the demo reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
)

// EventType distinguishes input events.
type EventType int

const (
	Closed EventType = iota
	KeyPressed
	KeyReleased
)

// Event is one input event.
type Event struct {
	Type EventType
	Key  Key
}

// Input is everything sampled from the user during one frame.
type Input struct {
	Events []Event
	MouseX int
	MouseY int
}

// Handler is driven by a Window once per frame.
type Handler interface {
	// Update consumes the frame's input and returns false to close the window.
	Update(in Input, now time.Time) bool
	// Render returns the picture to present.
	Render() *image.RGBA
}

// Window runs a Handler until it asks to stop or the user closes the window.
type Window interface {
	Run(h Handler) error
}

// Options configures a window.
type Options struct {
	Width     int
	Height    int
	Title     string
	FrameRate int
}

// Backend names accepted by New.
const (
	BackendDesktop  = "desktop"
	BackendTerminal = "terminal"
)

// New creates the window for the named backend.
func New(backend string, opts Options) (Window, error) {
	switch backend {
	case BackendDesktop:
		return NewDesktop(opts), nil
	case BackendTerminal:
		return NewTerminal(opts)
	}
	return nil, fmt.Errorf("unknown window backend %q", backend)
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
