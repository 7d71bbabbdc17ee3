package stream

import (
	"math"

	"github.com/matt-g-everett/afterimage/trail"
	"github.com/matt-g-everett/afterimage/util"
)

// Direction keys understood by the Mover.
const (
	MoveUp = iota
	MoveLeft
	MoveDown
	MoveRight
	numMoves
)

const moveStep = 10.0

// Mover drives a circle around the window from held direction keys.
type Mover struct {
	held     [numMoves]bool
	position trail.Point
	radius   float64
	width    float64
	height   float64
}

// NewMover creates a Mover for a circle of radius r in a width x height window.
func NewMover(r float64, width, height int) *Mover {
	m := new(Mover)
	m.radius = r
	m.width = float64(width)
	m.height = float64(height)
	return m
}

// Press records a direction key going down.
func (m *Mover) Press(dir int) {
	if dir >= 0 && dir < numMoves {
		m.held[dir] = true
	}
}

// Release records a direction key going up.
func (m *Mover) Release(dir int) {
	if dir >= 0 && dir < numMoves {
		m.held[dir] = false
	}
}

// Position returns the top-left of the circle.
func (m *Mover) Position() trail.Point {
	return m.position
}

// Radius returns the circle radius.
func (m *Mover) Radius() float64 {
	return m.radius
}

// Step moves the circle one step along the held keys and reports whether any
// key was held.
func (m *Mover) Step() bool {
	var change trail.Point
	if m.held[MoveUp] {
		change.Y -= moveStep
	}
	if m.held[MoveDown] {
		change.Y += moveStep
	}
	if m.held[MoveLeft] {
		change.X -= moveStep
	}
	if m.held[MoveRight] {
		change.X += moveStep
	}

	moving := false
	for _, h := range m.held {
		moving = moving || h
	}
	if !moving {
		return false
	}

	// Known issue: each axis is derived from the other axis instead of
	// normalising the vector, so diagonals move (0,±10) rather than 7.07
	// on both axes.
	change.X = util.Sign(change.X) * math.Sqrt(moveStep*moveStep-change.Y*change.Y)
	change.Y = util.Sign(change.Y) * math.Sqrt(moveStep*moveStep-change.X*change.X)

	pos := m.position.Add(change)
	pos.X = util.Clamp(pos.X, 0, m.width-2*m.radius)
	pos.Y = util.Clamp(pos.Y, 0, m.height-2*m.radius)
	m.position = pos
	return true
}
