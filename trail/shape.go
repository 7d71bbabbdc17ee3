package trail

import "math"

// Colour is an 8-bit RGBA fill colour.
type Colour struct {
	R, G, B, A uint8
}

// Fade lowers alpha by step, saturating at zero.
func (c Colour) Fade(step uint8) Colour {
	if c.A < step {
		c.A = 0
	} else {
		c.A -= step
	}
	return c
}

// RGBA implements color.Color so a Colour can be handed straight to image/draw.
func (c Colour) RGBA() (r, g, b, a uint32) {
	// Colour is non-premultiplied, color.Color wants premultiplied values.
	a = uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return
}

// Point is a position or a 2D size in window pixels.
type Point struct {
	X float64
	Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Kind tags the variant held by a Shape.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindEllipse
	KindCircle
	KindRectangle
)

func (k Kind) String() string {
	switch k {
	case KindEllipse:
		return "ellipse"
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// DefaultPointCount is the number of outline points used for ellipses and circles.
const DefaultPointCount = 30

// Ellipse is a polygon approximation of an ellipse whose silhouette can be
// deformed through StretchX and StretchY.
type Ellipse struct {
	Radius   Point
	StretchX float64
	StretchY float64
	Points   int
}

// Circle is a circle of the given radius.
type Circle struct {
	Radius float64
}

// Rectangle is an axis aligned rectangle scaled uniformly about its position.
type Rectangle struct {
	Width  float64
	Height float64
	Scale  float64
}

// Shape is one drawable after-image. Only the payload matching Kind is
// meaningful. Position is the top-left of the shape's bounding box, the same
// convention used for every kind.
type Shape struct {
	Kind     Kind
	Fill     Colour
	Position Point

	Ellipse   Ellipse
	Circle    Circle
	Rectangle Rectangle
}

// NewEllipse creates an ellipse snapshot with unit stretch.
func NewEllipse(radius Point, points int, fill Colour, pos Point) Shape {
	return Shape{
		Kind:     KindEllipse,
		Fill:     fill,
		Position: pos,
		Ellipse:  Ellipse{Radius: radius, StretchX: 1.0, StretchY: 1.0, Points: points},
	}
}

// NewCircle creates a circle snapshot.
func NewCircle(radius float64, fill Colour, pos Point) Shape {
	return Shape{
		Kind:     KindCircle,
		Fill:     fill,
		Position: pos,
		Circle:   Circle{Radius: radius},
	}
}

// NewRectangle creates a rectangle snapshot at unit scale.
func NewRectangle(size Point, fill Colour, pos Point) Shape {
	return Shape{
		Kind:      KindRectangle,
		Fill:      fill,
		Position:  pos,
		Rectangle: Rectangle{Width: size.X, Height: size.Y, Scale: 1.0},
	}
}

// PointCount returns the number of outline points, falling back to
// DefaultPointCount when unset.
func (e Ellipse) PointCount() int {
	if e.Points < 1 {
		return DefaultPointCount
	}
	return e.Points
}

// Point returns outline point i around centre. Point 0 is the top of the ellipse.
func (e Ellipse) Point(i int, centre Point) Point {
	n := e.PointCount()
	angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
	return Point{
		X: e.Radius.X*math.Cos(angle)*e.StretchX + centre.X,
		Y: e.Radius.Y*math.Sin(angle)*e.StretchY + centre.Y,
	}
}

// Outline returns every outline point around centre. It is recomputed on each
// call so it always reflects the current radius and stretch.
func (e Ellipse) Outline(centre Point) []Point {
	n := e.PointCount()
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = e.Point(i, centre)
	}
	return pts
}

// Centre returns the point the shape's outline is generated around.
func (s *Shape) Centre() Point {
	switch s.Kind {
	case KindEllipse:
		return s.Position.Add(s.Ellipse.Radius)
	case KindCircle:
		return s.Position.Add(Point{s.Circle.Radius, s.Circle.Radius})
	case KindRectangle:
		scale := s.Rectangle.Scale
		return s.Position.Add(Point{s.Rectangle.Width * scale / 2, s.Rectangle.Height * scale / 2})
	}
	return s.Position
}

// Outline returns the polygon used to draw the shape, or nil for unknown kinds.
func (s *Shape) Outline() []Point {
	switch s.Kind {
	case KindEllipse:
		return s.Ellipse.Outline(s.Centre())
	case KindCircle:
		r := s.Circle.Radius
		circle := Ellipse{Radius: Point{r, r}, StretchX: 1.0, StretchY: 1.0, Points: DefaultPointCount}
		return circle.Outline(s.Centre())
	case KindRectangle:
		w := s.Rectangle.Width * s.Rectangle.Scale
		h := s.Rectangle.Height * s.Rectangle.Scale
		p := s.Position
		return []Point{p, {p.X + w, p.Y}, {p.X + w, p.Y + h}, {p.X, p.Y + h}}
	}
	return nil
}
