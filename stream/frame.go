package stream

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"github.com/matt-g-everett/afterimage/trail"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Frame is one rendered picture of the scene.
type Frame struct {
	img       *image.RGBA
	mask      *image.Alpha
	raster    *vector.Rasterizer
	antialias bool
}

// NewFrame creates a new, transparent Frame instance.
func NewFrame(width, height int, antialias bool) *Frame {
	f := new(Frame)
	rect := image.Rect(0, 0, width, height)
	f.img = image.NewRGBA(rect)
	f.mask = image.NewAlpha(rect)
	f.raster = vector.NewRasterizer(width, height)
	f.antialias = antialias
	return f
}

// Image exposes the premultiplied RGBA pixels of the frame.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Size returns the frame dimensions in pixels.
func (f *Frame) Size() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear paints the whole frame with c.
func (f *Frame) Clear(c color.Color) {
	draw.Draw(f.img, f.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Fill rasterises the closed polygon pts and composites it over the frame.
// Only the pixels under the polygon's bounding box are touched.
func (f *Frame) Fill(pts []trail.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	box := bounds(pts).Intersect(f.img.Bounds())
	if box.Empty() {
		return
	}

	// The rasterizer works relative to the top left of box.
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	f.raster.Reset(box.Dx(), box.Dy())
	f.raster.MoveTo(float32(pts[0].X)-ox, float32(pts[0].Y)-oy)
	for _, p := range pts[1:] {
		f.raster.LineTo(float32(p.X)-ox, float32(p.Y)-oy)
	}
	f.raster.ClosePath()

	draw.Draw(f.mask, box, image.Transparent, image.Point{}, draw.Src)
	f.raster.Draw(f.mask, box, image.Opaque, image.Point{})
	if !f.antialias {
		for y := box.Min.Y; y < box.Max.Y; y++ {
			row := f.mask.Pix[f.mask.PixOffset(box.Min.X, y):f.mask.PixOffset(box.Max.X, y)]
			for i, a := range row {
				if a >= 0x80 {
					row[i] = 0xff
				} else {
					row[i] = 0
				}
			}
		}
	}
	draw.DrawMask(f.img, box, image.NewUniform(c), image.Point{}, f.mask, box.Min, draw.Over)
}

// bounds returns the smallest pixel rectangle holding every point.
func bounds(pts []trail.Point) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// DrawShape draws an after-image, making Frame a trail.Target.
func (f *Frame) DrawShape(s trail.Shape) {
	if s.Fill.A == 0 {
		return
	}
	f.Fill(s.Outline(), s.Fill)
}

// Downsample scales the frame to width x height pixels.
func (f *Frame) Downsample(width, height int) *Frame {
	out := NewFrame(width, height, f.antialias)
	draw.ApproxBiLinear.Scale(out.img, out.img.Bounds(), f.img, f.img.Bounds(), draw.Src, nil)
	return out
}

// Clone returns a deep copy of the frame pixels.
func (f *Frame) Clone() *Frame {
	w, h := f.Size()
	out := NewFrame(w, h, f.antialias)
	copy(out.img.Pix, f.img.Pix)
	return out
}

// MarshalBinary converts a Frame into the LED matrix wire format: width and
// height as little endian uint16 followed by one RGB triplet per pixel, row
// by row.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	w, h := f.Size()
	data = make([]byte, 4, w*h*3+4)
	binary.LittleEndian.PutUint16(data[0:], uint16(w))
	binary.LittleEndian.PutUint16(data[2:], uint16(h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := f.img.RGBAAt(x, y)
			data = append(data, c.R, c.G, c.B)
		}
	}

	return data, nil
}
