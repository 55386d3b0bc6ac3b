package ggui

import "math"

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width, Height uint32
}

// IsEmpty reports whether either dimension is zero.
func (s PhysicalSize) IsEmpty() bool {
	return s.Width == 0 || s.Height == 0
}

// ToLogical converts the size to logical pixels.
func (s PhysicalSize) ToLogical(scale float32) Size {
	if scale <= 0 {
		scale = 1
	}
	return Size{Width: float32(s.Width) / scale, Height: float32(s.Height) / scale}
}

// Point is a position. Unless stated otherwise it is in logical pixels.
type Point struct {
	X, Y float32
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both coordinates by f.
func (p Point) Scale(f float32) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Size is a width and height. Unless stated otherwise it is in logical pixels.
type Size struct {
	Width, Height float32
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Scale multiplies both dimensions by f.
func (s Size) Scale(f float32) Size { return Size{Width: s.Width * f, Height: s.Height * f} }

// ToPhysical converts a logical size to device pixels, rounding up so the
// result covers the logical area.
func (s Size) ToPhysical(scale float32) PhysicalSize {
	w := math.Ceil(float64(s.Width * scale))
	h := math.Ceil(float64(s.Height * scale))
	return PhysicalSize{Width: uint32(max(w, 0)), Height: uint32(max(h, 0))}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float32
}

// RectFromSize returns a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Scale multiplies position and size by f.
func (r Rect) Scale(f float32) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersect returns the overlap of r and o. The result is the zero Rect
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks r by d on every side. Negative d grows it.
func (r Rect) Inset(d float32) Rect {
	w := max(r.Width-2*d, 0)
	h := max(r.Height-2*d, 0)
	return Rect{X: r.X + d, Y: r.Y + d, Width: w, Height: h}
}
