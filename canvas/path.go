// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import "github.com/gogpu/ggui"

// Verb is a path construction command.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// pointsPerVerb is the number of coordinate pairs each verb consumes.
var pointsPerVerb = [...]int{
	VerbMoveTo:  1,
	VerbLineTo:  1,
	VerbQuadTo:  2,
	VerbCubicTo: 3,
	VerbClose:   0,
}

// Path is a vector path in canvas coordinates.
//
// Example:
//
//	p := canvas.NewPath()
//	p.MoveTo(100, 100)
//	p.LineTo(200, 100)
//	p.LineTo(150, 200)
//	p.Close()
type Path struct {
	verbs  []Verb
	points []float32
	startX float32
	startY float32
	curX   float32
	curY   float32
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]Verb, 0, 16),
		points: make([]float32, 0, 64),
	}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float32) {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, x, y)
	p.startX, p.startY = x, y
	p.curX, p.curY = x, y
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float32) {
	if len(p.verbs) == 0 {
		p.MoveTo(x, y)
		return
	}
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, x, y)
	p.curX, p.curY = x, y
}

// QuadTo adds a quadratic Bezier curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float32) {
	if len(p.verbs) == 0 {
		p.MoveTo(cx, cy)
	}
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	p.curX, p.curY = x, y
}

// CubicTo adds a cubic Bezier curve with control points (c1x, c1y) and
// (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	if len(p.verbs) == 0 {
		p.MoveTo(c1x, c1y)
	}
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
	p.curX, p.curY = x, y
}

// Close closes the current subpath by connecting to its start point.
func (p *Path) Close() {
	if len(p.verbs) == 0 {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
	p.curX, p.curY = p.startX, p.startY
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.verbs) == 0
}

// Len returns the number of verbs.
func (p *Path) Len() int { return len(p.verbs) }

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	clone := &Path{
		verbs:  make([]Verb, len(p.verbs)),
		points: make([]float32, len(p.points)),
		startX: p.startX,
		startY: p.startY,
		curX:   p.curX,
		curY:   p.curY,
	}
	copy(clone.verbs, p.verbs)
	copy(clone.points, p.points)
	return clone
}

// Transformed returns a copy of the path with every point mapped to
// (x*sx + dx, y*sy + dy).
func (p *Path) Transformed(sx, sy, dx, dy float32) *Path {
	out := p.Clone()
	for i := 0; i < len(out.points); i += 2 {
		out.points[i] = out.points[i]*sx + dx
		out.points[i+1] = out.points[i+1]*sy + dy
	}
	out.startX, out.startY = p.startX*sx+dx, p.startY*sy+dy
	out.curX, out.curY = p.curX*sx+dx, p.curY*sy+dy
	return out
}

// Walk calls fn for every verb with its coordinate pairs.
func (p *Path) Walk(fn func(v Verb, pts []float32)) {
	idx := 0
	for _, v := range p.verbs {
		n := pointsPerVerb[v] * 2
		fn(v, p.points[idx:idx+n])
		idx += n
	}
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float32) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// RoundedRectangle adds a rectangle with rounded corners. The radius is
// clamped to half the smaller side.
func (p *Path) RoundedRectangle(x, y, w, h, r float32) {
	r = min(r, min(w, h)/2)
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}

	const k = 0.5522847498307936 // Bezier circle approximation constant
	ctl := r * k

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+ctl, y, x+w, y+r-ctl, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+ctl, x+w-r+ctl, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-ctl, y+h, x, y+h-r+ctl, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-ctl, x+r-ctl, y, x+r, y)
	p.Close()
}

// ReverseRoundedRectangle adds a rounded rectangle wound counter-clockwise.
// Combined with RoundedRectangle it cuts a hole under the non-zero rule.
func (p *Path) ReverseRoundedRectangle(x, y, w, h, r float32) {
	r = min(r, min(w, h)/2)
	if r <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.LineTo(x+w, y)
		p.Close()
		return
	}

	const k = 0.5522847498307936
	ctl := r * k

	p.MoveTo(x+r, y)
	p.CubicTo(x+r-ctl, y, x, y+r-ctl, x, y+r)
	p.LineTo(x, y+h-r)
	p.CubicTo(x, y+h-r+ctl, x+r-ctl, y+h, x+r, y+h)
	p.LineTo(x+w-r, y+h)
	p.CubicTo(x+w-r+ctl, y+h, x+w, y+h-r+ctl, x+w, y+h-r)
	p.LineTo(x+w, y+r)
	p.CubicTo(x+w, y+r-ctl, x+w-r+ctl, y, x+w-r, y)
	p.Close()
}

// Circle adds a circle to the path.
func (p *Path) Circle(cx, cy, r float32) {
	const k = 0.5522847498307936
	offset := r * k

	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+offset, cx+offset, cy+r, cx, cy+r)
	p.CubicTo(cx-offset, cy+r, cx-r, cy+offset, cx-r, cy)
	p.CubicTo(cx-r, cy-offset, cx-offset, cy-r, cx, cy-r)
	p.CubicTo(cx+offset, cy-r, cx+r, cy-offset, cx+r, cy)
	p.Close()
}

// Bounds returns the bounding box of all points, control points included.
// An empty path has empty bounds.
func (p *Path) Bounds() ggui.Rect {
	if len(p.points) == 0 {
		return ggui.Rect{}
	}
	minX, maxX := p.points[0], p.points[0]
	minY, maxY := p.points[1], p.points[1]
	for i := 2; i < len(p.points); i += 2 {
		x, y := p.points[i], p.points[i+1]
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	return ggui.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
