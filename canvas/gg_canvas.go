// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggui"
)

// GGCanvas is a Canvas backed by a *gg.Context.
//
// Pixels are premultiplied RGBA. Geometry is rasterized by gg, which uses
// its GPU accelerator when one is registered and the software renderer
// otherwise. Drawing under a clip smaller than the canvas goes through a
// scratch context the size of the clip, composited back with source-over.
type GGCanvas struct {
	dc      *gg.Context
	scratch *gg.Context

	state canvasState
	stack []canvasState
	dirty bool
}

type canvasState struct {
	tx, ty float32
	clip   image.Rectangle
	alpha  float32
}

var _ Canvas = (*GGCanvas)(nil)

// NewGGCanvas creates a canvas with its own gg context.
// Non-positive dimensions are treated as 1.
func NewGGCanvas(width, height int) *GGCanvas {
	c := &GGCanvas{dc: gg.NewContext(max(width, 1), max(height, 1))}
	c.Reset()
	return c
}

// Context returns the underlying gg context.
func (c *GGCanvas) Context() *gg.Context { return c.dc }

// Reset drops the state stack and restores identity translation, full
// clip and full opacity. Pixels are left untouched.
func (c *GGCanvas) Reset() {
	c.stack = c.stack[:0]
	c.state = canvasState{clip: c.bounds(), alpha: 1}
}

func (c *GGCanvas) bounds() image.Rectangle {
	return image.Rect(0, 0, c.dc.Width(), c.dc.Height())
}

// Pixels flushes pending GPU work and returns the premultiplied RGBA
// pixels. The slice aliases the canvas and is valid until the next draw.
func (c *GGCanvas) Pixels() ([]byte, error) {
	if err := c.dc.FlushGPU(); err != nil {
		return nil, err
	}
	return c.dc.ResizeTarget().Data(), nil
}

// Snapshot returns a copy of the current pixels.
func (c *GGCanvas) Snapshot() *image.RGBA {
	if err := c.dc.FlushGPU(); err != nil {
		ggui.Logger().Warn("canvas: gpu flush failed", "err", err)
	}
	return c.dc.ResizeTarget().ToImage()
}

// Dirty reports whether anything was drawn since creation or the last
// Discard.
func (c *GGCanvas) Dirty() bool { return c.dirty }

// Discard clears every pixel to transparent and marks the canvas clean.
// Surfaces call it after compositing the pixels onto their target.
func (c *GGCanvas) Discard() {
	c.dc.Clear()
	c.dirty = false
}

// Close releases the gg contexts.
func (c *GGCanvas) Close() error {
	if c.scratch != nil {
		_ = c.scratch.Close()
		c.scratch = nil
	}
	return c.dc.Close()
}

// Width returns the canvas width.
func (c *GGCanvas) Width() int { return c.dc.Width() }

// Height returns the canvas height.
func (c *GGCanvas) Height() int { return c.dc.Height() }

// Clear fills the whole canvas with col.
func (c *GGCanvas) Clear(col ggui.Color) {
	c.dirty = true
	// Pixmap.Clear stores the components as given.
	a := float64(col.A) / 255
	c.dc.ClearWithColor(gg.RGBA{
		R: float64(col.R) / 255 * a,
		G: float64(col.G) / 255 * a,
		B: float64(col.B) / 255 * a,
		A: a,
	})
}

// Save pushes the current state.
func (c *GGCanvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved state.
func (c *GGCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin.
func (c *GGCanvas) Translate(dx, dy float32) {
	c.state.tx += dx
	c.state.ty += dy
}

// ClipRect intersects the clip with r. Partial pixels are included.
func (c *GGCanvas) ClipRect(r ggui.Rect) {
	x0 := int(math.Floor(float64(r.X + c.state.tx)))
	y0 := int(math.Floor(float64(r.Y + c.state.ty)))
	x1 := int(math.Ceil(float64(r.MaxX() + c.state.tx)))
	y1 := int(math.Ceil(float64(r.MaxY() + c.state.ty)))
	c.state.clip = c.state.clip.Intersect(image.Rect(x0, y0, x1, y1))
}

// ClipBounds returns the clip in local coordinates.
func (c *GGCanvas) ClipBounds() ggui.Rect {
	cl := c.state.clip
	return ggui.Rect{
		X:      float32(cl.Min.X) - c.state.tx,
		Y:      float32(cl.Min.Y) - c.state.ty,
		Width:  float32(cl.Dx()),
		Height: float32(cl.Dy()),
	}
}

// SetAlpha multiplies the current opacity.
func (c *GGCanvas) SetAlpha(a float32) {
	c.state.alpha *= min(max(a, 0), 1)
}

// FillRect fills a rectangle.
func (c *GGCanvas) FillRect(r ggui.Rect, paint Paint) {
	if r.IsEmpty() {
		return
	}
	p := NewPath()
	p.Rectangle(r.X, r.Y, r.Width, r.Height)
	c.FillPath(p, paint)
}

// FillPath fills p with paint using the non-zero rule.
func (c *GGCanvas) FillPath(p *Path, paint Paint) {
	if p.IsEmpty() || paint.IsTransparent() || !c.visible() {
		return
	}
	if paint.Bounds.IsEmpty() {
		paint.Bounds = p.Bounds()
	}
	c.draw("fill", func(dc *gg.Context, ox, oy float32) error {
		dc.SetFillRule(gg.FillRuleNonZero)
		dc.SetFillBrush(c.brush(paint, ox, oy))
		appendPath(dc, p, ox, oy)
		return dc.Fill()
	})
}

// StrokePath strokes p with round joins and butt caps.
func (c *GGCanvas) StrokePath(p *Path, paint Paint, width float32) {
	if p.IsEmpty() || width <= 0 || paint.IsTransparent() || !c.visible() {
		return
	}
	if paint.Bounds.IsEmpty() {
		paint.Bounds = p.Bounds()
	}
	c.draw("stroke", func(dc *gg.Context, ox, oy float32) error {
		dc.SetStrokeBrush(c.brush(paint, ox, oy))
		dc.SetLineWidth(float64(width))
		dc.SetLineJoin(gg.LineJoinRound)
		dc.SetLineCap(gg.LineCapButt)
		appendPath(dc, p, ox, oy)
		return dc.Stroke()
	})
}

// DrawImage draws img unscaled at p.
func (c *GGCanvas) DrawImage(img image.Image, p ggui.Point) {
	if img == nil || img.Bounds().Empty() || !c.visible() {
		return
	}
	buf := gg.ImageBufFromImage(img)
	c.draw("image", func(dc *gg.Context, ox, oy float32) error {
		dc.DrawImageEx(buf, gg.DrawImageOptions{
			X:       math.Round(float64(p.X + ox)),
			Y:       math.Round(float64(p.Y + oy)),
			Opacity: float64(c.state.alpha),
		})
		return nil
	})
}

func (c *GGCanvas) visible() bool {
	return c.state.alpha > 0 && !c.state.clip.Empty()
}

// draw runs fn against the target context. ox and oy map local coordinates
// to the pixels of the context fn receives.
func (c *GGCanvas) draw(op string, fn func(dc *gg.Context, ox, oy float32) error) {
	c.dirty = true
	clip := c.state.clip
	if clip == c.bounds() {
		if err := fn(c.dc, c.state.tx, c.state.ty); err != nil {
			ggui.Logger().Warn("canvas: draw failed", "op", op, "err", err)
		}
		return
	}

	s := c.scratchContext(clip.Dx(), clip.Dy())
	ox := c.state.tx - float32(clip.Min.X)
	oy := c.state.ty - float32(clip.Min.Y)
	if err := fn(s, ox, oy); err != nil {
		ggui.Logger().Warn("canvas: draw failed", "op", op, "err", err)
		return
	}
	if err := s.FlushGPU(); err != nil {
		ggui.Logger().Warn("canvas: gpu flush failed", "op", op, "err", err)
		return
	}
	layer := gg.ImageBufFromImage(s.ResizeTarget().ToImage())
	c.dc.DrawImage(layer, float64(clip.Min.X), float64(clip.Min.Y))
}

// scratchContext returns a cleared context of the given size. Shapes queued
// for the main context are flushed first, since the accelerator batches
// across contexts.
func (c *GGCanvas) scratchContext(w, h int) *gg.Context {
	if err := c.dc.FlushGPU(); err != nil {
		ggui.Logger().Warn("canvas: gpu flush failed", "err", err)
	}
	if c.scratch == nil || c.scratch.Width() != w || c.scratch.Height() != h {
		if c.scratch != nil {
			_ = c.scratch.Close()
		}
		c.scratch = gg.NewContext(w, h)
		return c.scratch
	}
	c.scratch.Clear()
	return c.scratch
}

// brush maps paint onto a gg brush in the pixel space of the target, with
// the current opacity applied.
func (c *GGCanvas) brush(paint Paint, ox, oy float32) gg.Brush {
	b := ggui.BrushWithAlpha(paint.Brush, c.state.alpha)
	bounds := paint.Bounds.Translate(ox, oy)
	switch b := b.(type) {
	case ggui.LinearGradient:
		start, end := b.Endpoints(bounds.Width, bounds.Height)
		g := gg.NewLinearGradientBrush(
			float64(bounds.X+start.X), float64(bounds.Y+start.Y),
			float64(bounds.X+end.X), float64(bounds.Y+end.Y),
		)
		for _, s := range ggui.SortStops(b.Stops) {
			g.AddColorStop(float64(s.Position), ggColor(s.Color))
		}
		return g
	case ggui.RadialGradient:
		g := gg.NewRadialGradientBrush(
			float64(bounds.X+bounds.Width/2), float64(bounds.Y+bounds.Height/2),
			0, float64(b.Radius(bounds.Width, bounds.Height)),
		)
		for _, s := range ggui.SortStops(b.Stops) {
			g.AddColorStop(float64(s.Position), ggColor(s.Color))
		}
		return g
	}
	return gg.Solid(ggColor(ggui.BrushColor(b)))
}

func ggColor(c ggui.Color) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// appendPath replays p into the current path of dc, offset by (ox, oy).
func appendPath(dc *gg.Context, p *Path, ox, oy float32) {
	dc.ClearPath()
	p.Walk(func(v Verb, pts []float32) {
		switch v {
		case VerbMoveTo:
			dc.MoveTo(float64(pts[0]+ox), float64(pts[1]+oy))
		case VerbLineTo:
			dc.LineTo(float64(pts[0]+ox), float64(pts[1]+oy))
		case VerbQuadTo:
			dc.QuadraticTo(float64(pts[0]+ox), float64(pts[1]+oy), float64(pts[2]+ox), float64(pts[3]+oy))
		case VerbCubicTo:
			dc.CubicTo(float64(pts[0]+ox), float64(pts[1]+oy), float64(pts[2]+ox), float64(pts[3]+oy),
				float64(pts[4]+ox), float64(pts[5]+oy))
		case VerbClose:
			dc.ClosePath()
		}
	})
}
