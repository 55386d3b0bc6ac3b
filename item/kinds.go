// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package item

import (
	"image"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
)

// Rectangle fills its geometry with a brush.
type Rectangle struct {
	Rect       ggui.Rect
	Background ggui.Brush
}

func (r *Rectangle) Geometry() ggui.Rect { return r.Rect }

func (r *Rectangle) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	v.DrawRectangle(r, self, size)
	return ContinueRenderingChildren
}

// BorderRectangle is a rectangle with an optional rounded border.
type BorderRectangle struct {
	Rect         ggui.Rect
	Background   ggui.Brush
	BorderWidth  float32
	BorderRadius float32
	BorderColor  ggui.Brush
}

func (r *BorderRectangle) Geometry() ggui.Rect { return r.Rect }

func (r *BorderRectangle) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	v.DrawBorderRectangle(r, self, size)
	return ContinueRenderingChildren
}

// ImageFit controls how an image is scaled into its geometry.
type ImageFit uint8

const (
	// ImageFitFill stretches the image to the geometry.
	ImageFitFill ImageFit = iota
	// ImageFitContain scales uniformly so the whole image is visible.
	ImageFitContain
	// ImageFitCover scales uniformly so the geometry is fully covered.
	ImageFitCover
)

// Image draws a raster image.
type Image struct {
	Rect   ggui.Rect
	Source image.Image
	Fit    ImageFit
}

func (i *Image) Geometry() ggui.Rect { return i.Rect }

func (i *Image) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	v.DrawImage(i, self, size)
	return ContinueRenderingChildren
}

// Path draws a vector path.
//
// Path coordinates are logical pixels. When Viewbox is non-empty the path is
// scaled so the viewbox fills the item geometry.
type Path struct {
	Rect        ggui.Rect
	Path        *canvas.Path
	Viewbox     ggui.Rect
	Fill        ggui.Brush
	Stroke      ggui.Brush
	StrokeWidth float32
}

func (p *Path) Geometry() ggui.Rect { return p.Rect }

func (p *Path) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	v.DrawPath(p, self, size)
	return ContinueRenderingChildren
}

// BoxShadow draws a drop shadow for a (rounded) rectangle of the item's
// size.
type BoxShadow struct {
	Rect         ggui.Rect
	OffsetX      float32
	OffsetY      float32
	Color        ggui.Color
	Blur         float32
	BorderRadius float32
}

func (s *BoxShadow) Geometry() ggui.Rect { return s.Rect }

func (s *BoxShadow) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	v.DrawBoxShadow(s, self, size)
	return ContinueRenderingChildren
}

// Clip restricts its children to its geometry when Enabled.
type Clip struct {
	Rect         ggui.Rect
	Enabled      bool
	BorderRadius float32
	BorderWidth  float32
}

func (c *Clip) Geometry() ggui.Rect { return c.Rect }

func (c *Clip) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	return v.VisitClip(c, self, size)
}

// Opacity draws its children with reduced opacity.
type Opacity struct {
	Rect    ggui.Rect
	Opacity float32
}

func (o *Opacity) Geometry() ggui.Rect { return o.Rect }

func (o *Opacity) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	return v.VisitOpacity(o, self, size)
}

// Empty is a container with no visual of its own.
type Empty struct {
	Rect ggui.Rect
}

func (e *Empty) Geometry() ggui.Rect { return e.Rect }

func (e *Empty) Render(Renderer, Ref, ggui.Size) RenderingResult {
	return ContinueRenderingChildren
}

var (
	_ Item = (*Rectangle)(nil)
	_ Item = (*BorderRectangle)(nil)
	_ Item = (*Image)(nil)
	_ Item = (*Path)(nil)
	_ Item = (*BoxShadow)(nil)
	_ Item = (*Clip)(nil)
	_ Item = (*Opacity)(nil)
	_ Item = (*Empty)(nil)
	_ Item = (*Text)(nil)
	_ Item = (*TextInput)(nil)
)
