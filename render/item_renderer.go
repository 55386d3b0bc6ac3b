// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"
	"reflect"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/cache"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/textlayout"
)

// cachedImage is an image item scaled to physical pixels.
type cachedImage struct {
	img *image.RGBA
	at  ggui.Point // top-left in physical item coordinates
	key imageKey
}

// imageKey holds the inputs a cachedImage was produced from.
type imageKey struct {
	src image.Image
	fit item.ImageFit
	box ggui.Rect
}

func (k imageKey) matches(o imageKey) bool {
	return k.fit == o.fit && k.box == o.box && sameImage(k.src, o.src)
}

// sameImage compares images by identity. Values of non-comparable image
// types never match.
func sameImage(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// cachedPath is a path item transformed to physical pixels.
type cachedPath struct {
	path *canvas.Path
	key  pathKey
}

// pathKey holds the inputs a cachedPath was produced from. The verb count
// catches paths extended in place.
type pathKey struct {
	src     *canvas.Path
	verbs   int
	viewbox ggui.Rect
	size    ggui.Size
}

type shadowKey struct {
	w, h, blur, radius float32
}

// itemRenderer draws items onto a canvas. Item coordinates are logical
// pixels; the canvas works in physical pixels.
type itemRenderer struct {
	c      canvas.Canvas
	scale  float32
	images *cache.ItemCache[cachedImage]
	paths  *cache.ItemCache[cachedPath]
	fonts  *textlayout.FontRegistry

	// Shadow outlines live for one frame.
	shadows map[shadowKey][]*canvas.Path
}

var _ item.Renderer = (*itemRenderer)(nil)

func newItemRenderer(c canvas.Canvas, scale float32, images *cache.ItemCache[cachedImage],
	paths *cache.ItemCache[cachedPath], fonts *textlayout.FontRegistry) *itemRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &itemRenderer{
		c:       c,
		scale:   scale,
		images:  images,
		paths:   paths,
		fonts:   fonts,
		shadows: make(map[shadowKey][]*canvas.Path),
	}
}

func (r *itemRenderer) box(size ggui.Size) ggui.Rect {
	return ggui.Rect{Width: size.Width * r.scale, Height: size.Height * r.scale}
}

func (r *itemRenderer) fill(rect ggui.Rect, b ggui.Brush) {
	if ggui.IsBrushTransparent(b) {
		return
	}
	r.c.FillRect(rect, canvas.Paint{Brush: b, Bounds: rect})
}

func (r *itemRenderer) DrawRectangle(rect *item.Rectangle, _ item.Ref, size ggui.Size) {
	r.fill(r.box(size), rect.Background)
}

func (r *itemRenderer) DrawBorderRectangle(rect *item.BorderRectangle, _ item.Ref, size ggui.Size) {
	box := r.box(size)
	if box.IsEmpty() {
		return
	}
	bw := min(rect.BorderWidth*r.scale, box.Width/2, box.Height/2)
	radius := min(rect.BorderRadius*r.scale, box.Width/2, box.Height/2)
	bw = max(bw, 0)
	radius = max(radius, 0)

	inner := box.Inset(bw)
	innerRadius := max(radius-bw, 0)
	if !ggui.IsBrushTransparent(rect.Background) && !inner.IsEmpty() {
		p := canvas.NewPath()
		p.RoundedRectangle(inner.X, inner.Y, inner.Width, inner.Height, innerRadius)
		r.c.FillPath(p, canvas.Paint{Brush: rect.Background, Bounds: box})
	}
	if bw > 0 && !ggui.IsBrushTransparent(rect.BorderColor) {
		p := canvas.NewPath()
		p.RoundedRectangle(box.X, box.Y, box.Width, box.Height, radius)
		if !inner.IsEmpty() {
			p.ReverseRoundedRectangle(inner.X, inner.Y, inner.Width, inner.Height, innerRadius)
		}
		r.c.FillPath(p, canvas.Paint{Brush: rect.BorderColor, Bounds: box})
	}
}

func (r *itemRenderer) DrawImage(img *item.Image, self item.Ref, size ggui.Size) {
	box := r.box(size)
	if box.IsEmpty() || img.Source == nil {
		return
	}
	key := imageKey{src: img.Source, fit: img.Fit, box: box}
	cached, ok := r.images.GetOrRefresh(self, func(c cachedImage) bool {
		return c.key.matches(key)
	}, func() (cachedImage, bool) {
		c, ok := scaleImage(img.Source, img.Fit, box)
		c.key = key
		return c, ok
	})
	if !ok {
		return
	}
	r.c.Save()
	r.c.ClipRect(box)
	r.c.DrawImage(cached.img, cached.at)
	r.c.Restore()
}

// scaleImage resamples src to the physical size it is drawn at.
func scaleImage(src image.Image, fit item.ImageFit, box ggui.Rect) (cachedImage, bool) {
	sb := src.Bounds()
	if sb.Empty() {
		return cachedImage{}, false
	}
	w, h := box.Width, box.Height
	sx := w / float32(sb.Dx())
	sy := h / float32(sb.Dy())
	switch fit {
	case item.ImageFitContain:
		s := min(sx, sy)
		sx, sy = s, s
	case item.ImageFitCover:
		s := max(sx, sy)
		sx, sy = s, s
	}
	dw := int(math.Round(float64(float32(sb.Dx()) * sx)))
	dh := int(math.Round(float64(float32(sb.Dy()) * sy)))
	if dw <= 0 || dh <= 0 {
		return cachedImage{}, false
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	return cachedImage{
		img: dst,
		at:  ggui.Point{X: (w - float32(dw)) / 2, Y: (h - float32(dh)) / 2},
	}, true
}

func (r *itemRenderer) DrawPath(p *item.Path, self item.Ref, size ggui.Size) {
	if p.Path == nil || p.Path.IsEmpty() {
		return
	}
	key := pathKey{src: p.Path, verbs: p.Path.Len(), viewbox: p.Viewbox, size: size}
	cached, ok := r.paths.GetOrRefresh(self, func(c cachedPath) bool {
		return c.key == key
	}, func() (cachedPath, bool) {
		sx, sy := r.scale, r.scale
		var dx, dy float32
		if vb := p.Viewbox; !vb.IsEmpty() {
			sx = size.Width / vb.Width * r.scale
			sy = size.Height / vb.Height * r.scale
			dx, dy = -vb.X*sx, -vb.Y*sy
		}
		return cachedPath{path: p.Path.Transformed(sx, sy, dx, dy), key: key}, true
	})
	if !ok {
		return
	}
	path := cached.path
	box := r.box(size)
	if !ggui.IsBrushTransparent(p.Fill) {
		r.c.FillPath(path, canvas.Paint{Brush: p.Fill, Bounds: box})
	}
	if p.StrokeWidth > 0 && !ggui.IsBrushTransparent(p.Stroke) {
		r.c.StrokePath(path, canvas.Paint{Brush: p.Stroke, Bounds: box}, p.StrokeWidth*r.scale)
	}
}

// shadowSteps bounds the number of layers approximating a blur.
const shadowSteps = 8

func (r *itemRenderer) DrawBoxShadow(s *item.BoxShadow, _ item.Ref, size ggui.Size) {
	if s.Color.IsTransparent() || size.IsEmpty() {
		return
	}
	key := shadowKey{
		w:      size.Width * r.scale,
		h:      size.Height * r.scale,
		blur:   max(s.Blur*r.scale, 0),
		radius: max(s.BorderRadius*r.scale, 0),
	}
	layers, ok := r.shadows[key]
	if !ok {
		layers = shadowLayers(key)
		r.shadows[key] = layers
	}
	col := s.Color
	if len(layers) > 1 {
		col = col.WithAlpha(1 / float32(len(layers)))
	}
	r.c.Save()
	r.c.Translate(s.OffsetX*r.scale, s.OffsetY*r.scale)
	for _, p := range layers {
		r.c.FillPath(p, canvas.SolidPaint(col))
	}
	r.c.Restore()
}

// shadowLayers approximates a blurred rounded rectangle with stacked
// outlines growing from blur/2 inside to blur/2 outside the edge.
func shadowLayers(k shadowKey) []*canvas.Path {
	n := 1
	if k.blur > 0 {
		n = min(int(math.Ceil(float64(k.blur))), shadowSteps)
	}
	layers := make([]*canvas.Path, 0, n)
	for i := range n {
		var d float32
		if n > 1 {
			d = k.blur * (float32(i)/float32(n-1) - 0.5)
		}
		x, y := -d, -d
		w, h := k.w+2*d, k.h+2*d
		if w <= 0 || h <= 0 {
			continue
		}
		p := canvas.NewPath()
		p.RoundedRectangle(x, y, w, h, max(min(k.radius+d, w/2, h/2), 0))
		layers = append(layers, p)
	}
	return layers
}

func (r *itemRenderer) DrawText(t *item.Text, _ item.Ref, size ggui.Size) {
	box := r.box(size)
	if box.IsEmpty() || t.Text == "" || ggui.IsBrushTransparent(t.Color) {
		return
	}
	l, topLeft := r.fonts.CreateLayout(t.Font, r.scale, t.Text, textlayout.LayoutOptions{
		MaxWidth:  box.Width,
		MaxHeight: box.Height,
		HAlign:    t.HAlign,
		VAlign:    t.VAlign,
		Wrap:      t.Wrap,
		Overflow:  t.Overflow,
	})
	r.c.Save()
	r.c.ClipRect(box)
	l.Draw(r.c, topLeft, canvas.Paint{Brush: t.Color, Bounds: box})
	r.c.Restore()
}

func (r *itemRenderer) DrawTextInput(t *item.TextInput, _ item.Ref, size ggui.Size) {
	box := r.box(size)
	if box.IsEmpty() {
		return
	}
	vis := textlayout.NewVisualRepresentation(t)
	l, topLeft := r.fonts.CreateLayout(t.Font, r.scale, vis.Text, textlayout.LayoutOptions{
		MaxWidth:  box.Width,
		MaxHeight: box.Height,
		HAlign:    t.HAlign,
		VAlign:    t.VAlign,
		Wrap:      t.Wrap,
	})

	r.c.Save()
	r.c.ClipRect(box)
	if !t.SelectionBackground.IsTransparent() {
		for _, sel := range l.SelectionRects(vis.SelectionStart, vis.SelectionEnd) {
			r.c.FillRect(sel.Translate(topLeft.X, topLeft.Y), canvas.SolidPaint(t.SelectionBackground))
		}
	}
	l.Draw(r.c, topLeft, canvas.Paint{Brush: t.Color, Bounds: box})

	color := ggui.BrushColor(t.Color)
	if ps, pe := vis.PreeditRange(); ps < pe {
		for _, u := range l.SelectionRects(ps, pe) {
			underline := ggui.Rect{X: u.X, Y: u.MaxY() - r.scale, Width: u.Width, Height: r.scale}
			r.c.FillRect(underline.Translate(topLeft.X, topLeft.Y), canvas.SolidPaint(color))
		}
	}
	if t.CursorVisible && t.HasFocus {
		caret := l.CursorRect(vis.Cursor, max(t.CursorWidth, 1)*r.scale)
		r.c.FillRect(caret.Translate(topLeft.X, topLeft.Y), canvas.SolidPaint(color))
	}
	r.c.Restore()
}

func (r *itemRenderer) VisitClip(c *item.Clip, _ item.Ref, size ggui.Size) item.RenderingResult {
	if !c.Enabled {
		return item.ContinueRenderingChildren
	}
	rect := ggui.Rect{Width: size.Width, Height: size.Height}
	if !r.CombineClip(rect, c.BorderRadius, c.BorderWidth) {
		return item.ContinueRenderingWithoutChildren
	}
	return item.ContinueRenderingChildren
}

func (r *itemRenderer) VisitOpacity(o *item.Opacity, _ item.Ref, _ ggui.Size) item.RenderingResult {
	if o.Opacity <= 0 {
		return item.ContinueRenderingWithoutChildren
	}
	if o.Opacity < 1 {
		r.c.SetAlpha(o.Opacity)
	}
	return item.ContinueRenderingChildren
}

// CombineClip intersects the clip with rect. Rounded corners clip to the
// bounding rectangle.
func (r *itemRenderer) CombineClip(rect ggui.Rect, _, borderWidth float32) bool {
	if borderWidth > 0 {
		rect = rect.Inset(borderWidth)
	}
	r.c.ClipRect(rect.Scale(r.scale))
	return !r.CurrentClip().IsEmpty()
}

func (r *itemRenderer) CurrentClip() ggui.Rect {
	return r.c.ClipBounds().Scale(1 / r.scale)
}

func (r *itemRenderer) Translate(dx, dy float32) {
	r.c.Translate(dx*r.scale, dy*r.scale)
}

func (r *itemRenderer) SaveState()    { r.c.Save() }
func (r *itemRenderer) RestoreState() { r.c.Restore() }

func (r *itemRenderer) ScaleFactor() float32 { return r.scale }

func (r *itemRenderer) DrawRect(size ggui.Size, brush ggui.Brush) {
	r.fill(r.box(size), brush)
}

func (r *itemRenderer) DrawString(s string, color ggui.Color) {
	if s == "" || color.IsTransparent() {
		return
	}
	l, _ := r.fonts.CreateLayout(item.FontRequest{}, r.scale, s, textlayout.LayoutOptions{})
	l.Draw(r.c, ggui.Point{}, canvas.SolidPaint(color))
}
