// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/cache"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/internal/metrics"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/surface"
	"github.com/gogpu/ggui/textlayout"
	"github.com/gogpu/ggui/window"
)

// Renderer draws a window's items onto a surface.
type Renderer struct {
	surface  surface.Surface
	adapter  window.Ref
	notifier Notifier

	images *cache.ItemCache[cachedImage]
	paths  *cache.ItemCache[cachedPath]

	firstRender bool
	metrics     metrics.Options
	collector   *metrics.Collector

	fonts      *textlayout.FontRegistry
	postRender func(item.Renderer)
}

var _ window.Renderer = (*Renderer)(nil)

// New creates a renderer drawing onto s.
func New(s surface.Surface, opts ...Option) *Renderer {
	r := &Renderer{
		surface:     s,
		images:      cache.New[cachedImage](),
		paths:       cache.New[cachedPath](),
		firstRender: true,
		metrics:     metrics.FromEnv(),
		fonts:       textlayout.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewForWindow creates a renderer with a surface for the native window h,
// taken from the first backend in reg that succeeds.
func NewForWindow(reg *surface.Registry, h surface.Handles, size ggui.PhysicalSize, opts ...Option) (*Renderer, error) {
	s, err := reg.NewSurface(h, size)
	if err != nil {
		return nil, err
	}
	return New(s, opts...), nil
}

// Surface returns the current surface.
func (r *Renderer) Surface() surface.Surface { return r.surface }

// SetSurface replaces the surface. The previous surface is closed and all
// cached resources are dropped.
func (r *Renderer) SetSurface(s surface.Surface) {
	if r.surface != nil && r.surface != s {
		if err := r.surface.Close(); err != nil {
			ggui.Logger().Warn("render: closing previous surface", "surface", r.surface.Name(), "err", err)
		}
	}
	r.images.ClearAll()
	r.paths.ClearAll()
	r.surface = s
	r.firstRender = true
}

// SetWindowHandle creates a surface for the native window h and makes it
// current.
func (r *Renderer) SetWindowHandle(reg *surface.Registry, h surface.Handles, size ggui.PhysicalSize) error {
	s, err := reg.NewSurface(h, size)
	if err != nil {
		return err
	}
	r.SetSurface(s)
	return nil
}

// SetWindowAdapter binds the renderer to a window adapter. Cached
// resources of the previous window are dropped.
func (r *Renderer) SetWindowAdapter(ref window.Ref) {
	r.adapter = ref
	r.images.ClearAll()
	r.paths.ClearAll()
}

// SetRenderingNotifier registers n. Only one notifier can be registered,
// and only when the surface exposes its graphics API.
func (r *Renderer) SetRenderingNotifier(n Notifier) error {
	if r.surface == nil || !r.surface.SupportsGraphicsAPI() {
		return ErrNotifierUnsupported
	}
	if r.notifier != nil {
		return ErrNotifierAlreadySet
	}
	r.notifier = n
	return nil
}

func (r *Renderer) notify(state RenderingState) {
	if r.notifier == nil {
		return
	}
	r.surface.WithGraphicsAPI(func(api surface.GraphicsAPI) {
		r.notifier.Notify(state, api)
	})
}

// Render draws a frame of the bound window.
func (r *Renderer) Render() error {
	return r.RenderWithPostCallback(nil)
}

// RenderWithPostCallback draws a frame and calls post with the item
// renderer after all components were drawn.
func (r *Renderer) RenderWithPostCallback(post func(item.Renderer)) error {
	if r.surface == nil {
		return nil
	}
	if r.firstRender {
		r.firstRender = false
		bpp, err := r.surface.BitsPerPixel()
		if err != nil {
			return err
		}
		name := fmt.Sprintf("ggui renderer (backend %s; surface: %d bpp)", r.surface.Name(), bpp)
		r.collector = metrics.New(r.metrics, name, r.requestRedraw)
		r.notify(RenderingSetup)
	}

	adapter, err := r.adapter.Resolve()
	if err != nil {
		return ggui.NewPlatformError("renderer must be associated with a window before use", err)
	}
	win := adapter.Window()
	size := win.Size()
	scale := win.ScaleFactor()
	background := win.Background()

	err = r.surface.Render(size, func(c canvas.Canvas, gc surface.GraphicsContext) error {
		var frameErr error
		win.DrawContents(func(components []item.ComponentOrigin) {
			frameErr = r.drawFrame(c, gc, win, scale, background, components, post)
		})
		return frameErr
	})
	if err != nil {
		return err
	}
	r.notify(AfterRendering)
	return nil
}

func (r *Renderer) drawFrame(c canvas.Canvas, gc surface.GraphicsContext, win *window.Window, scale float32,
	background ggui.Brush, components []item.ComponentOrigin, post func(item.Renderer)) error {
	solid, isSolid := background.(ggui.SolidBrush)
	if isSolid {
		c.Clear(solid.Color)
	}

	if r.notifier != nil {
		// The notifier may draw its own background, so the clear must
		// reach the frame buffer first.
		if err := gc.Flush(); err != nil {
			return err
		}
		r.notify(BeforeRendering)
	}

	if r.images.ClearCacheIfScaleFactorChanged(win) {
		ggui.Logger().Debug("render: image cache evicted", "scale", scale)
	}
	if r.paths.ClearCacheIfScaleFactorChanged(win) {
		ggui.Logger().Debug("render: path cache evicted", "scale", scale)
	}

	ir := newItemRenderer(c, scale, r.images, r.paths, r.fonts)

	if !isSolid && background != nil {
		ir.DrawRect(win.Size().ToLogical(scale), background)
	}

	for _, co := range components {
		item.RenderComponentItems(co.Component, ir, co.Origin)
	}

	if r.collector != nil {
		r.collector.MeasureFrameRendered(ir)
	}
	if post != nil {
		post(ir)
	}
	if r.postRender != nil {
		r.postRender(ir)
	}
	return gc.Flush()
}

func (r *Renderer) requestRedraw() {
	if a, err := r.adapter.Resolve(); err == nil {
		a.RequestRedraw()
	}
}

// Resize informs the surface of a new window size.
func (r *Renderer) Resize(size ggui.PhysicalSize) error {
	if r.surface == nil {
		return nil
	}
	return r.surface.ResizeEvent(size)
}

// FreeGraphicsResources drops cached resources of a destroyed component.
func (r *Renderer) FreeGraphicsResources(id item.ComponentID) error {
	r.images.ComponentDestroyed(id)
	r.paths.ComponentDestroyed(id)
	return nil
}

// Close notifies teardown and closes the surface.
func (r *Renderer) Close() error {
	if r.surface == nil {
		return nil
	}
	if r.notifier != nil {
		// Teardown errors are not actionable here.
		_ = r.surface.WithActiveSurface(func() {
			r.notify(RenderingTeardown)
		})
	}
	s := r.surface
	r.surface = nil
	r.images.ClearAll()
	r.paths.ClearAll()
	return s.Close()
}

// CacheStats returns statistics of the image and path caches.
func (r *Renderer) CacheStats() (images, paths cache.Stats) {
	return r.images.Stats(), r.paths.Stats()
}

// DefaultFontSize returns the font size used when an item sets none.
func (r *Renderer) DefaultFontSize() float32 { return textlayout.DefaultFontSize }

// RegisterFontFromMemory makes a font available to text items.
func (r *Renderer) RegisterFontFromMemory(data []byte) error {
	return r.fonts.RegisterFontFromMemory(data)
}

// RegisterFontFromPath loads a font file and makes it available to text
// items.
func (r *Renderer) RegisterFontFromPath(path string) error {
	return r.fonts.RegisterFontFromPath(path)
}

// TextSize measures text in logical pixels.
func (r *Renderer) TextSize(font item.FontRequest, text string, maxWidth *float32, scale float32) ggui.Size {
	return r.fonts.TextSize(font, text, maxWidth, scale)
}

// TextInputByteOffsetForPosition returns the byte offset into in.Text
// closest to pos.
func (r *Renderer) TextInputByteOffsetForPosition(in *item.TextInput, pos ggui.Point, font item.FontRequest, scale float32) int {
	return r.fonts.ByteOffsetForPosition(in, pos, font, scale)
}

// TextInputCursorRectForByteOffset returns the caret rectangle at a byte
// offset into in.Text.
func (r *Renderer) TextInputCursorRectForByteOffset(in *item.TextInput, byteOffset int, font item.FontRequest, scale float32) ggui.Rect {
	return r.fonts.CursorRectForByteOffset(in, byteOffset, font, scale)
}
