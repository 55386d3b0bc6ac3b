// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
)

// SoftwareName is the registry name of ImageSurface.
const SoftwareName = "software"

// ImageSurface is an offscreen software surface.
//
// Frames are drawn into a canvas.GGCanvas and copied to a front buffer
// when presented. It is used headless and in tests.
//
// Example:
//
//	s := surface.NewImageSurface(ggui.PhysicalSize{Width: 800, Height: 600})
//	defer s.Close()
//
//	err := s.Render(s.Size(), func(c canvas.Canvas, gc surface.GraphicsContext) error {
//	    c.Clear(ggui.White)
//	    return gc.Flush()
//	})
//	img := s.Snapshot()
type ImageSurface struct {
	size    ggui.PhysicalSize
	canvas  *canvas.GGCanvas
	front   *image.RGBA
	frames  int
	flushes int
	closed  bool
}

var _ Surface = (*ImageSurface)(nil)

// NewImageSurface creates a software surface of the given size.
func NewImageSurface(size ggui.PhysicalSize) *ImageSurface {
	s := &ImageSurface{}
	s.resize(size)
	return s
}

func (s *ImageSurface) resize(size ggui.PhysicalSize) {
	s.size = size
	if s.canvas != nil {
		_ = s.canvas.Close()
	}
	s.canvas = canvas.NewGGCanvas(int(size.Width), int(size.Height))
}

// Name implements Surface.
func (s *ImageSurface) Name() string { return SoftwareName }

// Size returns the current frame buffer size.
func (s *ImageSurface) Size() ggui.PhysicalSize { return s.size }

// Render draws a frame into the back buffer and presents it.
func (s *ImageSurface) Render(size ggui.PhysicalSize, draw DrawFunc) error {
	if s.closed {
		return ggui.NewPlatformError("render on software surface", ErrSurfaceClosed)
	}
	if size != s.size {
		s.resize(size)
	}
	s.canvas.Reset()
	if err := draw(s.canvas, imageContext{s}); err != nil {
		return err
	}
	s.front = s.canvas.Snapshot()
	s.frames++
	return nil
}

// ResizeEvent resizes the back buffer.
func (s *ImageSurface) ResizeEvent(size ggui.PhysicalSize) error {
	if s.closed {
		return ggui.NewPlatformError("resize software surface", ErrSurfaceClosed)
	}
	if size != s.size {
		s.resize(size)
	}
	return nil
}

// SupportsGraphicsAPI returns false: there is no native context.
func (s *ImageSurface) SupportsGraphicsAPI() bool { return false }

// WithGraphicsAPI does nothing.
func (s *ImageSurface) WithGraphicsAPI(func(GraphicsAPI)) {}

// WithActiveSurface calls fn directly.
func (s *ImageSurface) WithActiveSurface(fn func()) error {
	fn()
	return nil
}

// BitsPerPixel returns 32 (RGBA8).
func (s *ImageSurface) BitsPerPixel() (uint8, error) { return 32, nil }

// Snapshot returns the last presented frame, or nil before the first.
// The image is shared; callers must not modify it.
func (s *ImageSurface) Snapshot() *image.RGBA { return s.front }

// Frames returns the number of presented frames.
func (s *ImageSurface) Frames() int { return s.frames }

// Flushes returns how often the graphics context was flushed.
func (s *ImageSurface) Flushes() int { return s.flushes }

// Close releases the buffers. Close is idempotent.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.canvas != nil {
		_ = s.canvas.Close()
	}
	s.canvas = nil
	return nil
}

type imageContext struct{ s *ImageSurface }

func (c imageContext) Flush() error {
	c.s.flushes++
	return nil
}
