// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glsurface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/surface"
)

// Name is the registry name of the OpenGL backend.
const Name = "opengl"

// Priority is the registry priority of the OpenGL backend.
const Priority = 100

// ErrInvalidHandles is returned when Handles.Window is not a *glfw.Window.
var ErrInvalidHandles = errors.New("glsurface: window handle must be a *glfw.Window")

// GLError is an error code reported by glGetError.
type GLError uint32

func (e GLError) Error() string {
	return fmt.Sprintf("glsurface: OpenGL error 0x%04x", uint32(e))
}

var initGL = sync.OnceValue(gl.Init)

func init() {
	surface.Register(Name, Priority, Factory, nil)
}

// Surface draws into the default framebuffer of a glfw window.
//
// Each flush of the graphics context composites what the canvas holds over
// the framebuffer with premultiplied source-over blending and clears the
// canvas, so content drawn natively between flushes stays visible.
type Surface struct {
	win    *glfw.Window
	dev    device
	canvas *canvas.GGCanvas
	size   ggui.PhysicalSize
	closed bool
}

var _ surface.Surface = (*Surface)(nil)

// Factory creates a Surface from Handles whose Window is a *glfw.Window.
func Factory(h surface.Handles, size ggui.PhysicalSize) (surface.Surface, error) {
	win, ok := h.Window.(*glfw.Window)
	if !ok || win == nil {
		return nil, ggui.NewPlatformError("create opengl surface", ErrInvalidHandles)
	}
	return New(win, size)
}

// New makes the window's context current and builds the compositing
// program.
func New(win *glfw.Window, size ggui.PhysicalSize) (*Surface, error) {
	dev, err := newGLDevice(win)
	if err != nil {
		return nil, ggui.NewPlatformError("create opengl surface", err)
	}
	s := newSurface(dev, size)
	s.win = win
	return s, nil
}

func newSurface(dev device, size ggui.PhysicalSize) *Surface {
	s := &Surface{dev: dev}
	s.resize(size)
	return s
}

func (s *Surface) resize(size ggui.PhysicalSize) {
	s.size = size
	if s.canvas != nil {
		_ = s.canvas.Close()
	}
	s.canvas = canvas.NewGGCanvas(int(size.Width), int(size.Height))
}

// Name implements surface.Surface.
func (s *Surface) Name() string { return Name }

// Window returns the glfw window the surface draws into.
func (s *Surface) Window() *glfw.Window { return s.win }

// Render draws a frame and swaps the window's buffers.
func (s *Surface) Render(size ggui.PhysicalSize, draw surface.DrawFunc) error {
	if s.closed {
		return ggui.NewPlatformError("render on opengl surface", surface.ErrSurfaceClosed)
	}
	s.dev.makeCurrent()
	if size != s.size {
		s.resize(size)
	}
	s.canvas.Reset()
	s.canvas.Discard()
	if !s.size.IsEmpty() {
		s.dev.beginFrame(int32(s.size.Width), int32(s.size.Height))
	}
	if err := draw(s.canvas, glContext{s}); err != nil {
		return err
	}
	if s.size.IsEmpty() {
		return nil
	}
	if err := s.composite(); err != nil {
		return ggui.NewPlatformError("present opengl frame", err)
	}
	if err := s.dev.endFrame(); err != nil {
		return ggui.NewPlatformError("present opengl frame", err)
	}
	return nil
}

// composite draws pending canvas content over the framebuffer and clears
// the canvas.
func (s *Surface) composite() error {
	if !s.canvas.Dirty() || s.size.IsEmpty() {
		return nil
	}
	pix, err := s.canvas.Pixels()
	if err != nil {
		return err
	}
	s.dev.composite(pix, int32(s.canvas.Width()), int32(s.canvas.Height()))
	s.canvas.Discard()
	return nil
}

// ResizeEvent resizes the back buffer.
func (s *Surface) ResizeEvent(size ggui.PhysicalSize) error {
	if s.closed {
		return ggui.NewPlatformError("resize opengl surface", surface.ErrSurfaceClosed)
	}
	s.dev.makeCurrent()
	if size != s.size {
		s.resize(size)
	}
	return nil
}

// SupportsGraphicsAPI returns true.
func (s *Surface) SupportsGraphicsAPI() bool { return true }

// WithGraphicsAPI calls fn with the OpenGL function loader.
func (s *Surface) WithGraphicsAPI(fn func(api surface.GraphicsAPI)) {
	if s.closed {
		return
	}
	fn(surface.NativeOpenGL{GetProcAddress: glfw.GetProcAddress})
}

// WithActiveSurface makes the window's context current and calls fn.
func (s *Surface) WithActiveSurface(fn func()) error {
	if s.closed {
		return ggui.NewPlatformError("activate opengl surface", surface.ErrSurfaceClosed)
	}
	s.dev.makeCurrent()
	fn()
	return nil
}

// BitsPerPixel sums the channel sizes of the default framebuffer.
func (s *Surface) BitsPerPixel() (uint8, error) {
	if s.closed {
		return 0, ggui.NewPlatformError("query opengl framebuffer", surface.ErrSurfaceClosed)
	}
	s.dev.makeCurrent()
	sizes, err := s.dev.framebufferSizes()
	if err != nil {
		return 0, ggui.NewPlatformError("query opengl framebuffer", err)
	}
	return bitsPerPixel(sizes), nil
}

func bitsPerPixel(sizes [4]int32) uint8 {
	var sum int32
	for _, v := range sizes {
		sum += v
	}
	return uint8(sum)
}

// Close deletes the GL objects. The window stays owned by the caller.
// Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.dev.makeCurrent()
	s.dev.release()
	if s.canvas != nil {
		_ = s.canvas.Close()
		s.canvas = nil
	}
	return nil
}

// glContext composites the canvas so far, letting native drawing that
// follows land on top of it.
type glContext struct{ s *Surface }

func (c glContext) Flush() error {
	return c.s.composite()
}
