// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
)

// Surface is a rendering target bound to a native window.
//
// Surfaces are NOT thread-safe. They belong to the goroutine that runs the
// event loop.
type Surface interface {
	// Name returns a short diagnostic name such as "opengl".
	Name() string

	// Render prepares a frame of the given physical size, calls draw and
	// presents the result. Errors from draw are returned unchanged; a
	// backend failure is returned as *ggui.PlatformError.
	Render(size ggui.PhysicalSize, draw DrawFunc) error

	// ResizeEvent informs the surface of a new window size.
	ResizeEvent(size ggui.PhysicalSize) error

	// SupportsGraphicsAPI reports whether WithGraphicsAPI can expose
	// native handles.
	SupportsGraphicsAPI() bool

	// WithGraphicsAPI calls fn with the backend-native handles. It does
	// nothing when the surface does not support it.
	WithGraphicsAPI(fn func(api GraphicsAPI))

	// WithActiveSurface makes the surface's context current for the
	// duration of fn.
	WithActiveSurface(fn func()) error

	// BitsPerPixel returns the color depth of the frame buffer.
	BitsPerPixel() (uint8, error)

	// Close releases native resources. Close is idempotent.
	Close() error
}

// DrawFunc draws one frame onto c. gc gives access to the backend's
// graphics context for flushing pending work.
type DrawFunc func(c canvas.Canvas, gc GraphicsContext) error

// GraphicsContext is the backend context handed to a DrawFunc.
type GraphicsContext interface {
	// Flush submits all pending drawing to the backend.
	Flush() error
}

// Handles carries the native window and display a surface is created for.
// The concrete types depend on the backend, for example *glfw.Window.
type Handles struct {
	Window  any
	Display any
}

// Factory creates a surface for the given native handles and size.
type Factory func(h Handles, size ggui.PhysicalSize) (Surface, error)
