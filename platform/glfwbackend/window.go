// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfwbackend

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/platform"
	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/surface"
	"github.com/gogpu/ggui/surface/glsurface"
	"github.com/gogpu/ggui/surface/gpusurface"
	"github.com/gogpu/ggui/window"
)

// ErrNoWebGPUHost is returned when a webgpu window is requested without
// Options.WebGPUHost.
var ErrNoWebGPUHost = errors.New("glfwbackend: no WebGPU host configured")

// HostFunc connects a window created without a client API to a WebGPU
// device owned by the application.
type HostFunc func(w *glfw.Window) (gpusurface.Host, error)

// Options configures the windows of a backend.
type Options struct {
	// Render is passed to every renderer.
	Render []render.Option

	// WebGPUHost enables the "webgpu" renderer.
	WebGPUHost HostFunc

	// Surfaces resolves surface backends. Nil means the default registry.
	Surfaces *surface.Registry
}

// Register adds the "opengl" renderer, and the "webgpu" renderer when a
// host is configured, to b ahead of the software fallback. The backend's
// clipboard becomes the system one.
func Register(b *platform.Backend, o Options) {
	b.SetClipboard(Clipboard{})
	wake := b.Loop().Wake
	b.Register(platform.RendererOpenGL, func(title string, size ggui.PhysicalSize) (window.Adapter, error) {
		return NewWindow(platform.RendererOpenGL, title, size, wake, o)
	})
	if o.WebGPUHost != nil {
		b.Register(platform.RendererWebGPU, func(title string, size ggui.PhysicalSize) (window.Adapter, error) {
			return NewWindow(platform.RendererWebGPU, title, size, wake, o)
		})
	}
}

// Adapter is a glfw window with its renderer.
type Adapter struct {
	native   *glfw.Window
	win      *window.Window
	renderer *render.Renderer
	wake     func()
	cursor   ggui.Point
}

var _ window.Adapter = (*Adapter)(nil)

// NewWindow creates a hidden glfw window rendered by the named surface
// backend. wake is called when a redraw is requested and may be nil.
func NewWindow(renderer, title string, size ggui.PhysicalSize, wake func(), o Options) (*Adapter, error) {
	switch renderer {
	case platform.RendererOpenGL:
	case platform.RendererWebGPU:
		if o.WebGPUHost == nil {
			return nil, ErrNoWebGPUHost
		}
	default:
		return nil, fmt.Errorf("glfwbackend: unsupported renderer %q", renderer)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	if renderer == platform.RendererOpenGL {
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	native, err := glfw.CreateWindow(int(size.Width), int(size.Height), title, nil, nil)
	if err != nil {
		return nil, ggui.NewPlatformError("create glfw window", err)
	}

	h := surface.Handles{Window: native}
	if renderer == platform.RendererWebGPU {
		host, err := o.WebGPUHost(native)
		if err != nil {
			native.Destroy()
			return nil, ggui.NewPlatformError("connect WebGPU host", err)
		}
		h.Window = host
	}

	fbw, fbh := native.GetFramebufferSize()
	physical := ggui.PhysicalSize{Width: uint32(fbw), Height: uint32(fbh)}

	reg := o.Surfaces
	if reg == nil {
		reg = surface.DefaultRegistry()
	}
	s, err := reg.NewSurfaceByName(surfaceName(renderer), h, physical)
	if err != nil {
		native.Destroy()
		return nil, err
	}
	if renderer == platform.RendererOpenGL {
		glfw.SwapInterval(1)
	}

	a := &Adapter{
		native:   native,
		win:      window.New(physical),
		renderer: render.New(s, o.Render...),
		wake:     wake,
	}
	sx, _ := native.GetContentScale()
	if sx > 0 {
		a.win.SetScaleFactor(sx)
	}
	a.win.OnComponentDestroyed(func(id item.ComponentID) {
		_ = a.renderer.FreeGraphicsResources(id)
	})
	a.installCallbacks()
	return a, nil
}

func surfaceName(renderer string) string {
	if renderer == platform.RendererWebGPU {
		return gpusurface.Name
	}
	return glsurface.Name
}

func (a *Adapter) installCallbacks() {
	a.native.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		size := ggui.PhysicalSize{Width: uint32(width), Height: uint32(height)}
		a.win.Dispatch(window.Resized{Size: size})
		if err := a.renderer.Resize(size); err != nil {
			ggui.Logger().Warn("glfwbackend: resize failed", "err", err)
		}
		a.RequestRedraw()
	})
	a.native.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		a.win.Dispatch(window.ScaleFactorChanged{ScaleFactor: x})
		a.RequestRedraw()
	})
	a.native.SetCloseCallback(func(w *glfw.Window) {
		// Closing is decided by the window; glfw must not close on its own.
		w.SetShouldClose(false)
		if a.win.Dispatch(window.CloseRequested{}) {
			_ = a.Hide()
		}
	})
	a.native.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		a.win.Dispatch(window.FocusChanged{Focused: focused})
	})
	a.native.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		ww, wh := w.GetSize()
		fw, fh := w.GetFramebufferSize()
		a.cursor = cursorToLogical(x, y, ww, wh, fw, fh, a.win.ScaleFactor())
		a.win.Dispatch(window.PointerMoved{Position: a.cursor})
	})
	a.native.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		a.win.Dispatch(window.PointerPressed{
			Position: a.cursor,
			Button:   translateButton(button),
			Pressed:  action == glfw.Press,
		})
	})
	a.native.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		a.win.Dispatch(translateKey(key, action, mods))
	})
	a.native.SetCharCallback(func(_ *glfw.Window, char rune) {
		a.win.Dispatch(window.KeyInput{Text: string(char), Pressed: true})
	})
	a.native.SetRefreshCallback(func(*glfw.Window) {
		a.RequestRedraw()
	})
}

func (a *Adapter) Window() *window.Window { return a.win }

func (a *Adapter) Renderer() window.Renderer { return a.renderer }

// FrameRenderer returns the concrete renderer.
func (a *Adapter) FrameRenderer() *render.Renderer { return a.renderer }

// Native returns the glfw window.
func (a *Adapter) Native() *glfw.Window { return a.native }

func (a *Adapter) RequestRedraw() {
	a.win.RequestRedraw()
	if a.wake != nil {
		a.wake()
	}
}

func (a *Adapter) Show() error {
	a.native.Show()
	a.win.SetVisible(true)
	a.RequestRedraw()
	return nil
}

func (a *Adapter) Hide() error {
	a.native.Hide()
	a.win.SetVisible(false)
	return nil
}

// cursorToLogical converts a cursor position in screen coordinates to
// logical pixels.
func cursorToLogical(x, y float64, winW, winH, fbW, fbH int, scale float32) ggui.Point {
	sx, sy := 1.0, 1.0
	if winW > 0 && winH > 0 {
		sx = float64(fbW) / float64(winW)
		sy = float64(fbH) / float64(winH)
	}
	if scale <= 0 {
		scale = 1
	}
	return ggui.Point{
		X: float32(x*sx) / scale,
		Y: float32(y*sy) / scale,
	}
}

func translateButton(b glfw.MouseButton) window.PointerButton {
	switch b {
	case glfw.MouseButtonLeft:
		return window.ButtonLeft
	case glfw.MouseButtonRight:
		return window.ButtonRight
	case glfw.MouseButtonMiddle:
		return window.ButtonMiddle
	default:
		return window.ButtonOther
	}
}

func translateMods(m glfw.ModifierKey) window.Modifiers {
	var out window.Modifiers
	if m&glfw.ModShift != 0 {
		out |= window.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= window.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= window.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= window.ModSuper
	}
	return out
}

func translateKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) window.KeyInput {
	return window.KeyInput{
		Code:      int(key),
		Pressed:   action != glfw.Release,
		Repeat:    action == glfw.Repeat,
		Modifiers: translateMods(mods),
	}
}
