// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package platform

import (
	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/surface"
	"github.com/gogpu/ggui/window"
)

// SoftwareAdapter is a window without a native counterpart. Frames are
// rendered into an ImageSurface, which makes it usable headless.
type SoftwareAdapter struct {
	win      *window.Window
	surface  *surface.ImageSurface
	renderer *render.Renderer
	wake     func()
}

var _ window.Adapter = (*SoftwareAdapter)(nil)

// NewSoftwareAdapter creates a hidden software window. wake is called when
// a redraw is requested and may be nil.
func NewSoftwareAdapter(size ggui.PhysicalSize, wake func(), opts ...render.Option) *SoftwareAdapter {
	s := surface.NewImageSurface(size)
	a := &SoftwareAdapter{
		win:      window.New(size),
		surface:  s,
		renderer: render.New(s, opts...),
		wake:     wake,
	}
	a.win.OnComponentDestroyed(func(id item.ComponentID) {
		_ = a.renderer.FreeGraphicsResources(id)
	})
	return a
}

func (a *SoftwareAdapter) Window() *window.Window { return a.win }

func (a *SoftwareAdapter) Renderer() window.Renderer { return a.renderer }

// FrameRenderer returns the concrete renderer, for registering notifiers
// and fonts.
func (a *SoftwareAdapter) FrameRenderer() *render.Renderer { return a.renderer }

// Surface returns the image surface frames are presented to.
func (a *SoftwareAdapter) Surface() *surface.ImageSurface { return a.surface }

func (a *SoftwareAdapter) RequestRedraw() {
	a.win.RequestRedraw()
	if a.wake != nil {
		a.wake()
	}
}

func (a *SoftwareAdapter) Show() error {
	a.win.SetVisible(true)
	a.RequestRedraw()
	return nil
}

func (a *SoftwareAdapter) Hide() error {
	a.win.SetVisible(false)
	return nil
}

// Resize changes the window size as a native resize would.
func (a *SoftwareAdapter) Resize(size ggui.PhysicalSize) error {
	a.win.Dispatch(window.Resized{Size: size})
	return a.renderer.Resize(size)
}
