// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"slices"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
)

// CloseResponse is the answer of a close-request handler.
type CloseResponse uint8

const (
	// HideWindow lets the window close.
	HideWindow CloseResponse = iota
	// KeepWindowShown vetoes the close request.
	KeepWindowShown
)

// Window is the runtime state of one top-level window.
type Window struct {
	size       ggui.PhysicalSize
	scale      float32
	background ggui.Brush
	focused    bool
	visible    bool
	redraw     bool

	components []item.ComponentOrigin

	onEvent     func(Event)
	onClose     func() CloseResponse
	onDestroyed func(item.ComponentID)
}

// New creates a window of the given physical size with scale factor 1 and
// a white background.
func New(size ggui.PhysicalSize) *Window {
	return &Window{
		size:       size,
		scale:      1,
		background: ggui.Solid(ggui.White),
		redraw:     true,
	}
}

// Size returns the physical size.
func (w *Window) Size() ggui.PhysicalSize { return w.size }

// SetSize changes the physical size and requests a redraw.
func (w *Window) SetSize(s ggui.PhysicalSize) {
	if s == w.size {
		return
	}
	w.size = s
	w.redraw = true
}

// LogicalSize returns the size in logical pixels.
func (w *Window) LogicalSize() ggui.Size { return w.size.ToLogical(w.scale) }

// ScaleFactor returns the device pixel ratio.
func (w *Window) ScaleFactor() float32 { return w.scale }

// SetScaleFactor changes the device pixel ratio. Non-positive values are
// ignored.
func (w *Window) SetScaleFactor(s float32) {
	if s <= 0 || s == w.scale {
		return
	}
	w.scale = s
	w.redraw = true
}

// Background returns the window background brush.
func (w *Window) Background() ggui.Brush { return w.background }

// SetBackground changes the background brush.
func (w *Window) SetBackground(b ggui.Brush) {
	w.background = b
	w.redraw = true
}

// Focused reports whether the window has keyboard focus.
func (w *Window) Focused() bool { return w.focused }

// Visible reports whether the window is shown.
func (w *Window) Visible() bool { return w.visible }

// SetVisible records the visibility. Adapters call it from Show and Hide.
func (w *Window) SetVisible(v bool) {
	w.visible = v
	if v {
		w.redraw = true
	}
}

// AddComponent places c at origin on top of the existing components.
func (w *Window) AddComponent(c item.Component, origin ggui.Point) {
	w.components = append(w.components, item.ComponentOrigin{Component: c, Origin: origin})
	w.redraw = true
}

// RemoveComponent removes the component with the given ID and reports
// whether it was present. The destroyed-component hook runs afterwards so
// renderers can free the component's cached resources.
func (w *Window) RemoveComponent(id item.ComponentID) bool {
	i := slices.IndexFunc(w.components, func(co item.ComponentOrigin) bool {
		return co.Component.ID() == id
	})
	if i < 0 {
		return false
	}
	w.components = slices.Delete(w.components, i, i+1)
	w.redraw = true
	if w.onDestroyed != nil {
		w.onDestroyed(id)
	}
	return true
}

// DrawContents calls fn with the component roots in paint order.
func (w *Window) DrawContents(fn func([]item.ComponentOrigin)) {
	fn(w.components)
}

// OnEvent sets the handler that observes every dispatched event.
func (w *Window) OnEvent(fn func(Event)) { w.onEvent = fn }

// OnCloseRequested sets the handler deciding whether a close request
// hides the window. Without a handler the window closes.
func (w *Window) OnCloseRequested(fn func() CloseResponse) { w.onClose = fn }

// OnComponentDestroyed sets the hook run after RemoveComponent.
func (w *Window) OnComponentDestroyed(fn func(item.ComponentID)) { w.onDestroyed = fn }

// Dispatch applies ev to the window state and forwards it to the event
// handler. It reports whether the window should be hidden, which is only
// the case for an accepted CloseRequested.
func (w *Window) Dispatch(ev Event) (hide bool) {
	switch ev := ev.(type) {
	case Resized:
		w.SetSize(ev.Size)
	case ScaleFactorChanged:
		w.SetScaleFactor(ev.ScaleFactor)
	case FocusChanged:
		w.focused = ev.Focused
	case CloseRequested:
		hide = w.onClose == nil || w.onClose() == HideWindow
	}
	if w.onEvent != nil {
		w.onEvent(ev)
	}
	return hide
}

// RequestRedraw marks the window contents as stale.
func (w *Window) RequestRedraw() { w.redraw = true }

// RedrawRequested reports whether a redraw is pending.
func (w *Window) RedrawRequested() bool { return w.redraw }

// TakeRedrawRequest clears the pending redraw flag and returns its
// previous value.
func (w *Window) TakeRedrawRequest() bool {
	r := w.redraw
	w.redraw = false
	return r
}
