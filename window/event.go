// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import "github.com/gogpu/ggui"

// Event is a window event translated from the native windowing system.
// This is a sealed interface.
type Event interface {
	isEvent()
}

// Resized reports a new framebuffer size.
type Resized struct {
	Size ggui.PhysicalSize
}

// ScaleFactorChanged reports a new device pixel ratio.
type ScaleFactorChanged struct {
	ScaleFactor float32
}

// CloseRequested reports that the user asked to close the window.
type CloseRequested struct{}

// FocusChanged reports keyboard focus gain or loss.
type FocusChanged struct {
	Focused bool
}

// PointerMoved reports the pointer position in logical pixels.
type PointerMoved struct {
	Position ggui.Point
}

// PointerButton identifies a mouse button.
type PointerButton uint8

const (
	ButtonLeft PointerButton = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// PointerPressed reports a button press or release.
type PointerPressed struct {
	Position ggui.Point
	Button   PointerButton
	Pressed  bool
}

// Modifiers is a bit set of keyboard modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// KeyInput reports a key press, repeat or release. Text holds the produced
// characters, if any.
type KeyInput struct {
	Code      int
	Text      string
	Pressed   bool
	Repeat    bool
	Modifiers Modifiers
}

func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (CloseRequested) isEvent()     {}
func (FocusChanged) isEvent()       {}
func (PointerMoved) isEvent()       {}
func (PointerPressed) isEvent()     {}
func (KeyInput) isEvent()           {}
