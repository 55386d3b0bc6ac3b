// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/ggui/surface"
)

// RenderingState is the phase a Notifier is called for.
type RenderingState uint8

const (
	// RenderingSetup is sent once after a surface is bound, before its
	// first frame.
	RenderingSetup RenderingState = iota
	// BeforeRendering is sent after the frame was cleared and before any
	// item is drawn.
	BeforeRendering
	// AfterRendering is sent after the frame was drawn.
	AfterRendering
	// RenderingTeardown is sent when the renderer is closed.
	RenderingTeardown
)

func (s RenderingState) String() string {
	switch s {
	case RenderingSetup:
		return "RenderingSetup"
	case BeforeRendering:
		return "BeforeRendering"
	case AfterRendering:
		return "AfterRendering"
	case RenderingTeardown:
		return "RenderingTeardown"
	}
	return "RenderingState(?)"
}

// Notifier receives rendering phase changes together with the surface's
// native graphics API handles.
type Notifier interface {
	Notify(state RenderingState, api surface.GraphicsAPI)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(state RenderingState, api surface.GraphicsAPI)

// Notify calls f.
func (f NotifierFunc) Notify(state RenderingState, api surface.GraphicsAPI) { f(state, api) }

var (
	// ErrNotifierAlreadySet is returned when a notifier is registered twice.
	ErrNotifierAlreadySet = errors.New("render: rendering notifier already set")

	// ErrNotifierUnsupported is returned when the surface cannot expose a
	// graphics API.
	ErrNotifierUnsupported = errors.New("render: rendering notifier not supported by surface")
)
