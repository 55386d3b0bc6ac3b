// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package item

import "github.com/gogpu/ggui"

// RenderingResult tells the traversal whether to descend into an item's
// children.
type RenderingResult uint8

const (
	// ContinueRenderingChildren renders the item's children.
	ContinueRenderingChildren RenderingResult = iota
	// ContinueRenderingWithoutChildren skips the item's children.
	ContinueRenderingWithoutChildren
)

// Item is one node of a component tree.
type Item interface {
	// Geometry returns the item's rectangle in its parent's coordinates,
	// in logical pixels.
	Geometry() ggui.Rect

	// Render draws the item through r. The renderer is already translated
	// to the item's origin.
	Render(r Renderer, self Ref, size ggui.Size) RenderingResult
}

// Component is a tree of items sharing one ComponentID.
type Component interface {
	ID() ComponentID

	// Roots returns the indices of the top-level items in paint order.
	Roots() []int

	// Item returns the item at index i.
	Item(i int) Item

	// Children returns the indices of i's children in paint order.
	Children(i int) []int
}

// ComponentOrigin is a component placed at an origin in window coordinates.
type ComponentOrigin struct {
	Component Component
	Origin    ggui.Point
}

// Renderer is the visitor that draws items. Implementations keep a state
// stack of translation, clip and opacity.
type Renderer interface {
	DrawRectangle(r *Rectangle, self Ref, size ggui.Size)
	DrawBorderRectangle(r *BorderRectangle, self Ref, size ggui.Size)
	DrawImage(img *Image, self Ref, size ggui.Size)
	DrawText(t *Text, self Ref, size ggui.Size)
	DrawTextInput(t *TextInput, self Ref, size ggui.Size)
	DrawPath(p *Path, self Ref, size ggui.Size)
	DrawBoxShadow(s *BoxShadow, self Ref, size ggui.Size)
	VisitClip(c *Clip, self Ref, size ggui.Size) RenderingResult
	VisitOpacity(o *Opacity, self Ref, size ggui.Size) RenderingResult

	// CombineClip intersects the clip with rect, in logical pixels.
	// It returns false when the resulting clip is empty.
	CombineClip(rect ggui.Rect, radius, borderWidth float32) bool

	// CurrentClip returns the clip in logical pixels.
	CurrentClip() ggui.Rect

	Translate(dx, dy float32)
	SaveState()
	RestoreState()
	ScaleFactor() float32

	// DrawRect fills a rectangle of the given logical size at the
	// current origin.
	DrawRect(size ggui.Size, brush ggui.Brush)

	// DrawString draws a single line of text at the current origin with
	// the default font.
	DrawString(s string, color ggui.Color)
}
