// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"

	"github.com/gogpu/ggui"
)

// Canvas is a drawable area for one frame.
//
// Coordinates are physical pixels relative to the current translation.
// Canvases are NOT thread-safe.
type Canvas interface {
	// Width returns the canvas width in pixels.
	Width() int

	// Height returns the canvas height in pixels.
	Height() int

	// Clear replaces every pixel with c, ignoring clip and opacity.
	Clear(c ggui.Color)

	// Save pushes the current translation, clip and opacity.
	Save()

	// Restore pops the state pushed by the matching Save.
	// Restore without a matching Save is a no-op.
	Restore()

	// Translate moves the origin by (dx, dy).
	Translate(dx, dy float32)

	// ClipRect intersects the current clip with r.
	ClipRect(r ggui.Rect)

	// ClipBounds returns the current clip in local coordinates.
	ClipBounds() ggui.Rect

	// SetAlpha multiplies the current opacity by a (0..1).
	SetAlpha(a float32)

	// FillPath fills p with paint using the non-zero winding rule.
	FillPath(p *Path, paint Paint)

	// StrokePath strokes p with paint and the given line width.
	StrokePath(p *Path, paint Paint, width float32)

	// FillRect fills an axis-aligned rectangle.
	FillRect(r ggui.Rect, paint Paint)

	// DrawImage draws img unscaled with its top-left corner at p.
	DrawImage(img image.Image, p ggui.Point)
}

// Paint couples a brush with the rectangle it is mapped onto.
//
// Gradients are laid out across Bounds. When Bounds is empty, the bounds of
// the drawn geometry are used instead.
type Paint struct {
	Brush  ggui.Brush
	Bounds ggui.Rect
}

// SolidPaint returns a Paint for a single color.
func SolidPaint(c ggui.Color) Paint {
	return Paint{Brush: ggui.Solid(c)}
}

// IsTransparent reports whether painting has no visible effect.
func (p Paint) IsTransparent() bool {
	return ggui.IsBrushTransparent(p.Brush)
}
