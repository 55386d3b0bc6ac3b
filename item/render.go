// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package item

import "github.com/gogpu/ggui"

// RenderComponentItems draws every item of c through r, with the
// component's top-left corner at origin.
//
// Each item is drawn between SaveState and RestoreState, translated to its
// geometry origin. Children are visited only when the item returns
// ContinueRenderingChildren.
func RenderComponentItems(c Component, r Renderer, origin ggui.Point) {
	if c == nil {
		return
	}
	r.SaveState()
	r.Translate(origin.X, origin.Y)
	for _, i := range c.Roots() {
		renderItem(c, i, r)
	}
	r.RestoreState()
}

func renderItem(c Component, i int, r Renderer) {
	it := c.Item(i)
	if it == nil {
		return
	}
	g := it.Geometry()
	r.SaveState()
	r.Translate(g.X, g.Y)
	res := it.Render(r, Ref{Component: c.ID(), Index: i}, g.Size())
	if res == ContinueRenderingChildren {
		for _, child := range c.Children(i) {
			renderItem(c, child, r)
		}
	}
	r.RestoreState()
}
