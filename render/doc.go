// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws frames of a window's item tree onto a surface.
//
// A Renderer owns one surface.Surface and is bound to one window adapter
// through a non-owning window.Ref. Each call to Render clears the frame to
// the window background, walks every component with
// item.RenderComponentItems and presents the result:
//
//	r := render.New(surface.NewImageSurface(size))
//	r.SetWindowAdapter(ref)
//	if err := r.Render(); err != nil {
//	    log.Printf("frame failed: %v", err)
//	}
//
// Images and paths derived from items are cached per item and dropped when
// the window's scale factor changes, when the surface is replaced, or when
// FreeGraphicsResources reports a destroyed component.
//
// Applications that draw with the graphics API directly register a
// Notifier, which is called on setup, around every frame, and on teardown.
//
// Renderers are NOT thread-safe. They belong to the goroutine running the
// event loop.
package render
