// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package item defines the scene-graph contract the frame renderer consumes.
//
// The UI runtime owns components: trees of items with geometry in logical
// pixels. Each item is addressed by a Ref (component identity plus index),
// which stays stable for the lifetime of the component and is used to key
// per-item resource caches.
//
// RenderComponentItems walks a component depth-first and hands every item to
// a Renderer visitor, saving and translating the renderer state around each
// item so children draw in their parent's coordinate system.
package item
