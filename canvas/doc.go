// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas provides the 2D drawing interface that surfaces hand to the
// frame renderer.
//
// A Canvas works in physical pixels with a save/restore stack holding the
// current translation, clip rectangle and opacity. Two implementations are
// provided:
//
//   - GGCanvas: an adapter over *gg.Context from github.com/gogpu/gg, which
//     rasterizes on the GPU when an accelerator is registered
//   - Recorder: a canvas that records every call, used for tests and for
//     replaying a frame onto another canvas
//
// Example:
//
//	c := canvas.NewGGCanvas(800, 600)
//	c.Clear(ggui.White)
//
//	p := canvas.NewPath()
//	p.RoundedRectangle(10, 10, 200, 100, 8)
//	c.FillPath(p, canvas.Paint{Brush: ggui.Solid(ggui.RGB(255, 0, 0))})
package canvas
