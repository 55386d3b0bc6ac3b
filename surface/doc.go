// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the contract between the frame renderer and the
// graphics backend that owns the frame buffer of a native window.
//
// A Surface hands the renderer a canvas.Canvas for the duration of one
// frame, flushes and presents it afterwards, and optionally exposes the
// backend-native graphics handles (GraphicsAPI) to application code.
//
// # Surface Types
//
//   - ImageSurface: offscreen software surface (built in, "software")
//   - glsurface.Surface: OpenGL through go-gl ("opengl")
//   - gpusurface.Surface: host-provided WebGPU device ("webgpu")
//
// # Registry
//
// Backends register a factory under a name and priority. NewSurface tries
// the available backends from the highest priority down and returns the
// first surface that could be created:
//
//	import _ "github.com/gogpu/ggui/surface/glsurface"
//
//	s, err := surface.NewSurface(surface.Handles{Window: win}, size)
//
// Backend packages register themselves in init, so importing them for side
// effects is enough to make them selectable.
package surface
