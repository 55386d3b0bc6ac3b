// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpusurface presents frames through a WebGPU device owned by the
// host application.
//
// The host window supplies a gpucontext.DeviceProvider together with
// texture upload and draw entry points. Frames are drawn with gg, whose GPU
// accelerator is handed the host's device. Every flush uploads the canvas as
// a texture and draws it at the window origin over what the host drew:
//
//	canvas.GGCanvas (gg) -> premultiplied RGBA -> GPU texture -> window
//
// Importing the package registers the "webgpu" backend in the default
// surface registry. The factory expects Handles.Window to implement Host.
//
// # Integration Without Circular Imports
//
// The package depends on gpucontext and gg only. Texture creation and
// drawing are described by local interfaces so any windowing toolkit can act
// as host.
package gpusurface
