// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glsurface presents frames into an OpenGL 4.1 core context of a
// glfw window.
//
// Frames are drawn with gg into a canvas. Every flush of the graphics context
// uploads the canvas into a texture and composites it over the window's
// default framebuffer with premultiplied alpha blending, so native drawing
// done between flushes, such as a notifier's underlay, is preserved.
//
// Importing the package registers the "opengl" backend in the default
// surface registry. The factory expects Handles.Window to be a *glfw.Window
// whose context was created with the hints of the platform/glfwbackend
// package.
//
// All methods must be called on the goroutine locked to the main OS thread.
package glsurface
