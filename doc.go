// Package ggui provides the rendering-surface abstraction layer of a
// retained-mode UI runtime.
//
// # Overview
//
// ggui turns a tree of UI items into pixels on a native window. It sits
// between three parties that do not know about each other:
//
//   - the item tree owned by the UI runtime (package item)
//   - a window adapter that owns the native window and its event stream
//     (packages window and platform)
//   - a surface that provides a drawable canvas for one frame
//     (package surface and its backends)
//
// The frame renderer in package render ties them together. It caches
// per-item resources (package cache), shapes and measures text
// (package textlayout) and reports rendering lifecycle notifications to an
// optional application callback.
//
// # Quick Start
//
//	pump, err := glfwbackend.NewPump()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loop := platform.NewEventLoop(pump)
//	backend := platform.NewBackend(loop)
//	glfwbackend.Register(backend, glfwbackend.Options{})
//
//	ref, err := backend.CreateWindowAdapter("hello", ggui.PhysicalSize{Width: 800, Height: 600})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	adapter, _ := ref.Resolve()
//	adapter.Window().AddComponent(tree, ggui.Point{})
//	_ = adapter.Show()
//	if err := loop.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Item geometry is expressed in logical pixels. Surfaces and canvases work
// in physical pixels. The window's scale factor converts between the two:
//
//	physical = logical * scaleFactor
//
// Origin (0,0) is the top-left corner, X increases right, Y increases down.
//
// # Threading
//
// All renderer, cache and window state belongs to the thread that runs the
// event loop. Only platform.Proxy may be used from other goroutines.
package ggui
