// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glfwbackend drives the event loop and native windows with glfw.
//
// Importing the package locks the main goroutine to the main OS thread, as
// glfw requires. Typical use:
//
//	pump, err := glfwbackend.NewPump()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loop := platform.NewEventLoop(pump)
//	backend := platform.NewBackend(loop)
//	glfwbackend.Register(backend, glfwbackend.Options{})
//
//	ref, err := backend.CreateWindowAdapter("demo", ggui.PhysicalSize{Width: 800, Height: 600})
//	...
//	err = loop.Run()
package glfwbackend
