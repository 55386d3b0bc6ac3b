// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package platform runs the event loop that drives windows and their
// renderers, and selects the rendering backend for new windows.
//
// The EventLoop owns every window. It must run on the goroutine that
// created the native windows; with glfw that is the main OS thread. Other
// goroutines talk to it through a Proxy:
//
//	loop := platform.NewEventLoop(pump)
//	proxy := loop.Proxy()
//	go func() {
//	    result := compute()
//	    proxy.InvokeFromEventLoop(func() { label.Text = result })
//	}()
//	err := loop.Run()
package platform
