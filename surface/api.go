// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"unsafe"

	"github.com/gogpu/gpucontext"
)

// GraphicsAPI exposes backend-native handles to application code, for
// example to issue custom OpenGL calls from a rendering notifier.
// This is a sealed interface; type-switch on the concrete variants.
type GraphicsAPI interface {
	graphicsAPI()
}

// NativeOpenGL exposes an OpenGL context.
type NativeOpenGL struct {
	// GetProcAddress resolves an OpenGL function by name.
	GetProcAddress func(name string) unsafe.Pointer
}

// WebGPU exposes a WebGPU device provided by the host application.
type WebGPU struct {
	Provider gpucontext.DeviceProvider
}

// NativeVulkan exposes Vulkan handles as opaque values.
type NativeVulkan struct {
	Instance       any
	PhysicalDevice any
	Device         any
	Queue          any
}

// NativeMetal exposes Metal handles as opaque values.
type NativeMetal struct {
	Device       any
	CommandQueue any
}

// NativeD3D11 exposes a Direct3D 11 device as an opaque value.
type NativeD3D11 struct {
	Device any
}

func (NativeOpenGL) graphicsAPI() {}
func (WebGPU) graphicsAPI()       {}
func (NativeVulkan) graphicsAPI() {}
func (NativeMetal) graphicsAPI()  {}
func (NativeD3D11) graphicsAPI()  {}
