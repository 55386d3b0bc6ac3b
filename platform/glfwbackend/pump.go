// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfwbackend

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/ggui/platform"
)

func init() { runtime.LockOSThread() }

// Pump is the glfw event source of a platform.EventLoop.
type Pump struct{}

var _ platform.Pump = Pump{}

// NewPump initializes glfw. It must be called from the main goroutine.
func NewPump() (Pump, error) {
	if err := glfw.Init(); err != nil {
		return Pump{}, fmt.Errorf("glfwbackend: init: %w", err)
	}
	return Pump{}, nil
}

func (Pump) WaitEvents()     { glfw.WaitEvents() }
func (Pump) PollEvents()     { glfw.PollEvents() }
func (Pump) PostEmptyEvent() { glfw.PostEmptyEvent() }
func (Pump) Terminate()      { glfw.Terminate() }
