// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfwbackend

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/ggui/platform"
)

// Clipboard is the system clipboard as exposed by glfw. glfw has no access
// to the primary selection, so only platform.ClipboardDefault is supported.
// Calls must come from the main goroutine after NewPump.
type Clipboard struct{}

var _ platform.Clipboard = Clipboard{}

func (Clipboard) SetText(kind platform.ClipboardKind, text string) bool {
	if kind != platform.ClipboardDefault {
		return false
	}
	glfw.SetClipboardString(text)
	return true
}

// Text returns false when the clipboard holds no text.
func (Clipboard) Text(kind platform.ClipboardKind) (string, bool) {
	if kind != platform.ClipboardDefault {
		return "", false
	}
	s := glfw.GetClipboardString()
	return s, s != ""
}
