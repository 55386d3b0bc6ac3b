// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package platform

import "sync"

// ClipboardKind selects which clipboard an operation targets.
type ClipboardKind int

const (
	// ClipboardDefault is the clipboard used by copy and paste.
	ClipboardDefault ClipboardKind = iota
	// ClipboardSelection is the X11 primary selection.
	ClipboardSelection
)

func (k ClipboardKind) String() string {
	switch k {
	case ClipboardDefault:
		return "default"
	case ClipboardSelection:
		return "selection"
	}
	return "unknown"
}

// Clipboard stores text for copy and paste.
//
// Implementations report false for kinds they do not support.
type Clipboard interface {
	SetText(kind ClipboardKind, text string) bool
	Text(kind ClipboardKind) (string, bool)
}

// MemoryClipboard keeps clipboard contents in process memory. It backs
// headless windows and platforms without a native clipboard.
type MemoryClipboard struct {
	mu   sync.Mutex
	text map[ClipboardKind]string
}

var _ Clipboard = (*MemoryClipboard)(nil)

// NewMemoryClipboard returns an empty clipboard.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{text: make(map[ClipboardKind]string)}
}

func (c *MemoryClipboard) SetText(kind ClipboardKind, text string) bool {
	if kind != ClipboardDefault && kind != ClipboardSelection {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text[kind] = text
	return true
}

func (c *MemoryClipboard) Text(kind ClipboardKind) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.text[kind]
	return s, ok
}
