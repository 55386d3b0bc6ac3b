// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/window"
)

// EnvBackend names the renderer a Backend selects by default.
const EnvBackend = "GGUI_BACKEND"

// Renderer names known to the built-in backends.
const (
	RendererOpenGL   = "opengl"
	RendererWebGPU   = "webgpu"
	RendererSoftware = "software"
)

// ErrNoWindowFactory is returned when no factory is registered.
var ErrNoWindowFactory = errors.New("platform: no window factory registered")

// WindowFactory creates a window adapter for a renderer.
type WindowFactory func(title string, size ggui.PhysicalSize) (window.Adapter, error)

// Backend creates windows for an EventLoop, choosing the renderer by name.
//
// Factories are tried in registration order after the selected one, so
// registering the preferred renderers first builds the fallback chain.
type Backend struct {
	loop      *EventLoop
	factories map[string]WindowFactory
	chain     []string
	requested string
	warned    string
	clipboard Clipboard
}

// NewBackend creates a backend for loop with the software renderer
// registered. The selected renderer comes from GGUI_BACKEND when set.
func NewBackend(loop *EventLoop, opts ...render.Option) *Backend {
	b := &Backend{
		loop:      loop,
		factories: make(map[string]WindowFactory),
		clipboard: NewMemoryClipboard(),
	}
	b.Register(RendererSoftware, func(_ string, size ggui.PhysicalSize) (window.Adapter, error) {
		return NewSoftwareAdapter(size, loop.Wake, opts...), nil
	})
	b.Select(os.Getenv(EnvBackend))
	return b
}

// Register adds a factory. Factories registered earlier come first in the
// fallback chain; the software factory registered by NewBackend is always
// kept last.
func (b *Backend) Register(name string, f WindowFactory) {
	if _, ok := b.factories[name]; !ok {
		b.chain = append(b.chain, name)
		if i := indexOf(b.chain, RendererSoftware); i >= 0 && i != len(b.chain)-1 {
			b.chain = append(append(b.chain[:i:i], b.chain[i+1:]...), RendererSoftware)
		}
	}
	b.factories[name] = f
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// Select picks the renderer tried first. A name no factory is registered
// for when windows are created falls back to the default with a warning.
func (b *Backend) Select(name string) {
	b.requested = strings.ToLower(strings.TrimSpace(name))
}

// Selected returns the renderer tried first.
func (b *Backend) Selected() string {
	if b.requested != "" {
		if _, ok := b.factories[b.requested]; ok {
			return b.requested
		}
		if b.warned != b.requested {
			b.warned = b.requested
			ggui.Logger().Warn("platform: unknown renderer, using default", "renderer", b.requested, "available", b.chain)
		}
	}
	if len(b.chain) > 0 {
		return b.chain[0]
	}
	return ""
}

// Loop returns the event loop windows are created for.
func (b *Backend) Loop() *EventLoop { return b.loop }

// SetClipboard replaces the clipboard. Nil restores an in-memory one.
func (b *Backend) SetClipboard(c Clipboard) {
	if c == nil {
		c = NewMemoryClipboard()
	}
	b.clipboard = c
}

// Clipboard returns the clipboard the backend reads and writes.
func (b *Backend) Clipboard() Clipboard { return b.clipboard }

// SetClipboardText stores text in the given clipboard. Kinds the platform
// lacks are ignored with a debug log.
func (b *Backend) SetClipboardText(text string, kind ClipboardKind) {
	if !b.clipboard.SetText(kind, text) {
		ggui.Logger().Debug("platform: clipboard not supported", "clipboard", kind)
	}
}

// ClipboardText returns the contents of the given clipboard. ok is false
// when the clipboard is empty or not supported.
func (b *Backend) ClipboardText(kind ClipboardKind) (text string, ok bool) {
	return b.clipboard.Text(kind)
}

// Renderers returns the fallback chain.
func (b *Backend) Renderers() []string {
	return append([]string(nil), b.chain...)
}

// CreateWindowAdapter creates a window with the selected renderer, falling
// back to the others in order. The adapter is owned by the loop's window
// registry. When every factory fails the last error is returned.
func (b *Backend) CreateWindowAdapter(title string, size ggui.PhysicalSize) (window.Ref, error) {
	first := b.Selected()
	if first == "" {
		return window.Ref{}, ErrNoWindowFactory
	}
	order := append([]string{first}, b.chain...)

	log := ggui.Logger()
	var lastErr error
	tried := make(map[string]bool, len(order))
	for _, name := range order {
		if tried[name] {
			continue
		}
		tried[name] = true
		a, err := b.factories[name](title, size)
		if err != nil {
			log.Warn("platform: renderer failed, trying next", "renderer", name, "err", err)
			lastErr = fmt.Errorf("platform: create %s window: %w", name, err)
			continue
		}
		log.Info("platform: window created", "renderer", name)
		ref := b.loop.Windows().Add(a)
		if r, ok := a.Renderer().(interface{ SetWindowAdapter(window.Ref) }); ok {
			r.SetWindowAdapter(ref)
		}
		return ref, nil
	}
	return window.Ref{}, lastErr
}
