// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/ggui/internal/metrics"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/textlayout"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPostRenderHook runs fn at the end of every frame, after all
// components were drawn.
func WithPostRenderHook(fn func(item.Renderer)) Option {
	return func(r *Renderer) { r.postRender = fn }
}

// WithFontRegistry sets the fonts used for text. The default is
// textlayout.Default().
func WithFontRegistry(fonts *textlayout.FontRegistry) Option {
	return func(r *Renderer) {
		if fonts != nil {
			r.fonts = fonts
		}
	}
}

// WithMetricsEnv sets the GGUI_DEBUG_PERFORMANCE value used instead of the
// environment.
func WithMetricsEnv(v string) Option {
	return func(r *Renderer) { r.metrics = metrics.Parse(v) }
}
