// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics collects frame timing for the renderer when the
// GGUI_DEBUG_PERFORMANCE environment variable asks for it.
//
// The variable holds a comma separated list of:
//
//	console             log the frame rate once per second
//	overlay             draw the frame rate into the frame
//	refresh_full_speed  request a new frame after every frame
package metrics

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
)

// EnvVar is the environment variable read by FromEnv.
const EnvVar = "GGUI_DEBUG_PERFORMANCE"

// Options selects what the collector reports.
type Options struct {
	Console          bool
	Overlay          bool
	RefreshFullSpeed bool
}

// Enabled reports whether any option is set.
func (o Options) Enabled() bool {
	return o.Console || o.Overlay || o.RefreshFullSpeed
}

// Parse reads a GGUI_DEBUG_PERFORMANCE value. Unknown entries are logged
// and ignored.
func Parse(v string) Options {
	var o Options
	for _, part := range strings.Split(v, ",") {
		switch strings.TrimSpace(part) {
		case "":
		case "console":
			o.Console = true
		case "overlay":
			o.Overlay = true
		case "refresh_full_speed":
			o.RefreshFullSpeed = true
		default:
			ggui.Logger().Warn("metrics: unknown option", "var", EnvVar, "option", part)
		}
	}
	return o
}

// FromEnv parses the EnvVar environment variable.
func FromEnv() Options { return Parse(os.Getenv(EnvVar)) }

// Collector counts rendered frames.
type Collector struct {
	opts     Options
	name     string
	redraw   func()
	now      func() time.Time
	frames   []time.Time
	lastLog  time.Time
	rendered uint64
}

// New returns a collector for the renderer described by name, or nil when
// opts enables nothing. redraw is called after each frame when
// refresh_full_speed is set; it may be nil.
func New(opts Options, name string, redraw func()) *Collector {
	if !opts.Enabled() {
		return nil
	}
	c := &Collector{
		opts:   opts,
		name:   name,
		redraw: redraw,
		now:    time.Now,
	}
	ggui.Logger().Info("metrics: collecting", "renderer", name, "console", opts.Console,
		"overlay", opts.Overlay, "refresh_full_speed", opts.RefreshFullSpeed)
	return c
}

// Name returns the renderer description given to New.
func (c *Collector) Name() string { return c.name }

// Frames returns the number of frames measured so far.
func (c *Collector) Frames() uint64 { return c.rendered }

// FPS returns the number of frames rendered during the last second.
func (c *Collector) FPS() int { return len(c.frames) }

// MeasureFrameRendered records a frame. With the overlay option it draws
// the frame rate through r at the current origin.
func (c *Collector) MeasureFrameRendered(r item.Renderer) {
	now := c.now()
	c.rendered++
	c.frames = append(c.frames, now)
	cutoff := now.Add(-time.Second)
	drop := 0
	for drop < len(c.frames) && !c.frames[drop].After(cutoff) {
		drop++
	}
	c.frames = c.frames[drop:]

	if c.opts.Console && now.Sub(c.lastLog) >= time.Second {
		c.lastLog = now
		ggui.Logger().Info("metrics: frame rate", "renderer", c.name, "fps", c.FPS())
	}
	if c.opts.Overlay && r != nil {
		r.DrawString(fmt.Sprintf("%d FPS", c.FPS()), ggui.Color{R: 255, A: 255})
	}
	if c.opts.RefreshFullSpeed && c.redraw != nil {
		c.redraw()
	}
}
