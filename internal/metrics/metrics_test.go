// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package metrics

import (
	"testing"
	"time"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Options
	}{
		{"", Options{}},
		{"console", Options{Console: true}},
		{"console, overlay", Options{Console: true, Overlay: true}},
		{"refresh_full_speed,bogus", Options{RefreshFullSpeed: true}},
		{",,", Options{}},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "overlay")
	if got := FromEnv(); got != (Options{Overlay: true}) {
		t.Errorf("FromEnv() = %+v", got)
	}
}

func TestNewDisabled(t *testing.T) {
	if c := New(Options{}, "x", nil); c != nil {
		t.Errorf("New() with no options = %v, want nil", c)
	}
}

type stringRenderer struct {
	item.Renderer
	drawn []string
}

func (r *stringRenderer) DrawString(s string, _ ggui.Color) { r.drawn = append(r.drawn, s) }

func TestMeasureFrameRendered(t *testing.T) {
	redraws := 0
	c := New(Options{Overlay: true, RefreshFullSpeed: true}, "test", func() { redraws++ })

	clock := time.Unix(1000, 0)
	c.now = func() time.Time { return clock }

	r := &stringRenderer{}
	for range 3 {
		c.MeasureFrameRendered(r)
		clock = clock.Add(100 * time.Millisecond)
	}
	if c.FPS() != 3 {
		t.Errorf("FPS() = %d, want 3", c.FPS())
	}
	if redraws != 3 {
		t.Errorf("redraws = %d, want 3", redraws)
	}
	if len(r.drawn) != 3 || r.drawn[2] != "3 FPS" {
		t.Errorf("overlay drew %q", r.drawn)
	}

	clock = clock.Add(2 * time.Second)
	c.MeasureFrameRendered(nil)
	if c.FPS() != 1 {
		t.Errorf("FPS() after pause = %d, want 1", c.FPS())
	}
	if c.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", c.Frames())
	}
}
