// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpusurface

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/surface"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{ polls int }

func (m *mockDevice) Poll(wait bool) { m.polls++ }
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockTexture implements the texture interfaces for testing.
type mockTexture struct {
	width         int
	height        int
	data          []byte
	premultiplied bool
	destroyed     bool
	updated       int
}

func (m *mockTexture) UpdateData(data []byte) error {
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

func (m *mockTexture) SetPremultiplied(v bool) { m.premultiplied = v }

func (m *mockTexture) Destroy() { m.destroyed = true }

// mockHost implements Host for testing.
type mockHost struct {
	device   *mockDevice
	format   gputypes.TextureFormat
	textures []*mockTexture
	failNext bool
	drawn    []any
}

func newMockHost() *mockHost {
	return &mockHost{device: &mockDevice{}, format: gputypes.TextureFormatBGRA8Unorm}
}

func (m *mockHost) Device() gpucontext.Device             { return m.device }
func (m *mockHost) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockHost) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockHost) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockHost) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func (m *mockHost) NewTextureFromRGBA(width, height int, data []byte) (any, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{width: width, height: height, data: append([]byte(nil), data...)}
	m.textures = append(m.textures, tex)
	return tex, nil
}

func (m *mockHost) DrawTexture(tex any, x, y float32) error {
	m.drawn = append(m.drawn, tex)
	return nil
}

func fill(col ggui.Color) surface.DrawFunc {
	return func(c canvas.Canvas, gc surface.GraphicsContext) error {
		c.Clear(col)
		return gc.Flush()
	}
}

func TestNew(t *testing.T) {
	if _, err := New(nil, ggui.PhysicalSize{Width: 4, Height: 4}); !errors.Is(err, ErrNilHost) {
		t.Errorf("New(nil) error = %v, want ErrNilHost", err)
	}
	if _, err := Factory(surface.Handles{Window: "not a host"}, ggui.PhysicalSize{}); !errors.Is(err, ErrInvalidHandles) {
		t.Errorf("Factory() error = %v, want ErrInvalidHandles", err)
	}
	s, err := Factory(surface.Handles{Window: newMockHost()}, ggui.PhysicalSize{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	if s.Name() != Name {
		t.Errorf("Name() = %q, want %q", s.Name(), Name)
	}
}

func TestRenderUploadsAndDraws(t *testing.T) {
	host := newMockHost()
	size := ggui.PhysicalSize{Width: 2, Height: 2}
	s, _ := New(host, size)

	if err := s.Render(size, fill(ggui.RGB(255, 0, 0))); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(host.textures) != 1 {
		t.Fatalf("textures = %d, want 1", len(host.textures))
	}
	tex := host.textures[0]
	if tex.width != 2 || tex.height != 2 || len(tex.data) != 16 {
		t.Errorf("texture = %dx%d (%d bytes), want 2x2 (16 bytes)", tex.width, tex.height, len(tex.data))
	}
	if tex.data[0] != 255 || tex.data[1] != 0 || tex.data[3] != 255 {
		t.Errorf("first pixel = %v, want opaque red", tex.data[:4])
	}
	if !tex.premultiplied {
		t.Error("texture not marked premultiplied")
	}
	if len(host.drawn) != 1 || host.drawn[0] != tex {
		t.Errorf("drawn = %v, want the uploaded texture", host.drawn)
	}
	if host.device.polls != 1 {
		t.Errorf("device polls = %d, want 1", host.device.polls)
	}

	// Same size: update in place.
	if err := s.Render(size, fill(ggui.RGB(0, 0, 255))); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(host.textures) != 1 || tex.updated != 1 {
		t.Errorf("textures = %d, updates = %d, want 1 and 1", len(host.textures), tex.updated)
	}
	if tex.data[2] != 255 {
		t.Errorf("updated pixel = %v, want blue", tex.data[:4])
	}
}

func TestResizeRecreatesTexture(t *testing.T) {
	host := newMockHost()
	s, _ := New(host, ggui.PhysicalSize{Width: 2, Height: 2})
	_ = s.Render(ggui.PhysicalSize{Width: 2, Height: 2}, fill(ggui.White))

	if err := s.ResizeEvent(ggui.PhysicalSize{Width: 3, Height: 1}); err != nil {
		t.Fatalf("ResizeEvent() error = %v", err)
	}
	if err := s.Render(ggui.PhysicalSize{Width: 3, Height: 1}, fill(ggui.White)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(host.textures) != 2 {
		t.Fatalf("textures = %d, want 2", len(host.textures))
	}
	if !host.textures[0].destroyed {
		t.Error("old texture not destroyed after upload")
	}
	if host.textures[1].width != 3 || host.textures[1].height != 1 {
		t.Errorf("new texture = %dx%d, want 3x1", host.textures[1].width, host.textures[1].height)
	}
}

func TestRenderErrors(t *testing.T) {
	host := newMockHost()
	size := ggui.PhysicalSize{Width: 2, Height: 2}
	s, _ := New(host, size)

	host.failNext = true
	err := s.Render(size, fill(ggui.White))
	var perr *ggui.PlatformError
	if !errors.As(err, &perr) {
		t.Errorf("Render() with failing upload = %v, want PlatformError", err)
	}

	drawErr := errors.New("draw failed")
	err = s.Render(size, func(canvas.Canvas, surface.GraphicsContext) error { return drawErr })
	if !errors.Is(err, drawErr) || errors.As(err, &perr) {
		t.Errorf("Render() with failing draw = %v, want the draw error unchanged", err)
	}

	_ = s.Close()
	_ = s.Close()
	if err := s.Render(size, fill(ggui.White)); !errors.Is(err, surface.ErrSurfaceClosed) {
		t.Errorf("Render() after Close = %v, want ErrSurfaceClosed", err)
	}
}

func TestCloseDestroysTexture(t *testing.T) {
	host := newMockHost()
	size := ggui.PhysicalSize{Width: 1, Height: 1}
	s, _ := New(host, size)
	_ = s.Render(size, fill(ggui.White))
	_ = s.Close()
	if !host.textures[0].destroyed {
		t.Error("Close() did not destroy the texture")
	}
}

func TestBitsPerPixel(t *testing.T) {
	tests := []struct {
		format  gputypes.TextureFormat
		want    uint8
		wantErr bool
	}{
		{gputypes.TextureFormatBGRA8Unorm, 32, false},
		{gputypes.TextureFormatRGBA8Unorm, 32, false},
		{gputypes.TextureFormatR8Unorm, 8, false},
		{gputypes.TextureFormatUndefined, 0, true},
	}
	for _, tt := range tests {
		host := newMockHost()
		host.format = tt.format
		s, _ := New(host, ggui.PhysicalSize{Width: 1, Height: 1})
		got, err := s.BitsPerPixel()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("BitsPerPixel(%v) = %d, %v; want %d, err=%v", tt.format, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestGraphicsAPI(t *testing.T) {
	host := newMockHost()
	s, _ := New(host, ggui.PhysicalSize{Width: 1, Height: 1})
	if !s.SupportsGraphicsAPI() {
		t.Fatal("SupportsGraphicsAPI() = false")
	}
	var got surface.GraphicsAPI
	s.WithGraphicsAPI(func(api surface.GraphicsAPI) { got = api })
	w, ok := got.(surface.WebGPU)
	if !ok || w.Provider != gpucontext.DeviceProvider(host) {
		t.Errorf("WithGraphicsAPI() = %#v, want WebGPU with the host", got)
	}
}

func TestRegistered(t *testing.T) {
	e, ok := surface.DefaultRegistry().Get(Name)
	if !ok || e.Priority != Priority {
		t.Errorf("registry entry = %v, %v; want priority %d", e, ok, Priority)
	}
}

func TestFlushDrawsEachLayerOverHostContent(t *testing.T) {
	host := newMockHost()
	size := ggui.PhysicalSize{Width: 2, Height: 2}
	s, _ := New(host, size)

	var hostDrew bool
	err := s.Render(size, func(c canvas.Canvas, gc surface.GraphicsContext) error {
		c.Clear(ggui.Transparent)
		if err := gc.Flush(); err != nil {
			return err
		}
		hostDrew = true
		c.FillRect(ggui.Rect{Width: 1, Height: 1}, canvas.SolidPaint(ggui.RGB(255, 0, 0)))
		return nil
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !hostDrew {
		t.Fatal("draw func did not run")
	}
	if len(host.textures) != 2 || len(host.drawn) != 2 {
		t.Fatalf("textures = %d, drawn = %d, want 2 and 2", len(host.textures), len(host.drawn))
	}
	// The second layer holds only what was drawn after the flush, so the
	// host's drawing shows through everywhere else.
	top := host.textures[1]
	if top.data[3] != 255 {
		t.Errorf("item pixel = %v, want opaque", top.data[:4])
	}
	if got := top.data[len(top.data)-1]; got != 0 {
		t.Errorf("untouched pixel alpha = %d, want 0", got)
	}
	if host.drawn[0] == host.drawn[1] {
		t.Error("both layers drawn from the same texture")
	}

	// The next frame reuses both textures in order.
	_ = s.Render(size, fill(ggui.White))
	if len(host.textures) != 2 || host.textures[0].updated != 1 {
		t.Errorf("textures = %d, first updates = %d, want 2 and 1", len(host.textures), host.textures[0].updated)
	}
}
