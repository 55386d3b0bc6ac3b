// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpusurface

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg/gpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/surface"
)

// Name is the registry name of the WebGPU backend.
const Name = "webgpu"

// Priority is the registry priority of the WebGPU backend.
const Priority = 90

var (
	// ErrNilHost is returned when no host is passed.
	ErrNilHost = errors.New("gpusurface: nil host")

	// ErrInvalidHandles is returned when Handles.Window does not implement Host.
	ErrInvalidHandles = errors.New("gpusurface: window handle must implement gpusurface.Host")

	// ErrUnsupportedFormat is returned by BitsPerPixel for unknown surface formats.
	ErrUnsupportedFormat = errors.New("gpusurface: unsupported surface format")
)

// Host is the window side of a WebGPU surface.
type Host interface {
	gpucontext.DeviceProvider

	// NewTextureFromRGBA uploads premultiplied RGBA pixels into a new texture.
	NewTextureFromRGBA(width, height int, data []byte) (any, error)

	// DrawTexture draws a texture created by NewTextureFromRGBA.
	DrawTexture(tex any, x, y float32) error
}

// textureUpdater re-uploads pixels into an existing texture of the same size.
type textureUpdater interface {
	UpdateData(data []byte) error
}

// textureDestroyer matches the Destroy method of host textures.
type textureDestroyer interface {
	Destroy()
}

// Surface renders into a host-provided WebGPU device.
//
// Frames are drawn with gg, which shares the host's device when the host
// exposes its HAL objects. Each flush of the graphics context uploads the
// canvas as a premultiplied texture, draws it over what the host has drawn
// so far and clears the canvas. Every flush within a frame has its own
// texture, since the host may defer drawing until the frame ends.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	host     Host
	canvas   *canvas.GGCanvas
	size     ggui.PhysicalSize
	textures []any
	// Textures of the previous size, destroyed after the next upload
	// completed.
	stale       []any
	layer       int
	sizeChanged bool
	closed      bool
}

var _ surface.Surface = (*Surface)(nil)

func init() {
	surface.Register(Name, Priority, Factory, nil)
}

// Factory creates a Surface from Handles whose Window implements Host.
func Factory(h surface.Handles, size ggui.PhysicalSize) (surface.Surface, error) {
	host, ok := h.Window.(Host)
	if !ok {
		return nil, ggui.NewPlatformError("create webgpu surface", ErrInvalidHandles)
	}
	return New(host, size)
}

// New creates a surface presenting into host.
func New(host Host, size ggui.PhysicalSize) (*Surface, error) {
	if host == nil {
		return nil, ggui.NewPlatformError("create webgpu surface", ErrNilHost)
	}
	if err := gpu.SetDeviceProvider(host); err != nil {
		// gg keeps its own device or rasterizes on the CPU.
		ggui.Logger().Debug("gpusurface: device not shared with gg", "err", err)
	}
	s := &Surface{host: host}
	s.resize(size)
	return s, nil
}

func (s *Surface) resize(size ggui.PhysicalSize) {
	s.size = size
	if s.canvas != nil {
		_ = s.canvas.Close()
	}
	s.canvas = canvas.NewGGCanvas(int(size.Width), int(size.Height))
	s.sizeChanged = true
}

// Name implements surface.Surface.
func (s *Surface) Name() string { return Name }

// Host returns the host the surface presents into.
func (s *Surface) Host() Host { return s.host }

// Render draws a frame and presents what remains on the canvas.
func (s *Surface) Render(size ggui.PhysicalSize, draw surface.DrawFunc) error {
	if s.closed {
		return ggui.NewPlatformError("render on webgpu surface", surface.ErrSurfaceClosed)
	}
	if size != s.size {
		s.resize(size)
	}
	s.canvas.Reset()
	s.canvas.Discard()
	s.layer = 0
	if err := draw(s.canvas, deviceContext{s}); err != nil {
		return err
	}
	return s.present()
}

// present draws pending canvas content as the next texture of the frame
// and clears the canvas.
func (s *Surface) present() error {
	if !s.canvas.Dirty() || s.size.IsEmpty() {
		return nil
	}
	data, err := s.canvas.Pixels()
	if err != nil {
		return ggui.NewPlatformError("flush gg context", err)
	}
	tex, err := s.upload(s.layer, data)
	if err != nil {
		return ggui.NewPlatformError("upload frame texture", err)
	}
	if err := s.host.DrawTexture(tex, 0, 0); err != nil {
		return ggui.NewPlatformError("draw frame texture", err)
	}
	s.layer++
	s.canvas.Discard()
	return nil
}

// upload fills texture i, creating it on first use and after a resize and
// updating it in place otherwise.
func (s *Surface) upload(i int, data []byte) (any, error) {
	if s.sizeChanged {
		// The host may still read from the current textures.
		destroyAll(s.stale)
		s.stale = s.textures
		s.textures = nil
		s.sizeChanged = false
	}

	if i < len(s.textures) {
		if updater, ok := s.textures[i].(textureUpdater); ok {
			if err := updater.UpdateData(data); err != nil {
				return nil, fmt.Errorf("gpusurface: texture update failed: %w", err)
			}
			return s.textures[i], nil
		}
		s.stale = append(s.stale, s.textures[i])
		s.textures[i] = nil
	}

	tex, err := s.host.NewTextureFromRGBA(int(s.size.Width), int(s.size.Height), data)
	if err != nil {
		return nil, fmt.Errorf("gpusurface: NewTextureFromRGBA failed: %w", err)
	}
	// gg pixmaps are premultiplied.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}
	if i < len(s.textures) {
		s.textures[i] = tex
	} else {
		s.textures = append(s.textures, tex)
	}

	// The upload waited for the device, so the old textures are idle now.
	destroyAll(s.stale)
	s.stale = nil
	return tex, nil
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

func destroyAll(texs []any) {
	for _, t := range texs {
		destroy(t)
	}
}

// ResizeEvent resizes the back buffer. The texture is recreated on the
// next frame.
func (s *Surface) ResizeEvent(size ggui.PhysicalSize) error {
	if s.closed {
		return ggui.NewPlatformError("resize webgpu surface", surface.ErrSurfaceClosed)
	}
	if size != s.size {
		s.resize(size)
	}
	return nil
}

// SupportsGraphicsAPI returns true.
func (s *Surface) SupportsGraphicsAPI() bool { return true }

// WithGraphicsAPI calls fn with the host's device.
func (s *Surface) WithGraphicsAPI(fn func(api surface.GraphicsAPI)) {
	if s.closed {
		return
	}
	fn(surface.WebGPU{Provider: s.host})
}

// WithActiveSurface calls fn. WebGPU has no current-context notion.
func (s *Surface) WithActiveSurface(fn func()) error {
	if s.closed {
		return ggui.NewPlatformError("activate webgpu surface", surface.ErrSurfaceClosed)
	}
	fn()
	return nil
}

// BitsPerPixel derives the color depth from the host's surface format.
func (s *Surface) BitsPerPixel() (uint8, error) {
	switch s.host.SurfaceFormat() {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 32, nil
	case gputypes.TextureFormatR8Unorm:
		return 8, nil
	default:
		return 0, ggui.NewPlatformError("query webgpu surface format", ErrUnsupportedFormat)
	}
}

// Close destroys the textures. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	destroyAll(s.stale)
	destroyAll(s.textures)
	s.stale = nil
	s.textures = nil
	if s.canvas != nil {
		_ = s.canvas.Close()
		s.canvas = nil
	}
	return nil
}

// deviceContext draws the canvas so far and polls devices that support
// it, so host drawing that follows lands on top.
type deviceContext struct{ s *Surface }

func (c deviceContext) Flush() error {
	if err := c.s.present(); err != nil {
		return err
	}
	if d, ok := c.s.host.Device().(interface{ Poll(wait bool) }); ok {
		d.Poll(false)
	}
	return nil
}
