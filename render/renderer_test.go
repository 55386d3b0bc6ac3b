// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/surface"
	"github.com/gogpu/ggui/window"
)

// fakeSurface records frames into a canvas.Recorder, which also serves as
// the graphics context.
type fakeSurface struct {
	rec         *canvas.Recorder
	graphicsAPI bool
	bppErr      error
	renderErr   error
	events      *[]string

	closed  int
	resized []ggui.PhysicalSize
}

func newFakeSurface(events *[]string) *fakeSurface {
	return &fakeSurface{rec: canvas.NewRecorder(0, 0), graphicsAPI: true, events: events}
}

func (f *fakeSurface) log(s string) {
	if f.events != nil {
		*f.events = append(*f.events, s)
	}
}

func (f *fakeSurface) Name() string { return "fake" }

func (f *fakeSurface) Render(size ggui.PhysicalSize, draw surface.DrawFunc) error {
	if f.renderErr != nil {
		return f.renderErr
	}
	f.rec.Resize(int(size.Width), int(size.Height))
	f.log("render")
	err := draw(f.rec, f.rec)
	f.log("present")
	return err
}

func (f *fakeSurface) ResizeEvent(size ggui.PhysicalSize) error {
	f.resized = append(f.resized, size)
	return nil
}

func (f *fakeSurface) SupportsGraphicsAPI() bool { return f.graphicsAPI }

func (f *fakeSurface) WithGraphicsAPI(fn func(surface.GraphicsAPI)) {
	if f.graphicsAPI {
		fn(surface.NativeOpenGL{})
	}
}

func (f *fakeSurface) WithActiveSurface(fn func()) error {
	f.log("active")
	fn()
	return errors.New("context lost")
}

func (f *fakeSurface) BitsPerPixel() (uint8, error) { return 32, f.bppErr }

func (f *fakeSurface) Close() error {
	f.closed++
	return nil
}

type testAdapter struct {
	w       *window.Window
	redraws int
}

func (a *testAdapter) Window() *window.Window     { return a.w }
func (a *testAdapter) Renderer() window.Renderer { return nil }
func (a *testAdapter) RequestRedraw()            { a.redraws++ }
func (a *testAdapter) Show() error               { return nil }
func (a *testAdapter) Hide() error               { return nil }

type fixture struct {
	events   []string
	surface  *fakeSurface
	renderer *Renderer
	reg      *window.Registry
	ref      window.Ref
	win      *window.Window
	adapter  *testAdapter
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{}
	f.surface = newFakeSurface(&f.events)
	f.renderer = New(f.surface, append([]Option{WithMetricsEnv("")}, opts...)...)
	f.win = window.New(ggui.PhysicalSize{Width: 200, Height: 100})
	f.adapter = &testAdapter{w: f.win}
	f.reg = window.NewRegistry()
	f.ref = f.reg.Add(f.adapter)
	f.renderer.SetWindowAdapter(f.ref)
	return f
}

func (f *fixture) notifier() Notifier {
	return NotifierFunc(func(state RenderingState, api surface.GraphicsAPI) {
		f.events = append(f.events, state.String())
	})
}

func TestRenderWithoutSurfaceIsNoop(t *testing.T) {
	r := New(nil)
	if err := r.Render(); err != nil {
		t.Errorf("Render() error = %v", err)
	}
	if err := r.Resize(ggui.PhysicalSize{Width: 1, Height: 1}); err != nil {
		t.Errorf("Resize() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func mustRender(t *testing.T, r *Renderer) {
	t.Helper()
	if err := r.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func mustSetNotifier(t *testing.T, r *Renderer, n Notifier) {
	t.Helper()
	if err := r.SetRenderingNotifier(n); err != nil {
		t.Fatalf("SetRenderingNotifier() error = %v", err)
	}
}

func TestSolidBackgroundClearsWithoutRect(t *testing.T) {
	f := newFixture(t)
	bg := ggui.RGB(10, 20, 30)
	f.win.SetBackground(ggui.Solid(bg))

	mustRender(t, f.renderer)

	rec := f.surface.rec
	if n := rec.Count(canvas.CmdClear); n != 1 {
		t.Fatalf("clears = %d, want 1", n)
	}
	if got := rec.Commands()[rec.Index(canvas.CmdClear, 0)].Color; got != bg {
		t.Errorf("clear color = %v, want %v", got, bg)
	}
	if n := rec.Count(canvas.CmdFillRect); n != 0 {
		t.Errorf("rects = %d, want 0", n)
	}
}

func TestGradientBackgroundDrawsOneRectAfterBeforeRendering(t *testing.T) {
	f := newFixture(t)
	grad := ggui.LinearGradient{Angle: 90, Stops: []ggui.GradientStop{
		{Position: 0, Color: ggui.Black},
		{Position: 1, Color: ggui.White},
	}}
	f.win.SetBackground(grad)

	var rectsAtBefore = -1
	mustSetNotifier(t, f.renderer, NotifierFunc(func(state RenderingState, _ surface.GraphicsAPI) {
		if state == BeforeRendering {
			rectsAtBefore = f.surface.rec.Count(canvas.CmdFillRect)
		}
	}))

	mustRender(t, f.renderer)

	rec := f.surface.rec
	if n := rec.Count(canvas.CmdClear); n != 0 {
		t.Errorf("clears = %d, want 0", n)
	}
	if rectsAtBefore != 0 {
		t.Errorf("rects at BeforeRendering = %d, background drawn too early", rectsAtBefore)
	}
	if n := rec.Count(canvas.CmdFillRect); n != 1 {
		t.Fatalf("rects = %d, want 1", n)
	}
	cmd := rec.Commands()[rec.Index(canvas.CmdFillRect, 0)]
	if want := (ggui.Rect{Width: 200, Height: 100}); cmd.Rect != want {
		t.Errorf("rect = %v, want %v", cmd.Rect, want)
	}
	if g, ok := cmd.Paint.Brush.(ggui.LinearGradient); !ok || g.Angle != grad.Angle || !slices.Equal(g.Stops, grad.Stops) {
		t.Errorf("brush = %v, want %v", cmd.Paint.Brush, grad)
	}
}

func TestNotifierSequence(t *testing.T) {
	f := newFixture(t)
	mustSetNotifier(t, f.renderer, f.notifier())

	mustRender(t, f.renderer)
	mustRender(t, f.renderer)
	if err := f.renderer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []string{
		"RenderingSetup", "render", "BeforeRendering", "present", "AfterRendering",
		"render", "BeforeRendering", "present", "AfterRendering",
		"active", "RenderingTeardown",
	}
	if !slices.Equal(f.events, want) {
		t.Errorf("events = %v, want %v", f.events, want)
	}
	if f.surface.closed != 1 {
		t.Errorf("surface closed %d times, want 1", f.surface.closed)
	}
}

func TestFlushBeforeNotifyAndAtEnd(t *testing.T) {
	f := newFixture(t)
	mustSetNotifier(t, f.renderer, f.notifier())
	mustRender(t, f.renderer)

	rec := f.surface.rec
	cmds := rec.Commands()
	if n := rec.Count(canvas.CmdFlush); n != 2 {
		t.Fatalf("flushes = %d, want 2", n)
	}
	if cmds[0].Type != canvas.CmdClear || cmds[1].Type != canvas.CmdFlush {
		t.Errorf("first commands = %v, %v, want clear, flush", cmds[0].Type, cmds[1].Type)
	}
	if last := cmds[len(cmds)-1].Type; last != canvas.CmdFlush {
		t.Errorf("last command = %v, want flush", last)
	}
}

func TestNoFlushBeforeNotifyWithoutNotifier(t *testing.T) {
	f := newFixture(t)
	mustRender(t, f.renderer)
	if n := f.surface.rec.Count(canvas.CmdFlush); n != 1 {
		t.Errorf("flushes = %d, want 1", n)
	}
}

func TestSetRenderingNotifierAlreadySet(t *testing.T) {
	f := newFixture(t)
	first := 0
	mustSetNotifier(t, f.renderer, NotifierFunc(func(RenderingState, surface.GraphicsAPI) { first++ }))

	second := 0
	err := f.renderer.SetRenderingNotifier(NotifierFunc(func(RenderingState, surface.GraphicsAPI) { second++ }))
	if !errors.Is(err, ErrNotifierAlreadySet) {
		t.Errorf("SetRenderingNotifier() error = %v, want ErrNotifierAlreadySet", err)
	}

	mustRender(t, f.renderer)
	if first != 3 || second != 0 {
		t.Errorf("calls = %d, %d, want 3, 0", first, second)
	}
}

func TestSetRenderingNotifierUnsupported(t *testing.T) {
	f := newFixture(t)
	f.surface.graphicsAPI = false

	err := f.renderer.SetRenderingNotifier(f.notifier())
	if !errors.Is(err, ErrNotifierUnsupported) {
		t.Errorf("SetRenderingNotifier() error = %v, want ErrNotifierUnsupported", err)
	}
	if f.renderer.notifier != nil {
		t.Error("notifier installed although unsupported")
	}

	mustRender(t, f.renderer)
	if want := []string{"render", "present"}; !slices.Equal(f.events, want) {
		t.Errorf("events = %v, want %v", f.events, want)
	}
}

func TestNotifierReceivesGraphicsAPI(t *testing.T) {
	f := newFixture(t)
	var got surface.GraphicsAPI
	mustSetNotifier(t, f.renderer, NotifierFunc(func(_ RenderingState, api surface.GraphicsAPI) {
		got = api
	}))
	mustRender(t, f.renderer)
	if _, ok := got.(surface.NativeOpenGL); !ok {
		t.Errorf("api = %T, want surface.NativeOpenGL", got)
	}
}

func TestRenderAdapterGone(t *testing.T) {
	f := newFixture(t)
	f.reg.Remove(f.ref)

	err := f.renderer.Render()
	var pe *ggui.PlatformError
	if !errors.As(err, &pe) {
		t.Fatalf("Render() error = %v, want *ggui.PlatformError", err)
	}
	if !errors.Is(err, window.ErrAdapterGone) {
		t.Errorf("Render() error = %v, want ErrAdapterGone", err)
	}
}

func TestRenderNotAssociated(t *testing.T) {
	r := New(newFakeSurface(nil), WithMetricsEnv(""))
	err := r.Render()
	var pe *ggui.PlatformError
	if !errors.As(err, &pe) {
		t.Fatalf("Render() error = %v, want *ggui.PlatformError", err)
	}
	if !errors.Is(err, window.ErrNotAssociated) {
		t.Errorf("Render() error = %v, want ErrNotAssociated", err)
	}
}

func TestRenderBitsPerPixelError(t *testing.T) {
	f := newFixture(t)
	f.surface.bppErr = ggui.ErrUnsupported
	if err := f.renderer.Render(); !errors.Is(err, ggui.ErrUnsupported) {
		t.Errorf("Render() error = %v, want ErrUnsupported", err)
	}
}

func TestRenderSurfaceError(t *testing.T) {
	f := newFixture(t)
	mustSetNotifier(t, f.renderer, f.notifier())
	f.surface.renderErr = ggui.NewPlatformError("swap failed", nil)

	if err := f.renderer.Render(); err == nil {
		t.Fatal("Render() error = nil, want the surface error")
	}
	if slices.Contains(f.events, "AfterRendering") {
		t.Errorf("events = %v, AfterRendering after a failed frame", f.events)
	}
}

// testImage is a solid 4x4 image.
func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func addScene(win *window.Window) (*item.Tree, int, int) {
	tree := item.NewTree()
	img := tree.Add(-1, &item.Image{Rect: ggui.Rect{Width: 20, Height: 20}, Source: testImage()})
	path := canvas.NewPath()
	path.Rectangle(0, 0, 10, 10)
	p := tree.Add(-1, &item.Path{Rect: ggui.Rect{X: 30, Width: 10, Height: 10}, Path: path, Fill: ggui.Solid(ggui.Black)})
	win.AddComponent(tree, ggui.Point{})
	return tree, img, p
}

func TestScaleChangeEvictsCaches(t *testing.T) {
	f := newFixture(t)
	tree, img, _ := addScene(f.win)

	mustRender(t, f.renderer)
	images, paths := f.renderer.CacheStats()
	if images.Len != 1 || paths.Len != 1 {
		t.Errorf("cache sizes = %d, %d, want 1, 1", images.Len, paths.Len)
	}
	first, _, found := f.renderer.images.Get(tree.Ref(img))
	if !found {
		t.Fatal("image not cached after the first frame")
	}

	f.win.SetScaleFactor(2)
	var seenDuringWalk int
	err := f.renderer.RenderWithPostCallback(func(item.Renderer) {
		seenDuringWalk = f.renderer.images.Len()
	})
	if err != nil {
		t.Fatalf("RenderWithPostCallback() error = %v", err)
	}

	if seenDuringWalk != 1 {
		t.Errorf("images during walk = %d, want 1", seenDuringWalk)
	}
	second, _, found := f.renderer.images.Get(tree.Ref(img))
	if !found {
		t.Fatal("image not cached after the scale change")
	}
	if first.img == second.img {
		t.Error("scaled image reused across a scale change")
	}
	if w := second.img.Bounds().Dx(); w != 40 {
		t.Errorf("scaled width = %d, want 40", w)
	}
	if got := f.renderer.images.ScaleFactor(); got != 2 {
		t.Errorf("cache ScaleFactor() = %v, want 2", got)
	}
}

func TestSetSurfaceClearsCachesAndRepeatsSetup(t *testing.T) {
	f := newFixture(t)
	addScene(f.win)
	mustSetNotifier(t, f.renderer, f.notifier())
	mustRender(t, f.renderer)
	if f.renderer.images.Len() == 0 {
		t.Fatal("nothing cached after the first frame")
	}

	old := f.surface
	f.surface = newFakeSurface(&f.events)
	f.renderer.SetSurface(f.surface)

	if old.closed != 1 {
		t.Errorf("old surface closed %d times, want 1", old.closed)
	}
	if n, m := f.renderer.images.Len(), f.renderer.paths.Len(); n != 0 || m != 0 {
		t.Errorf("cache sizes = %d, %d, want 0, 0", n, m)
	}
	if !f.renderer.firstRender {
		t.Error("firstRender = false after SetSurface")
	}

	f.events = nil
	mustRender(t, f.renderer)
	if len(f.events) == 0 || f.events[0] != "RenderingSetup" {
		t.Errorf("events = %v, want RenderingSetup first", f.events)
	}
}

func TestSetWindowAdapterClearsCaches(t *testing.T) {
	f := newFixture(t)
	addScene(f.win)
	mustRender(t, f.renderer)
	if f.renderer.paths.Len() == 0 {
		t.Fatal("nothing cached after the first frame")
	}

	f.renderer.SetWindowAdapter(f.ref)
	if n, m := f.renderer.images.Len(), f.renderer.paths.Len(); n != 0 || m != 0 {
		t.Errorf("cache sizes = %d, %d, want 0, 0", n, m)
	}
}

func TestFreeGraphicsResourcesKeepsSiblings(t *testing.T) {
	f := newFixture(t)
	a, aImg, aPath := addScene(f.win)
	b, bImg, bPath := addScene(f.win)
	mustRender(t, f.renderer)
	if n := f.renderer.images.Len(); n != 2 {
		t.Fatalf("images cached = %d, want 2", n)
	}

	if err := f.renderer.FreeGraphicsResources(a.ID()); err != nil {
		t.Fatalf("FreeGraphicsResources() error = %v", err)
	}

	for _, ref := range []item.Ref{a.Ref(aImg), a.Ref(aPath)} {
		if _, _, found := f.renderer.images.Get(ref); found {
			t.Errorf("image %v survived", ref)
		}
		if _, _, found := f.renderer.paths.Get(ref); found {
			t.Errorf("path %v survived", ref)
		}
	}
	if _, _, found := f.renderer.images.Get(b.Ref(bImg)); !found {
		t.Error("sibling image evicted")
	}
	if _, _, found := f.renderer.paths.Get(b.Ref(bPath)); !found {
		t.Error("sibling path evicted")
	}
}

func TestResizeForwards(t *testing.T) {
	f := newFixture(t)
	size := ggui.PhysicalSize{Width: 640, Height: 480}
	if err := f.renderer.Resize(size); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if want := []ggui.PhysicalSize{size}; !slices.Equal(f.surface.resized, want) {
		t.Errorf("resized = %v, want %v", f.surface.resized, want)
	}
}

func TestCloseIgnoresTeardownError(t *testing.T) {
	f := newFixture(t)
	mustSetNotifier(t, f.renderer, f.notifier())
	if err := f.renderer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !slices.Contains(f.events, "RenderingTeardown") {
		t.Errorf("events = %v, want RenderingTeardown", f.events)
	}
	if f.renderer.Surface() != nil {
		t.Error("Surface() != nil after Close")
	}
}

func TestCloseWithoutNotifierSkipsActiveSurface(t *testing.T) {
	f := newFixture(t)
	if err := f.renderer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if slices.Contains(f.events, "active") {
		t.Errorf("events = %v, surface activated without a notifier", f.events)
	}
}

func TestPostRenderHooks(t *testing.T) {
	var order []string
	f := newFixture(t, WithPostRenderHook(func(item.Renderer) { order = append(order, "hook") }))
	err := f.renderer.RenderWithPostCallback(func(r item.Renderer) {
		if got := r.ScaleFactor(); got != 1 {
			t.Errorf("ScaleFactor() = %v, want 1", got)
		}
		order = append(order, "post")
	})
	if err != nil {
		t.Fatalf("RenderWithPostCallback() error = %v", err)
	}
	if want := []string{"post", "hook"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestMetricsOverlayAndRedraw(t *testing.T) {
	f := newFixture(t, WithMetricsEnv("overlay,refresh_full_speed"))
	mustRender(t, f.renderer)

	if f.renderer.collector == nil {
		t.Fatal("collector = nil with metrics enabled")
	}
	name := f.renderer.collector.Name()
	if !strings.Contains(name, "fake") || !strings.Contains(name, "32 bpp") {
		t.Errorf("collector name = %q, want surface name and bpp", name)
	}
	if f.adapter.redraws != 1 {
		t.Errorf("redraws = %d, want 1", f.adapter.redraws)
	}
	if n := f.surface.rec.Count(canvas.CmdFillPath); n != 1 {
		t.Errorf("overlay paths = %d, want 1", n)
	}
}

func TestRenderOntoImageSurface(t *testing.T) {
	s := surface.NewImageSurface(ggui.PhysicalSize{Width: 20, Height: 10})
	r := New(s, WithMetricsEnv(""))
	win := window.New(ggui.PhysicalSize{Width: 20, Height: 10})
	win.SetBackground(ggui.Solid(ggui.RGB(255, 0, 0)))
	tree := item.NewTree()
	tree.Add(-1, &item.Rectangle{Rect: ggui.Rect{X: 10, Width: 10, Height: 10}, Background: ggui.Solid(ggui.RGB(0, 0, 255))})
	win.AddComponent(tree, ggui.Point{})

	reg := window.NewRegistry()
	r.SetWindowAdapter(reg.Add(&testAdapter{w: win}))
	mustRender(t, r)

	img := s.Snapshot()
	if got, want := img.RGBAAt(2, 5), (color.RGBA{R: 255, A: 255}); got != want {
		t.Errorf("background pixel = %v, want %v", got, want)
	}
	if got, want := img.RGBAAt(15, 5), (color.RGBA{B: 255, A: 255}); got != want {
		t.Errorf("rectangle pixel = %v, want %v", got, want)
	}
}

func TestNewForWindowFallsBack(t *testing.T) {
	reg := surface.NewRegistry()
	reg.Register("broken", 100, func(surface.Handles, ggui.PhysicalSize) (surface.Surface, error) {
		return nil, errors.New("no driver")
	}, nil)
	reg.Register("fake", 10, func(surface.Handles, ggui.PhysicalSize) (surface.Surface, error) {
		return newFakeSurface(nil), nil
	}, nil)

	r, err := NewForWindow(reg, surface.Handles{}, ggui.PhysicalSize{Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("NewForWindow() error = %v", err)
	}
	if got := r.Surface().Name(); got != "fake" {
		t.Errorf("Surface().Name() = %q, want %q", got, "fake")
	}

	if err := r.SetWindowHandle(reg, surface.Handles{}, ggui.PhysicalSize{Width: 1, Height: 1}); err != nil {
		t.Fatalf("SetWindowHandle() error = %v", err)
	}
	if !r.firstRender {
		t.Error("firstRender = false after SetWindowHandle")
	}
}
