// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/cache"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/textlayout"
)

func newTestItemRenderer(scale float32) (*itemRenderer, *canvas.Recorder) {
	rec := canvas.NewRecorder(400, 400)
	return newItemRenderer(rec, scale, cache.New[cachedImage](), cache.New[cachedPath](), textlayout.Default()), rec
}

func TestDrawRectangleScales(t *testing.T) {
	r, rec := newTestItemRenderer(2)
	r.DrawRectangle(&item.Rectangle{Background: ggui.Solid(ggui.Black)}, item.Ref{}, ggui.Size{Width: 10, Height: 5})

	if rec.Count(canvas.CmdFillRect) != 1 {
		t.Fatalf("FillRect count = %d, want 1", rec.Count(canvas.CmdFillRect))
	}
	got := rec.Commands()[0].Rect
	if want := (ggui.Rect{Width: 20, Height: 10}); got != want {
		t.Errorf("rect = %v, want %v", got, want)
	}
}

func TestDrawRectangleTransparent(t *testing.T) {
	r, rec := newTestItemRenderer(1)
	r.DrawRectangle(&item.Rectangle{}, item.Ref{}, ggui.Size{Width: 10, Height: 5})
	r.DrawRectangle(&item.Rectangle{Background: ggui.Solid(ggui.Transparent)}, item.Ref{}, ggui.Size{Width: 10, Height: 5})
	if n := len(rec.Commands()); n != 0 {
		t.Errorf("recorded %d commands, want 0", n)
	}
}

func TestDrawBorderRectangle(t *testing.T) {
	tests := []struct {
		name  string
		rect  item.BorderRectangle
		paths int
	}{
		{"background only", item.BorderRectangle{Background: ggui.Solid(ggui.White)}, 1},
		{"border only", item.BorderRectangle{BorderWidth: 2, BorderColor: ggui.Solid(ggui.Black)}, 1},
		{"both", item.BorderRectangle{Background: ggui.Solid(ggui.White), BorderWidth: 2, BorderRadius: 4, BorderColor: ggui.Solid(ggui.Black)}, 2},
		{"invisible border", item.BorderRectangle{BorderWidth: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newTestItemRenderer(1)
			r.DrawBorderRectangle(&tt.rect, item.Ref{}, ggui.Size{Width: 20, Height: 20})
			if got := rec.Count(canvas.CmdFillPath); got != tt.paths {
				t.Errorf("FillPath count = %d, want %d", got, tt.paths)
			}
		})
	}
}

func TestScaleImageFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	box := ggui.Rect{Width: 40, Height: 40}

	tests := []struct {
		fit  item.ImageFit
		w, h int
		at   ggui.Point
	}{
		{item.ImageFitFill, 40, 40, ggui.Point{}},
		{item.ImageFitContain, 40, 20, ggui.Point{Y: 10}},
		{item.ImageFitCover, 80, 40, ggui.Point{X: -20}},
	}
	for _, tt := range tests {
		got, ok := scaleImage(src, tt.fit, box)
		if !ok {
			t.Fatalf("fit %d: not ok", tt.fit)
		}
		if b := got.img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("fit %d: size = %dx%d, want %dx%d", tt.fit, b.Dx(), b.Dy(), tt.w, tt.h)
		}
		if got.at != tt.at {
			t.Errorf("fit %d: at = %v, want %v", tt.fit, got.at, tt.at)
		}
	}

	if _, ok := scaleImage(image.NewRGBA(image.Rectangle{}), item.ImageFitFill, box); ok {
		t.Error("empty source reported ok")
	}
}

func TestDrawImageUsesCache(t *testing.T) {
	r, rec := newTestItemRenderer(1)
	img := &item.Image{Source: testImage()}
	ref := item.Ref{Component: item.NewComponentID(), Index: 3}

	r.DrawImage(img, ref, ggui.Size{Width: 8, Height: 8})
	r.DrawImage(img, ref, ggui.Size{Width: 8, Height: 8})

	if rec.Count(canvas.CmdDrawImage) != 2 {
		t.Fatalf("DrawImage count = %d, want 2", rec.Count(canvas.CmdDrawImage))
	}
	st := r.images.Stats()
	if st.Misses != 1 || st.Hits != 1 {
		t.Errorf("stats = %+v, want one miss and one hit", st)
	}
}

func TestDrawImageRescalesAfterResize(t *testing.T) {
	r, _ := newTestItemRenderer(1)
	img := &item.Image{Source: testImage()}
	ref := item.Ref{Component: item.NewComponentID(), Index: 1}

	r.DrawImage(img, ref, ggui.Size{Width: 8, Height: 8})
	r.DrawImage(img, ref, ggui.Size{Width: 64, Height: 64})

	cached, ok, found := r.images.Get(ref)
	if !found || !ok {
		t.Fatal("image not cached")
	}
	if got := cached.img.Bounds().Dx(); got != 64 {
		t.Errorf("cached image width = %d, want 64", got)
	}
	if got := r.images.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestDrawImageFollowsSourceAndFit(t *testing.T) {
	r, _ := newTestItemRenderer(1)
	ref := item.Ref{Component: item.NewComponentID(), Index: 2}
	size := ggui.Size{Width: 8, Height: 4}

	first := testImage()
	r.DrawImage(&item.Image{Source: first}, ref, size)

	second := image.NewRGBA(image.Rect(0, 0, 2, 2))
	r.DrawImage(&item.Image{Source: second}, ref, size)
	cached, _, _ := r.images.Get(ref)
	if cached.key.src != image.Image(second) {
		t.Error("cached image still derived from the old source")
	}

	r.DrawImage(&item.Image{Source: second, Fit: item.ImageFitContain}, ref, size)
	cached, _, _ = r.images.Get(ref)
	if got := cached.img.Bounds().Dx(); got != 4 {
		t.Errorf("contained image width = %d, want 4", got)
	}
}

func TestSameImage(t *testing.T) {
	a, b := testImage(), testImage()
	if !sameImage(a, a) {
		t.Error("sameImage(a, a) = false")
	}
	if sameImage(a, b) {
		t.Error("sameImage(a, b) = true for distinct images")
	}
	if sameImage(uncomparableImage{}, uncomparableImage{}) {
		t.Error("sameImage matched a non-comparable image type")
	}
}

// uncomparableImage has a slice field, so == on it would panic.
type uncomparableImage struct{ pix []uint8 }

func (uncomparableImage) ColorModel() color.Model { return color.RGBAModel }
func (uncomparableImage) Bounds() image.Rectangle { return image.Rect(0, 0, 1, 1) }
func (uncomparableImage) At(int, int) color.Color { return color.Black }

func TestDrawPathFollowsPathChange(t *testing.T) {
	r, _ := newTestItemRenderer(1)
	ref := item.Ref{Component: item.NewComponentID(), Index: 4}
	size := ggui.Size{Width: 100, Height: 100}
	fill := ggui.Solid(ggui.Black)

	small := canvas.NewPath()
	small.Rectangle(0, 0, 10, 10)
	r.DrawPath(&item.Path{Path: small, Fill: fill}, ref, size)

	large := canvas.NewPath()
	large.Rectangle(0, 0, 50, 50)
	r.DrawPath(&item.Path{Path: large, Fill: fill}, ref, size)

	cached, _, _ := r.paths.Get(ref)
	if got, want := cached.path.Bounds(), (ggui.Rect{Width: 50, Height: 50}); got != want {
		t.Errorf("bounds after path change = %v, want %v", got, want)
	}

	// Extending the path in place must also refresh the entry.
	large.Rectangle(60, 60, 20, 20)
	r.DrawPath(&item.Path{Path: large, Fill: fill}, ref, size)
	cached, _, _ = r.paths.Get(ref)
	if got, want := cached.path.Bounds(), (ggui.Rect{Width: 80, Height: 80}); got != want {
		t.Errorf("bounds after in-place change = %v, want %v", got, want)
	}
}

func TestDrawPathViewboxResize(t *testing.T) {
	r, _ := newTestItemRenderer(1)
	ref := item.Ref{Component: item.NewComponentID(), Index: 5}
	p := canvas.NewPath()
	p.Rectangle(0, 0, 10, 10)
	path := &item.Path{Path: p, Viewbox: ggui.Rect{Width: 10, Height: 10}, Fill: ggui.Solid(ggui.Black)}

	r.DrawPath(path, ref, ggui.Size{Width: 20, Height: 20})
	r.DrawPath(path, ref, ggui.Size{Width: 40, Height: 40})

	cached, _, _ := r.paths.Get(ref)
	if got, want := cached.path.Bounds(), (ggui.Rect{Width: 40, Height: 40}); got != want {
		t.Errorf("bounds after resize = %v, want %v", got, want)
	}
}

func TestDrawPathViewbox(t *testing.T) {
	r, _ := newTestItemRenderer(2)
	p := canvas.NewPath()
	p.Rectangle(10, 10, 10, 10)
	ref := item.Ref{Component: item.NewComponentID()}

	r.DrawPath(&item.Path{
		Path:    p,
		Viewbox: ggui.Rect{X: 10, Y: 10, Width: 10, Height: 10},
		Fill:    ggui.Solid(ggui.Black),
	}, ref, ggui.Size{Width: 50, Height: 50})

	cached, ok, found := r.paths.Get(ref)
	if !found || !ok {
		t.Fatal("path not cached")
	}
	if got, want := cached.path.Bounds(), (ggui.Rect{Width: 100, Height: 100}); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestDrawPathStroke(t *testing.T) {
	r, rec := newTestItemRenderer(1)
	p := canvas.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 10)
	r.DrawPath(&item.Path{Path: p, Stroke: ggui.Solid(ggui.Black), StrokeWidth: 2}, item.Ref{}, ggui.Size{Width: 10, Height: 10})

	if rec.Count(canvas.CmdStrokePath) != 1 || rec.Count(canvas.CmdFillPath) != 0 {
		t.Errorf("commands = %v", rec.Commands())
	}
	if w := rec.Commands()[0].Width; w != 2 {
		t.Errorf("stroke width = %v, want 2", w)
	}
}

func TestDrawBoxShadowLayers(t *testing.T) {
	r, rec := newTestItemRenderer(1)
	s := &item.BoxShadow{Color: ggui.Black, Blur: 4, OffsetX: 3, OffsetY: 5}

	r.DrawBoxShadow(s, item.Ref{}, ggui.Size{Width: 20, Height: 20})
	if got := rec.Count(canvas.CmdFillPath); got != 4 {
		t.Errorf("layers = %d, want 4", got)
	}
	tr := rec.Commands()[rec.Index(canvas.CmdTranslate, 0)]
	if tr.Point != (ggui.Point{X: 3, Y: 5}) {
		t.Errorf("offset = %v", tr.Point)
	}

	r.DrawBoxShadow(s, item.Ref{}, ggui.Size{Width: 20, Height: 20})
	if len(r.shadows) != 1 {
		t.Errorf("shadow cache entries = %d, want 1", len(r.shadows))
	}

	rec.Reset()
	r.DrawBoxShadow(&item.BoxShadow{Color: ggui.Black}, item.Ref{}, ggui.Size{Width: 20, Height: 20})
	if got := rec.Count(canvas.CmdFillPath); got != 1 {
		t.Errorf("unblurred layers = %d, want 1", got)
	}
}

func TestVisitClip(t *testing.T) {
	r, _ := newTestItemRenderer(2)

	if got := r.VisitClip(&item.Clip{}, item.Ref{}, ggui.Size{}); got != item.ContinueRenderingChildren {
		t.Errorf("disabled clip = %v", got)
	}

	r.SaveState()
	r.Translate(10, 10)
	if got := r.VisitClip(&item.Clip{Enabled: true}, item.Ref{}, ggui.Size{Width: 30, Height: 20}); got != item.ContinueRenderingChildren {
		t.Errorf("clip = %v", got)
	}
	if got, want := r.CurrentClip(), (ggui.Rect{Width: 30, Height: 20}); got != want {
		t.Errorf("CurrentClip() = %v, want %v", got, want)
	}
	if got := r.VisitClip(&item.Clip{Enabled: true}, item.Ref{}, ggui.Size{}); got != item.ContinueRenderingWithoutChildren {
		t.Errorf("empty clip = %v", got)
	}
	r.RestoreState()

	if got, want := r.CurrentClip(), (ggui.Rect{Width: 200, Height: 200}); got != want {
		t.Errorf("restored clip = %v, want %v", got, want)
	}
}

func TestVisitOpacity(t *testing.T) {
	r, rec := newTestItemRenderer(1)

	if got := r.VisitOpacity(&item.Opacity{Opacity: 0}, item.Ref{}, ggui.Size{}); got != item.ContinueRenderingWithoutChildren {
		t.Errorf("zero opacity = %v", got)
	}
	r.VisitOpacity(&item.Opacity{Opacity: 1}, item.Ref{}, ggui.Size{})
	r.VisitOpacity(&item.Opacity{Opacity: 0.5}, item.Ref{}, ggui.Size{})

	if rec.Count(canvas.CmdSetAlpha) != 1 {
		t.Fatalf("SetAlpha count = %d, want 1", rec.Count(canvas.CmdSetAlpha))
	}
	if a := rec.Commands()[0].Alpha; a != 0.5 {
		t.Errorf("alpha = %v, want 0.5", a)
	}
}

func TestDrawText(t *testing.T) {
	r, rec := newTestItemRenderer(1)
	r.DrawText(&item.Text{Text: "Hi", Color: ggui.Solid(ggui.Black)}, item.Ref{}, ggui.Size{Width: 100, Height: 20})

	if rec.Count(canvas.CmdClipRect) != 1 || rec.Count(canvas.CmdFillPath) != 1 {
		t.Errorf("commands = %v", rec.Commands())
	}

	rec.Reset()
	r.DrawText(&item.Text{Text: "Hi"}, item.Ref{}, ggui.Size{Width: 100, Height: 20})
	if n := len(rec.Commands()); n != 0 {
		t.Errorf("text without color recorded %d commands", n)
	}
}

func TestDrawTextInputCaretAndSelection(t *testing.T) {
	r, rec := newTestItemRenderer(1)
	in := &item.TextInput{
		Rect:                ggui.Rect{Width: 100, Height: 20},
		Text:                "hello",
		Color:               ggui.Solid(ggui.Black),
		CursorPosition:      4,
		AnchorPosition:      1,
		CursorVisible:       true,
		HasFocus:            true,
		CursorWidth:         2,
		SelectionBackground: ggui.RGB(0, 0, 255),
	}
	r.DrawTextInput(in, item.Ref{}, ggui.Size{Width: 100, Height: 20})

	if got := rec.Count(canvas.CmdFillRect); got != 2 {
		t.Fatalf("FillRect count = %d, want selection and caret", got)
	}
	caret := rec.Commands()[rec.Index(canvas.CmdFillRect, rec.Index(canvas.CmdFillPath, 0))]
	if caret.Rect.Width != 2 {
		t.Errorf("caret width = %v, want 2", caret.Rect.Width)
	}
	want := textlayout.Default().CursorRectForByteOffset(in, 4, in.Font, 1)
	if caret.Rect.X != want.X {
		t.Errorf("caret x = %v, want %v", caret.Rect.X, want.X)
	}

	rec.Reset()
	in.HasFocus = false
	in.AnchorPosition = in.CursorPosition
	r.DrawTextInput(in, item.Ref{}, ggui.Size{Width: 100, Height: 20})
	if got := rec.Count(canvas.CmdFillRect); got != 0 {
		t.Errorf("unfocused input drew %d rects", got)
	}
}

func TestDrawTextInputPreeditUnderline(t *testing.T) {
	r, rec := newTestItemRenderer(1)
	in := &item.TextInput{Text: "ab", Color: ggui.Solid(ggui.Black), CursorPosition: 1, PreeditText: "xy"}
	r.DrawTextInput(in, item.Ref{}, ggui.Size{Width: 100, Height: 20})

	if got := rec.Count(canvas.CmdFillRect); got != 1 {
		t.Fatalf("FillRect count = %d, want underline", got)
	}
	if h := rec.Commands()[rec.Index(canvas.CmdFillRect, 0)].Rect.Height; h != 1 {
		t.Errorf("underline height = %v, want 1", h)
	}
}
