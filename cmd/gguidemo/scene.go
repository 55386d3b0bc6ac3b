package main

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/item"
	"github.com/gogpu/ggui/window"
)

// scene is the demo's item tree with handles to the items it edits.
type scene struct {
	tree  *item.Tree
	input *item.TextInput
	title *item.Text
}

func newScene(size ggui.Size) *scene {
	t := item.NewTree()
	s := &scene{tree: t}

	t.Add(-1, &item.BoxShadow{
		Rect:         ggui.Rect{X: 40, Y: 40, Width: 320, Height: 180},
		OffsetX:      4,
		OffsetY:      6,
		Color:        ggui.RGBA(0, 0, 0, 96),
		Blur:         12,
		BorderRadius: 12,
	})
	card := t.Add(-1, &item.BorderRectangle{
		Rect:         ggui.Rect{X: 40, Y: 40, Width: 320, Height: 180},
		Background:   ggui.Solid(ggui.White),
		BorderWidth:  1,
		BorderRadius: 12,
		BorderColor:  ggui.Solid(ggui.RGB(200, 200, 200)),
	})
	clip := t.Add(card, &item.Clip{Rect: ggui.Rect{Width: 320, Height: 180}, Enabled: true, BorderRadius: 12})

	s.title = &item.Text{
		Rect:     ggui.Rect{X: 16, Y: 12, Width: 288, Height: 28},
		Text:     "Hello from ggui",
		Font:     item.FontRequest{PixelSize: 20, Weight: 700},
		Color:    ggui.Solid(ggui.RGB(33, 33, 33)),
		Overflow: item.OverflowElide,
	}
	t.Add(clip, s.title)

	t.Add(clip, &item.Text{
		Rect:  ggui.Rect{X: 16, Y: 44, Width: 288, Height: 48},
		Text:  "Items are drawn by the frame renderer; images and paths are cached per item.",
		Font:  item.FontRequest{PixelSize: 13},
		Color: ggui.Solid(ggui.RGB(90, 90, 90)),
		Wrap:  item.WordWrap,
	})

	s.input = &item.TextInput{
		Rect:                ggui.Rect{X: 16, Y: 110, Width: 288, Height: 28},
		Text:                "type here",
		Font:                item.FontRequest{PixelSize: 14},
		Color:               ggui.Solid(ggui.Black),
		VAlign:              item.AlignVCenter,
		CursorPosition:      len("type here"),
		AnchorPosition:      len("type here"),
		CursorVisible:       true,
		CursorWidth:         1,
		SelectionBackground: ggui.RGB(173, 214, 255),
		SelectionForeground: ggui.Black,
	}
	t.Add(clip, s.input)

	badge := canvas.NewPath()
	badge.Circle(12, 12, 10)
	t.Add(-1, &item.Path{
		Rect:        ggui.Rect{X: 400, Y: 40, Width: 48, Height: 48},
		Path:        badge,
		Viewbox:     ggui.Rect{Width: 24, Height: 24},
		Fill:        ggui.Solid(ggui.RGB(66, 133, 244)),
		Stroke:      ggui.Solid(ggui.RGB(25, 90, 200)),
		StrokeWidth: 2,
	})

	fade := t.Add(-1, &item.Opacity{Rect: ggui.Rect{X: 400, Y: 110, Width: 120, Height: 80}, Opacity: 0.8})
	t.Add(fade, &item.Image{
		Rect:   ggui.Rect{Width: 120, Height: 80},
		Source: checkerboard(16, 16, 4),
		Fit:    item.ImageFitCover,
	})

	t.Add(-1, &item.Rectangle{
		Rect: ggui.Rect{Y: size.Height - 24, Width: size.Width, Height: 24},
		Background: ggui.LinearGradient{Angle: 90, Stops: []ggui.GradientStop{
			{Position: 0, Color: ggui.RGB(66, 133, 244)},
			{Position: 1, Color: ggui.RGB(52, 168, 83)},
		}},
	})
	return s
}

func checkerboard(w, h, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 240, G: 240, B: 240, A: 255}
			if (x/cell+y/cell)%2 == 1 {
				c = color.RGBA{R: 120, G: 120, B: 120, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// handle applies window events to the scene and reports whether the
// scene changed.
func (s *scene) handle(ev window.Event) bool {
	switch ev := ev.(type) {
	case window.FocusChanged:
		s.input.HasFocus = ev.Focused
		return true
	case window.KeyInput:
		if !ev.Pressed {
			return false
		}
		if ev.Text != "" {
			s.insert(ev.Text)
			return true
		}
		if ev.Code == keyBackspace {
			return s.backspace()
		}
	}
	return false
}

// glfw key code of backspace.
const keyBackspace = 259

func (s *scene) insert(text string) {
	in := s.input
	start, end := in.Selection()
	in.Text = in.Text[:start] + text + in.Text[end:]
	in.CursorPosition = start + len(text)
	in.AnchorPosition = in.CursorPosition
	in.CursorVisible = true
}

func (s *scene) backspace() bool {
	in := s.input
	start, end := in.Selection()
	if start == end {
		if start == 0 {
			return false
		}
		_, n := utf8.DecodeLastRuneInString(in.Text[:start])
		start -= n
	}
	in.Text = in.Text[:start] + in.Text[end:]
	in.CursorPosition = start
	in.AnchorPosition = start
	in.CursorVisible = true
	return true
}

// blink toggles the caret.
func (s *scene) blink() {
	s.input.CursorVisible = !s.input.CursorVisible
}
