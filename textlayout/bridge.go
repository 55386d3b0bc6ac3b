package textlayout

import (
	"math"
	"unicode/utf16"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/item"
)

// TextSize measures text in logical pixels. A non-nil maxWidth wraps at
// word boundaries.
func (r *FontRegistry) TextSize(req item.FontRequest, text string, maxWidth *float32, scale float32) ggui.Size {
	if scale <= 0 {
		scale = 1
	}
	var opts LayoutOptions
	if maxWidth != nil {
		opts.MaxWidth = *maxWidth * scale
		opts.Wrap = item.WordWrap
	}
	l, _ := r.CreateLayout(req, scale, text, opts)
	return ggui.Size{
		Width:  float32(math.Ceil(float64(l.MaxIntrinsicWidth()))) / scale,
		Height: float32(math.Ceil(float64(l.Height()))) / scale,
	}
}

func inputOptions(in *item.TextInput, scale float32) LayoutOptions {
	return LayoutOptions{
		MaxWidth:  in.Rect.Width * scale,
		MaxHeight: in.Rect.Height * scale,
		HAlign:    in.HAlign,
		VAlign:    in.VAlign,
		Wrap:      in.Wrap,
	}
}

// ByteOffsetForPosition returns the model byte offset of the caret position
// nearest to pos, given in logical coordinates relative to the input.
func (r *FontRegistry) ByteOffsetForPosition(in *item.TextInput, pos ggui.Point, req item.FontRequest, scale float32) int {
	if in.Rect.Width <= 0 || in.Rect.Height <= 0 {
		return 0
	}
	if scale <= 0 {
		scale = 1
	}
	vis := NewVisualRepresentation(in)
	l, topLeft := r.CreateLayout(req, scale, vis.Text, inputOptions(in, scale))
	idx := l.GlyphPositionAtCoordinate(pos.X*scale-topLeft.X, pos.Y*scale-topLeft.Y)
	return vis.MapToModel(byteOffsetForUTF16(vis.Text, idx))
}

// CursorRectForByteOffset returns the caret rectangle in logical
// coordinates relative to the input.
func (r *FontRegistry) CursorRectForByteOffset(in *item.TextInput, byteOffset int, req item.FontRequest, scale float32) ggui.Rect {
	if in.Rect.Width <= 0 || in.Rect.Height <= 0 {
		return ggui.Rect{}
	}
	if scale <= 0 {
		scale = 1
	}
	vis := NewVisualRepresentation(in)
	l, topLeft := r.CreateLayout(req, scale, vis.Text, inputOptions(in, scale))
	rect := l.CursorRect(vis.MapFromModel(byteOffset), in.CursorWidth*scale)
	return rect.Translate(topLeft.X, topLeft.Y).Scale(1 / scale)
}

func byteOffsetForUTF16(s string, idx int) int {
	count := 0
	for i, r := range s {
		if count >= idx {
			return i
		}
		count += utf16.RuneLen(r)
	}
	return len(s)
}

// TextSize measures text with the default registry.
func TextSize(req item.FontRequest, text string, maxWidth *float32, scale float32) ggui.Size {
	return Default().TextSize(req, text, maxWidth, scale)
}

// ByteOffsetForPosition hit-tests with the default registry.
func ByteOffsetForPosition(in *item.TextInput, pos ggui.Point, req item.FontRequest, scale float32) int {
	return Default().ByteOffsetForPosition(in, pos, req, scale)
}

// CursorRectForByteOffset computes a caret rectangle with the default
// registry.
func CursorRectForByteOffset(in *item.TextInput, byteOffset int, req item.FontRequest, scale float32) ggui.Rect {
	return Default().CursorRectForByteOffset(in, byteOffset, req, scale)
}
