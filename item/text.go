// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package item

import "github.com/gogpu/ggui"

// FontRequest selects a font. Zero fields take defaults: the registry's
// default family, the default font size and regular weight.
type FontRequest struct {
	Family    string
	PixelSize float32 // logical pixels
	Weight    int     // CSS weight, 100..900
	Locale    string  // BCP 47 language tag used for shaping
}

// HorizontalAlignment positions text lines inside their box.
type HorizontalAlignment uint8

const (
	AlignLeft HorizontalAlignment = iota
	AlignCenter
	AlignRight
)

// VerticalAlignment positions the text block inside its box.
type VerticalAlignment uint8

const (
	AlignTop VerticalAlignment = iota
	AlignVCenter
	AlignBottom
)

// TextWrap selects line breaking.
type TextWrap uint8

const (
	// NoWrap keeps each paragraph on one line.
	NoWrap TextWrap = iota
	// WordWrap breaks lines between words, and inside a word only when it
	// does not fit on a line by itself.
	WordWrap
	// CharWrap breaks lines at any character.
	CharWrap
)

// TextOverflow selects what happens to text that does not fit.
type TextOverflow uint8

const (
	OverflowClip TextOverflow = iota
	OverflowElide
)

// Text draws a static string.
type Text struct {
	Rect     ggui.Rect
	Text     string
	Font     FontRequest
	Color    ggui.Brush
	HAlign   HorizontalAlignment
	VAlign   VerticalAlignment
	Wrap     TextWrap
	Overflow TextOverflow
}

func (t *Text) Geometry() ggui.Rect { return t.Rect }

func (t *Text) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	v.DrawText(t, self, size)
	return ContinueRenderingChildren
}

// InputType distinguishes plain text inputs from password fields.
type InputType uint8

const (
	InputText InputType = iota
	InputPassword
)

// TextInput is an editable text field. Cursor and anchor positions are
// byte offsets into Text.
type TextInput struct {
	Rect   ggui.Rect
	Text   string
	Font   FontRequest
	Color  ggui.Brush
	HAlign HorizontalAlignment
	VAlign VerticalAlignment
	Wrap   TextWrap

	InputType InputType

	CursorPosition int
	AnchorPosition int
	CursorVisible  bool
	CursorWidth    float32 // logical pixels
	HasFocus       bool

	// PreeditText is uncommitted input method text shown at the cursor.
	PreeditText string

	SelectionBackground ggui.Color
	SelectionForeground ggui.Color
}

func (t *TextInput) Geometry() ggui.Rect { return t.Rect }

func (t *TextInput) Render(v Renderer, self Ref, size ggui.Size) RenderingResult {
	v.DrawTextInput(t, self, size)
	return ContinueRenderingChildren
}

// Selection returns the selected byte range, ordered.
func (t *TextInput) Selection() (start, end int) {
	start, end = t.AnchorPosition, t.CursorPosition
	if start > end {
		start, end = end, start
	}
	start = min(max(start, 0), len(t.Text))
	end = min(max(end, 0), len(t.Text))
	return start, end
}
