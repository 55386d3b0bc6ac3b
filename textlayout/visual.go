package textlayout

import (
	"strings"
	"unicode/utf8"

	"github.com/gogpu/ggui/item"
)

// passwordChar replaces every character of a password input.
const passwordChar = "●"

// VisualRepresentation is the text a TextInput actually shows: the model
// text with uncommitted pre-edit text inserted at the cursor, masked for
// password inputs.
type VisualRepresentation struct {
	Text string

	// Cursor and selection as byte offsets into Text.
	Cursor         int
	SelectionStart int
	SelectionEnd   int

	// Pre-edit insertion point and length in the unmasked text.
	preeditAt  int
	preeditLen int
	unmasked   string
	password   bool
}

// NewVisualRepresentation derives the displayed text of in.
func NewVisualRepresentation(in *item.TextInput) VisualRepresentation {
	c := min(max(in.CursorPosition, 0), len(in.Text))
	v := VisualRepresentation{
		unmasked:   in.Text,
		preeditAt:  c,
		preeditLen: len(in.PreeditText),
		password:   in.InputType == item.InputPassword,
	}
	if in.PreeditText != "" {
		v.unmasked = in.Text[:c] + in.PreeditText + in.Text[c:]
	}
	v.Text = v.unmasked
	if v.password {
		v.Text = strings.Repeat(passwordChar, utf8.RuneCountInString(v.unmasked))
	}

	start, end := in.Selection()
	v.Cursor = v.MapFromModel(c)
	v.SelectionStart = v.MapFromModel(start)
	v.SelectionEnd = v.MapFromModel(end)
	return v
}

// MapToModel converts a byte offset into Text to a byte offset into the
// model text. Offsets inside the pre-edit text map to the cursor.
func (v VisualRepresentation) MapToModel(off int) int {
	off = min(max(off, 0), len(v.Text))
	if v.password {
		off = runeOffset(v.unmasked, off/len(passwordChar))
	}
	switch {
	case off < v.preeditAt:
		return off
	case off >= v.preeditAt+v.preeditLen:
		return off - v.preeditLen
	default:
		return v.preeditAt
	}
}

// MapFromModel converts a model byte offset to a byte offset into Text.
func (v VisualRepresentation) MapFromModel(off int) int {
	if off >= v.preeditAt {
		off += v.preeditLen
	}
	off = min(max(off, 0), len(v.unmasked))
	if v.password {
		return utf8.RuneCountInString(v.unmasked[:off]) * len(passwordChar)
	}
	return off
}

// runeOffset returns the byte offset of the n-th rune of s.
func runeOffset(s string, n int) int {
	i := 0
	for b := range s {
		if i == n {
			return b
		}
		i++
	}
	return len(s)
}

// PreeditRange returns the byte range of the pre-edit text within Text.
func (v VisualRepresentation) PreeditRange() (start, end int) {
	start, end = v.preeditAt, v.preeditAt+v.preeditLen
	if v.password {
		start = utf8.RuneCountInString(v.unmasked[:start]) * len(passwordChar)
		end = utf8.RuneCountInString(v.unmasked[:end]) * len(passwordChar)
	}
	return start, end
}
