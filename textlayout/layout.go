package textlayout

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/item"
)

const ellipsis = "…"

// LayoutOptions constrain a layout. Sizes are physical pixels; zero means
// unbounded.
type LayoutOptions struct {
	MaxWidth  float32
	MaxHeight float32
	HAlign    item.HorizontalAlignment
	VAlign    item.VerticalAlignment
	Wrap      item.TextWrap
	Overflow  item.TextOverflow
}

type glyph struct {
	id      sfnt.GlyphIndex
	pen     float32 // pen position in the paragraph
	x       float32 // position in the line
	dx, dy  float32 // shaping offsets
	advance float32
	start   int // byte range in the layout text
	end     int
}

type line struct {
	start, end int
	x, y       float32
	width      float32
	glyphs     []glyph
}

// Layout is shaped, wrapped and aligned text. Coordinates are physical
// pixels relative to the layout's top-left corner.
type Layout struct {
	text       string
	face       *fontFace
	ppem       fixed.Int26_6
	ascent     float32
	lineHeight float32
	lines      []line
	width      float32 // widest line
	boxWidth   float32

	utf16Prefix []int
}

// CreateLayout shapes text with the font described by req at the given
// scale factor. It also returns where the layout's top-left corner sits
// inside a box of opts.MaxWidth by opts.MaxHeight.
func (r *FontRegistry) CreateLayout(req item.FontRequest, scale float32, text string, opts LayoutOptions) (*Layout, ggui.Point) {
	if scale <= 0 {
		scale = 1
	}
	size := req.PixelSize
	if size <= 0 {
		size = DefaultFontSize
	}
	face := r.lookup(req)
	ppem := fixed.Int26_6(size * scale * 64)
	m := face.metrics(ppem)

	l := &Layout{
		text:       text,
		face:       face,
		ppem:       ppem,
		ascent:     m.ascent,
		lineHeight: m.ascent + m.descent,
	}
	l.utf16Prefix = utf16Prefix(text)

	wrap := opts.Wrap
	if opts.MaxWidth <= 0 {
		wrap = item.NoWrap
	}
	lang := shapingLanguage(req.Locale)

	gtFace := font.NewFace(face.gt)
	offset := 0
	for _, para := range strings.Split(text, "\n") {
		glyphs := r.shape(gtFace, ppem, para, offset, lang)
		l.appendLines(glyphs, offset, offset+len(para), wrap, opts.MaxWidth)
		offset += len(para) + 1
	}

	if opts.Overflow == item.OverflowElide && opts.MaxWidth > 0 {
		l.elide(r, gtFace, opts.MaxWidth, lang)
	}

	for i := range l.lines {
		l.width = max(l.width, l.lines[i].width)
	}
	l.boxWidth = l.width
	if opts.MaxWidth > 0 {
		l.boxWidth = opts.MaxWidth
	}
	for i := range l.lines {
		ln := &l.lines[i]
		ln.y = float32(i) * l.lineHeight
		switch opts.HAlign {
		case item.AlignCenter:
			ln.x = (l.boxWidth - ln.width) / 2
		case item.AlignRight:
			ln.x = l.boxWidth - ln.width
		}
	}

	var topLeft ggui.Point
	if opts.MaxHeight > 0 {
		switch opts.VAlign {
		case item.AlignVCenter:
			topLeft.Y = (opts.MaxHeight - l.Height()) / 2
		case item.AlignBottom:
			topLeft.Y = opts.MaxHeight - l.Height()
		}
	}
	return l, topLeft
}

// shapingLanguage canonicalizes a BCP 47 locale for the shaper.
func shapingLanguage(locale string) language.Language {
	tag, err := xlanguage.Parse(locale)
	if err != nil || tag == xlanguage.Und {
		return language.NewLanguage("en")
	}
	base, _ := tag.Base()
	return language.NewLanguage(base.String())
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// shape runs HarfBuzz over one paragraph. Byte ranges are offset by base.
func (r *FontRegistry) shape(face *font.Face, ppem fixed.Int26_6, para string, base int, lang language.Language) []glyph {
	if para == "" {
		return nil
	}
	runes := []rune(para)
	runeByte := make([]int, len(runes)+1)
	i := 0
	for b := range para {
		runeByte[i] = b
		i++
	}
	runeByte[len(runes)] = len(para)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      ppem,
		Script:    detectScript(runes),
		Language:  lang,
	}
	shaper := r.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	r.shapers.Put(shaper)

	glyphs := make([]glyph, len(out.Glyphs))
	var pen float32
	for i, g := range out.Glyphs {
		ri := min(max(g.TextIndex(), 0), len(runes))
		glyphs[i] = glyph{
			id:      sfnt.GlyphIndex(g.GlyphID),
			pen:     pen,
			dx:      float32(g.XOffset) / 64,
			dy:      -float32(g.YOffset) / 64,
			advance: float32(g.Advance) / 64,
			start:   base + runeByte[ri],
		}
		pen += glyphs[i].advance
	}
	// A cluster ends where the next one starts.
	end := base + len(para)
	for i := len(glyphs) - 1; i >= 0; i-- {
		glyphs[i].end = end
		if i > 0 && glyphs[i-1].start != glyphs[i].start {
			end = glyphs[i].start
		}
	}
	return glyphs
}

func (l *Layout) isSpace(g glyph) bool {
	r, _ := utf8.DecodeRuneInString(l.text[g.start:])
	return unicode.IsSpace(r)
}

// appendLines breaks one paragraph's glyphs into lines.
func (l *Layout) appendLines(glyphs []glyph, start, end int, wrap item.TextWrap, maxWidth float32) {
	if len(glyphs) == 0 {
		l.lines = append(l.lines, line{start: start, end: end})
		return
	}

	lineStart, lineByte := 0, start
	lastBreak := -1
	for i := 0; i < len(glyphs); i++ {
		g := glyphs[i]
		x0 := glyphs[lineStart].pen
		if wrap != item.NoWrap && i > lineStart && !l.isSpace(g) && g.pen+g.advance-x0 > maxWidth {
			brk := i
			if wrap == item.WordWrap && lastBreak >= lineStart {
				brk = lastBreak + 1
			}
			// Keep whole clusters together.
			for brk > lineStart+1 && glyphs[brk].start == glyphs[brk-1].start {
				brk--
			}
			l.lines = append(l.lines, l.makeLine(glyphs[lineStart:brk], lineByte, glyphs[brk].start))
			lineStart, lineByte = brk, glyphs[brk].start
			lastBreak = -1
		}
		if l.isSpace(g) {
			lastBreak = i
		}
	}
	l.lines = append(l.lines, l.makeLine(glyphs[lineStart:], lineByte, end))
}

func (l *Layout) makeLine(glyphs []glyph, start, end int) line {
	ln := line{start: start, end: end, glyphs: make([]glyph, len(glyphs))}
	x0 := glyphs[0].pen
	for i, g := range glyphs {
		g.x = g.pen - x0
		ln.glyphs[i] = g
	}
	// Trailing whitespace does not count towards alignment.
	n := len(ln.glyphs)
	for n > 0 && l.isSpace(ln.glyphs[n-1]) {
		n--
	}
	if n > 0 {
		last := ln.glyphs[n-1]
		ln.width = last.x + last.advance
	}
	return ln
}

// elide truncates lines wider than maxWidth and appends an ellipsis.
func (l *Layout) elide(r *FontRegistry, face *font.Face, maxWidth float32, lang language.Language) {
	dots := r.shape(face, l.ppem, ellipsis, 0, lang)
	var dotsWidth float32
	for _, g := range dots {
		dotsWidth += g.advance
	}
	for i := range l.lines {
		ln := &l.lines[i]
		if ln.width <= maxWidth {
			continue
		}
		n := len(ln.glyphs)
		for n > 0 && ln.glyphs[n-1].x+ln.glyphs[n-1].advance+dotsWidth > maxWidth {
			n--
		}
		ln.glyphs = ln.glyphs[:n]
		x := float32(0)
		if n > 0 {
			x = ln.glyphs[n-1].x + ln.glyphs[n-1].advance
		}
		for _, g := range dots {
			g.x = x + g.pen
			g.start, g.end = ln.end, ln.end
			ln.glyphs = append(ln.glyphs, g)
		}
		ln.width = x + dotsWidth
	}
}

func utf16Prefix(s string) []int {
	prefix := make([]int, len(s)+1)
	count := 0
	last := 0
	for i, r := range s {
		for j := last; j < i; j++ {
			prefix[j] = count
		}
		prefix[i] = count
		count += utf16.RuneLen(r)
		last = i + 1
	}
	for j := last; j < len(s); j++ {
		prefix[j] = count
	}
	prefix[len(s)] = count
	return prefix
}

// Text returns the laid out text.
func (l *Layout) Text() string { return l.text }

// LineCount returns the number of lines.
func (l *Layout) LineCount() int { return len(l.lines) }

// LineHeight returns the distance between baselines.
func (l *Layout) LineHeight() float32 { return l.lineHeight }

// MaxIntrinsicWidth returns the width of the widest line.
func (l *Layout) MaxIntrinsicWidth() float32 { return l.width }

// Height returns the height of all lines.
func (l *Layout) Height() float32 { return float32(len(l.lines)) * l.lineHeight }

func (l *Layout) lineAtY(y float32) int {
	if len(l.lines) == 0 || l.lineHeight <= 0 {
		return 0
	}
	i := int(math.Floor(float64(y / l.lineHeight)))
	return min(max(i, 0), len(l.lines)-1)
}

// GlyphPositionAtCoordinate returns the UTF-16 index of the caret position
// closest to (x, y). Coordinates above or below the text clamp to the first
// or last line.
func (l *Layout) GlyphPositionAtCoordinate(x, y float32) int {
	if len(l.lines) == 0 {
		return 0
	}
	ln := l.lines[l.lineAtY(y)]
	for _, g := range ln.glyphs {
		if x < ln.x+g.x+g.advance/2 {
			return l.utf16Prefix[g.start]
		}
	}
	end := ln.end
	// A soft-wrapped line ends before its trailing space.
	if n := len(ln.glyphs); n > 0 && end < len(l.text) && l.text[end] != '\n' && l.isSpace(ln.glyphs[n-1]) {
		end = ln.glyphs[n-1].start
	}
	return l.utf16Prefix[end]
}

// CursorRect returns the caret rectangle before the given byte offset.
func (l *Layout) CursorRect(byteOffset int, width float32) ggui.Rect {
	byteOffset = min(max(byteOffset, 0), len(l.text))
	if len(l.lines) == 0 {
		return ggui.Rect{Width: width, Height: l.lineHeight}
	}
	li := 0
	for i, ln := range l.lines {
		if ln.start <= byteOffset {
			li = i
		}
	}
	ln := l.lines[li]
	x := ln.width
	if n := len(ln.glyphs); n > 0 {
		last := ln.glyphs[n-1]
		x = last.x + last.advance
	}
	for _, g := range ln.glyphs {
		if g.start >= byteOffset {
			x = g.x
			break
		}
	}
	return ggui.Rect{X: ln.x + x, Y: ln.y, Width: width, Height: l.lineHeight}
}

// Draw fills the glyph outlines with paint. origin is the layout's top-left
// corner in canvas coordinates.
func (l *Layout) Draw(c canvas.Canvas, origin ggui.Point, paint canvas.Paint) {
	if paint.IsTransparent() {
		return
	}
	clip := c.ClipBounds()
	path := canvas.NewPath()
	for _, ln := range l.lines {
		top := origin.Y + ln.y
		if top > clip.MaxY() || top+l.lineHeight < clip.Y {
			continue
		}
		baseline := top + l.ascent
		for _, g := range ln.glyphs {
			outline := l.face.outline(g.id, l.ppem)
			if outline == nil {
				continue
			}
			gx := origin.X + ln.x + g.x + g.dx
			outline.Transformed(1, 1, gx, baseline+g.dy).Walk(func(v canvas.Verb, pts []float32) {
				switch v {
				case canvas.VerbMoveTo:
					path.MoveTo(pts[0], pts[1])
				case canvas.VerbLineTo:
					path.LineTo(pts[0], pts[1])
				case canvas.VerbQuadTo:
					path.QuadTo(pts[0], pts[1], pts[2], pts[3])
				case canvas.VerbCubicTo:
					path.CubicTo(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5])
				case canvas.VerbClose:
					path.Close()
				}
			})
		}
	}
	if !path.IsEmpty() {
		c.FillPath(path, paint)
	}
}

// SelectionRects returns one rectangle per line covering the byte range
// [start, end).
func (l *Layout) SelectionRects(start, end int) []ggui.Rect {
	if start >= end {
		return nil
	}
	var rects []ggui.Rect
	for _, ln := range l.lines {
		if ln.end < start || ln.start > end {
			continue
		}
		x0, x1 := float32(-1), float32(0)
		for _, g := range ln.glyphs {
			if g.start >= start && g.start < end {
				if x0 < 0 {
					x0 = g.x
				}
				x1 = g.x + g.advance
			}
		}
		if x0 < 0 {
			continue
		}
		rects = append(rects, ggui.Rect{X: ln.x + x0, Y: ln.y, Width: x1 - x0, Height: l.lineHeight})
	}
	return rects
}
