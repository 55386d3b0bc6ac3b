package textlayout

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/canvas"
	"github.com/gogpu/ggui/item"
)

// DefaultFontSize is the font size in logical pixels used when a request
// does not set one.
const DefaultFontSize = 12

// DefaultFamily is the family of the built-in fonts.
const DefaultFamily = "Go"

// ErrEmptyFontData is returned when registering a font from no bytes.
var ErrEmptyFontData = errors.New("textlayout: empty font data")

// fontFace is one parsed font file.
type fontFace struct {
	family string
	weight int
	gt     *font.Font
	sf     *sfnt.Font

	mu       sync.Mutex
	buf      sfnt.Buffer
	outlines map[outlineKey]*canvas.Path
}

type outlineKey struct {
	gid  sfnt.GlyphIndex
	ppem fixed.Int26_6
}

func parseFace(data []byte) (*fontFace, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	// sfnt keeps a reference to the bytes.
	data = bytes.Clone(data)

	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("textlayout: parse font: %w", err)
	}
	gtFace, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("textlayout: parse font for shaping: %w", err)
	}

	family, err := sf.Name(nil, sfnt.NameIDFamily)
	if err != nil || family == "" {
		family = "unknown"
	}
	subfamily, _ := sf.Name(nil, sfnt.NameIDSubfamily)

	return &fontFace{
		family:   family,
		weight:   weightFromSubfamily(subfamily),
		gt:       gtFace.Font,
		sf:       sf,
		outlines: make(map[outlineKey]*canvas.Path),
	}, nil
}

// weightFromSubfamily maps a style name such as "Bold Italic" to a CSS
// weight.
func weightFromSubfamily(s string) int {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "thin"):
		return 100
	case strings.Contains(s, "extralight"), strings.Contains(s, "ultralight"):
		return 200
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		return 600
	case strings.Contains(s, "extrabold"), strings.Contains(s, "ultrabold"):
		return 800
	case strings.Contains(s, "black"), strings.Contains(s, "heavy"):
		return 900
	case strings.Contains(s, "light"):
		return 300
	case strings.Contains(s, "medium"):
		return 500
	case strings.Contains(s, "bold"):
		return 700
	}
	return 400
}

type lineMetrics struct {
	ascent, descent float32
}

func (f *fontFace) metrics(ppem fixed.Int26_6) lineMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.sf.Metrics(&f.buf, ppem, xfont.HintingNone)
	if err != nil {
		// Fall back to typical Latin proportions.
		size := float32(ppem) / 64
		return lineMetrics{ascent: size * 0.9, descent: size * 0.25}
	}
	return lineMetrics{
		ascent:  float32(m.Ascent) / 64,
		descent: float32(m.Descent) / 64,
	}
}

// outline returns the glyph outline at ppem with the origin on the
// baseline, y pointing down. Glyphs without outlines return nil.
func (f *fontFace) outline(gid sfnt.GlyphIndex, ppem fixed.Int26_6) *canvas.Path {
	key := outlineKey{gid: gid, ppem: ppem}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.outlines[key]; ok {
		return p
	}

	segments, err := f.sf.LoadGlyph(&f.buf, gid, ppem, nil)
	var p *canvas.Path
	if err == nil && len(segments) > 0 {
		p = canvas.NewPath()
		pt := func(v fixed.Point26_6) (float32, float32) {
			return float32(v.X) / 64, float32(v.Y) / 64
		}
		for _, seg := range segments {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				x, y := pt(seg.Args[0])
				p.MoveTo(x, y)
			case sfnt.SegmentOpLineTo:
				x, y := pt(seg.Args[0])
				p.LineTo(x, y)
			case sfnt.SegmentOpQuadTo:
				cx, cy := pt(seg.Args[0])
				x, y := pt(seg.Args[1])
				p.QuadTo(cx, cy, x, y)
			case sfnt.SegmentOpCubeTo:
				c1x, c1y := pt(seg.Args[0])
				c2x, c2y := pt(seg.Args[1])
				x, y := pt(seg.Args[2])
				p.CubicTo(c1x, c1y, c2x, c2y, x, y)
			}
		}
	}
	f.outlines[key] = p
	return p
}

// FontRegistry holds the fonts available to text layout.
//
// A new registry contains the Go font family (regular and bold). It is safe
// for concurrent use.
type FontRegistry struct {
	mu          sync.RWMutex
	families    map[string][]*fontFace
	defaultFace *fontFace

	shapers sync.Pool
}

// NewFontRegistry creates a registry holding the built-in Go fonts.
func NewFontRegistry() *FontRegistry {
	r := &FontRegistry{
		families: make(map[string][]*fontFace),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
	for _, data := range [][]byte{goregular.TTF, gobold.TTF} {
		f, err := parseFace(data)
		if err != nil {
			panic("textlayout: built-in font: " + err.Error())
		}
		r.add(f)
	}
	r.defaultFace = r.families[strings.ToLower(DefaultFamily)][0]
	return r
}

var defaultRegistry = sync.OnceValue(NewFontRegistry)

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *FontRegistry { return defaultRegistry() }

func (r *FontRegistry) add(f *fontFace) {
	key := strings.ToLower(f.family)
	r.families[key] = append(r.families[key], f)
}

// RegisterFontFromMemory parses a TrueType or OpenType font and makes its
// family available.
func (r *FontRegistry) RegisterFontFromMemory(data []byte) error {
	f, err := parseFace(data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.add(f)
	r.mu.Unlock()
	ggui.Logger().Debug("textlayout: font registered", "family", f.family, "weight", f.weight)
	return nil
}

// RegisterFontFromPath reads a font file and registers it.
func (r *FontRegistry) RegisterFontFromPath(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("textlayout: read font: %w", err)
	}
	return r.RegisterFontFromMemory(data)
}

// Families returns the registered family names.
func (r *FontRegistry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.families))
	for _, faces := range r.families {
		out = append(out, faces[0].family)
	}
	return out
}

// lookup returns the face closest to req. Unknown families resolve to the
// default family.
func (r *FontRegistry) lookup(req item.FontRequest) *fontFace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	faces := r.families[strings.ToLower(req.Family)]
	if len(faces) == 0 {
		faces = r.families[strings.ToLower(DefaultFamily)]
	}
	weight := req.Weight
	if weight == 0 {
		weight = 400
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if abs(f.weight-weight) < abs(best.weight-weight) {
			best = f
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
