package ggui

import (
	"fmt"
	"image/color"
)

// Color is an sRGB color with straight (non-premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with the given alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func Hex(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var c Color
	c.A = 255
	var err error
	switch len(s) {
	case 3:
		var r, g, b uint8
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		c.R, c.G, c.B = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return Color{}, fmt.Errorf("ggui: invalid hex color %q", s)
	}
	if err != nil {
		return Color{}, fmt.Errorf("ggui: invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// RGBA implements color.Color. The returned components are premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// WithAlpha returns c with its alpha multiplied by f (0..1).
func (c Color) WithAlpha(f float32) Color {
	f = clamp01(f)
	c.A = uint8(float32(c.A)*f + 0.5)
	return c
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool { return c.A == 0 }

// IsOpaque reports whether the color has full alpha.
func (c Color) IsOpaque() bool { return c.A == 255 }

// String returns the color in #rrggbbaa form.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
