package ggui

import "math"

// Brush describes how an area is painted.
// This is a sealed interface: only types in this package implement it.
//
// A nil Brush paints nothing.
//
// Supported brush types:
//   - SolidBrush: a single color
//   - LinearGradient: colors interpolated along an angle
//   - RadialGradient: colors interpolated outward from the center
type Brush interface {
	brushMarker()

	// IsTransparent reports whether painting with the brush has no effect.
	IsTransparent() bool
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color Color
}

func (SolidBrush) brushMarker() {}

// IsTransparent implements Brush.
func (b SolidBrush) IsTransparent() bool { return b.Color.IsTransparent() }

// Solid creates a SolidBrush.
func Solid(c Color) SolidBrush {
	return SolidBrush{Color: c}
}

// LinearGradient interpolates colors along a line through the center of
// the painted area.
//
// Angle follows the CSS convention: 0 paints from bottom to top, 90 from
// left to right. It is expressed in degrees.
type LinearGradient struct {
	Angle float32
	Stops []GradientStop
}

func (LinearGradient) brushMarker() {}

// IsTransparent implements Brush.
func (g LinearGradient) IsTransparent() bool { return stopsTransparent(g.Stops) }

// Endpoints returns the gradient line for a w×h area, using the CSS rule
// that the corners of the area receive the first and last stop colors.
func (g LinearGradient) Endpoints(w, h float32) (start, end Point) {
	rad := float64(g.Angle) * math.Pi / 180
	dx := float32(math.Sin(rad))
	dy := float32(-math.Cos(rad))
	half := (float32(math.Abs(float64(w*dx))) + float32(math.Abs(float64(h*dy)))) / 2
	cx, cy := w/2, h/2
	start = Point{X: cx - dx*half, Y: cy - dy*half}
	end = Point{X: cx + dx*half, Y: cy + dy*half}
	return start, end
}

// RadialGradient interpolates colors in circles around the center of the
// painted area. The last stop lies on the circle through the corners.
type RadialGradient struct {
	Stops []GradientStop
}

func (RadialGradient) brushMarker() {}

// IsTransparent implements Brush.
func (g RadialGradient) IsTransparent() bool { return stopsTransparent(g.Stops) }

// Radius returns the radius that reaches the corners of a w×h area.
func (g RadialGradient) Radius(w, h float32) float32 {
	return float32(math.Hypot(float64(w), float64(h))) / 2
}

// IsBrushTransparent reports whether b paints nothing. A nil brush is
// transparent.
func IsBrushTransparent(b Brush) bool {
	return b == nil || b.IsTransparent()
}

// BrushColor returns a representative color for b: the color of a solid
// brush or the first stop of a gradient.
func BrushColor(b Brush) Color {
	switch b := b.(type) {
	case SolidBrush:
		return b.Color
	case LinearGradient:
		if len(b.Stops) > 0 {
			return b.Stops[0].Color
		}
	case RadialGradient:
		if len(b.Stops) > 0 {
			return b.Stops[0].Color
		}
	}
	return Transparent
}

// BrushWithAlpha multiplies the alpha of every color in b by f.
func BrushWithAlpha(b Brush, f float32) Brush {
	switch b := b.(type) {
	case SolidBrush:
		return SolidBrush{Color: b.Color.WithAlpha(f)}
	case LinearGradient:
		return LinearGradient{Angle: b.Angle, Stops: stopsWithAlpha(b.Stops, f)}
	case RadialGradient:
		return RadialGradient{Stops: stopsWithAlpha(b.Stops, f)}
	}
	return b
}

func stopsTransparent(stops []GradientStop) bool {
	for _, s := range stops {
		if !s.Color.IsTransparent() {
			return false
		}
	}
	return true
}

func stopsWithAlpha(stops []GradientStop, f float32) []GradientStop {
	out := make([]GradientStop, len(stops))
	for i, s := range stops {
		out[i] = GradientStop{Position: s.Position, Color: s.Color.WithAlpha(f)}
	}
	return out
}
