package ggui

import "sort"

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Position float32 // 0.0 to 1.0
	Color    Color
}

// SortStops returns a copy of stops ordered by position.
func SortStops(stops []GradientStop) []GradientStop {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}
