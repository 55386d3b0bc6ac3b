package ggui

import "testing"

func TestPhysicalSizeToLogical(t *testing.T) {
	tests := []struct {
		name  string
		size  PhysicalSize
		scale float32
		want  Size
	}{
		{"unit scale", PhysicalSize{800, 600}, 1, Size{800, 600}},
		{"hidpi", PhysicalSize{1600, 1200}, 2, Size{800, 600}},
		{"zero scale treated as one", PhysicalSize{10, 20}, 0, Size{10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.size.ToLogical(tt.scale); got != tt.want {
				t.Errorf("ToLogical(%v) = %v, want %v", tt.scale, got, tt.want)
			}
		})
	}
}

func TestSizeToPhysicalRoundsUp(t *testing.T) {
	got := Size{Width: 10.2, Height: 3}.ToPhysical(1.5)
	want := PhysicalSize{Width: 16, Height: 5}
	if got != want {
		t.Errorf("ToPhysical = %v, want %v", got, want)
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if got, want := a.Intersect(b), (Rect{X: 5, Y: 5, Width: 5, Height: 5}); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	c := Rect{X: 20, Y: 20, Width: 1, Height: 1}
	if got := a.Intersect(c); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %v, want empty", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	if !r.Contains(Point{1, 1}) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(Point{3, 2}) {
		t.Error("right edge should be outside")
	}
}

func TestRectInsetClampsToZero(t *testing.T) {
	r := Rect{Width: 4, Height: 4}.Inset(3)
	if r.Width != 0 || r.Height != 0 {
		t.Errorf("Inset(3) of 4x4 = %v, want zero size", r)
	}
}
