package render

import "testing"

func TestRasterizeFilledCircle(t *testing.T) {
	f := Frame{Circles: []Circle{{Center: Point{X: 60, Y: 20}, Radius: 6, Fill: "#00ff88"}}}
	r := Rasterize(f, Width, Height)

	if got := r.At(60, 20); got != "#00ff88" {
		t.Fatalf("center = %q", got)
	}
	if got := r.At(60, 30); got != "" {
		t.Fatalf("outside = %q", got)
	}
	if got := r.At(-1, 0); got != "" {
		t.Fatalf("out of range = %q", got)
	}
}

func TestRasterizeOutlineLeavesInsideEmpty(t *testing.T) {
	f := Frame{Circles: []Circle{{Center: Point{X: 60, Y: 20}, Radius: 8, Outline: "#666666"}}}
	r := Rasterize(f, Width, Height)

	if got := r.At(60, 20); got != "" {
		t.Fatalf("center of ring = %q", got)
	}
	if got := r.At(68, 20); got != "#666666" {
		t.Fatalf("ring edge = %q", got)
	}
}

func TestRasterizeDrawOrder(t *testing.T) {
	f := Frame{Circles: []Circle{
		{Center: Point{X: 30, Y: 20}, Radius: 5, Outline: "#111111"},
		{Center: Point{X: 30, Y: 20}, Radius: 4, Fill: "#222222"},
	}}
	r := Rasterize(f, Width, Height)
	if got := r.At(30, 20); got != "#222222" {
		t.Fatalf("disc not painted over glow: %q", got)
	}
}

func TestRasterizePolylineIsContinuous(t *testing.T) {
	f := Frame{Lines: []Polyline{{
		Color:  "#ffaa00",
		Points: []Point{{X: 6, Y: 34}, {X: 114, Y: 34}},
	}}}
	r := Rasterize(f, Width/2, Height/2)
	for x := 3; x < 57; x++ {
		if r.At(x, 17) != "#ffaa00" {
			t.Fatalf("gap at column %d", x)
		}
	}
}
