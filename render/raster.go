package render

import "math"

// Raster is a Cols×Rows pixel grid over the Width×Height canvas. Each
// pixel holds a "#rrggbb" color or "" for background.
type Raster struct {
	Cols, Rows int
	Pix        []string
}

func (r *Raster) At(x, y int) string {
	if x < 0 || y < 0 || x >= r.Cols || y >= r.Rows {
		return ""
	}
	return r.Pix[y*r.Cols+x]
}

func (r *Raster) set(x, y int, c string) {
	if x < 0 || y < 0 || x >= r.Cols || y >= r.Rows {
		return
	}
	r.Pix[y*r.Cols+x] = c
}

// Rasterize paints the frame's circles and polylines at the given
// resolution, in draw order. Surfaces that cannot draw vectors (the
// terminal, the pixel-grid window) share it.
func Rasterize(f Frame, cols, rows int) *Raster {
	r := &Raster{Cols: cols, Rows: rows, Pix: make([]string, cols*rows)}
	if cols <= 0 || rows <= 0 {
		return r
	}
	sx := float64(Width) / float64(cols)
	sy := float64(Height) / float64(rows)
	stroke := math.Max(sx, sy) * 0.6

	for _, c := range f.Circles {
		x0 := int((c.Center.X - c.Radius - stroke) / sx)
		x1 := int((c.Center.X+c.Radius+stroke)/sx) + 1
		y0 := int((c.Center.Y - c.Radius - stroke) / sy)
		y1 := int((c.Center.Y+c.Radius+stroke)/sy) + 1
		for py := y0; py <= y1; py++ {
			for px := x0; px <= x1; px++ {
				dx := (float64(px)+0.5)*sx - c.Center.X
				dy := (float64(py)+0.5)*sy - c.Center.Y
				d := math.Hypot(dx, dy)
				switch {
				case c.Fill != "" && d <= c.Radius:
					r.set(px, py, c.Fill)
				case c.Outline != "" && math.Abs(d-c.Radius) <= stroke:
					r.set(px, py, c.Outline)
				}
			}
		}
	}

	step := math.Min(sx, sy) / 2
	for _, l := range f.Lines {
		if len(l.Points) == 1 {
			p := l.Points[0]
			r.set(int(p.X/sx), int(p.Y/sy), l.Color)
		}
		for i := 1; i < len(l.Points); i++ {
			a, b := l.Points[i-1], l.Points[i]
			n := int(math.Hypot(b.X-a.X, b.Y-a.Y)/step) + 1
			for k := 0; k <= n; k++ {
				t := float64(k) / float64(n)
				x := a.X + (b.X-a.X)*t
				y := a.Y + (b.Y-a.Y)*t
				r.set(int(x/sx), int(y/sy), l.Color)
			}
		}
	}
	return r
}
