package render

import (
	"math"

	"chatty/dictation"
	"chatty/visual"
)

const (
	colorRecording  = "#00ff88"
	colorProcessing = "#ffaa00"
	colorIdle       = "#666666"

	dotSpacing = 20
	dotRadius  = 4
	waveMargin = 6
)

func stateColor(s dictation.State) string {
	switch s {
	case dictation.StateRecording:
		return colorRecording
	case dictation.StateProcessing:
		return colorProcessing
	default:
		return colorIdle
	}
}

// Compose lays out one frame on the Width×Height canvas.
func Compose(p visual.Params, snap dictation.Snapshot) Frame {
	f := Frame{
		Seq:    p.Frame,
		State:  snap.State,
		Status: snap.Status,
	}
	if snap.Display.Visible {
		f.Text = snap.Display.Text
	}
	recording := snap.State == dictation.StateRecording
	color := stateColor(snap.State)

	switch p.Mode {
	case visual.ModeWave:
		f.Lines = []Polyline{wavePolyline(p.Points, color)}
	default:
		f.Circles = dotCircles(p, recording, color)
	}
	return f
}

// dotCircles draws each dot as a glow ring one pixel out plus a filled disc.
func dotCircles(p visual.Params, recording bool, color string) []Circle {
	const centerY = Height / 2
	const startX = (Width - (visual.DotCount-1)*dotSpacing) / 2

	out := make([]Circle, 0, 2*visual.DotCount)
	for i, level := range p.Levels {
		x := float64(startX + i*dotSpacing)
		offset := math.Sin(float64(p.Frame+i*20)*0.2) * 1.5
		var r float64
		if recording {
			offset += level * 0.2
			r = dotRadius + level*0.08
		} else {
			r = dotRadius + math.Sin(float64(p.Frame+i*30)*0.1)*0.3
		}
		c := Point{X: x, Y: centerY + offset}
		out = append(out,
			Circle{Center: c, Radius: r + 1, Outline: color},
			Circle{Center: c, Radius: r, Fill: color},
		)
	}
	return out
}

// wavePolyline spreads the values across the canvas, newest on the right.
func wavePolyline(values []float64, color string) Polyline {
	line := Polyline{Color: color, Points: make([]Point, len(values))}
	if len(values) == 0 {
		return line
	}
	span := float64(Width - 2*waveMargin)
	step := span
	if len(values) > 1 {
		step = span / float64(len(values)-1)
	}
	base := float64(Height - waveMargin)
	amp := float64(Height - 2*waveMargin)
	for i, v := range values {
		x := float64(waveMargin) + float64(i)*step
		if len(values) == 1 {
			x = float64(Width - waveMargin)
		}
		line.Points[i] = Point{X: x, Y: base - v*amp}
	}
	return line
}
