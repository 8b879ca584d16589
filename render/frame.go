// Package render turns visual parameters and controller state into draw
// primitives at a fixed rate.
package render

import "chatty/dictation"

// Canvas size the geometry is laid out for. Surfaces scale as needed.
const (
	Width  = 120
	Height = 40
)

type Point struct {
	X, Y float64
}

// Circle is filled when Fill is set and stroked when Outline is set.
type Circle struct {
	Center  Point
	Radius  float64
	Fill    string
	Outline string
}

type Polyline struct {
	Points []Point
	Color  string
}

// Frame is everything a Surface needs to paint one tick.
type Frame struct {
	Seq     int
	State   dictation.State
	Circles []Circle
	Lines   []Polyline
	Status  dictation.Status
	Text    string // empty unless a transcript is visible
}

// Surface receives frames. Draw must return without waiting on the
// consumer.
type Surface interface {
	Draw(f Frame)
}

// Mailbox is a Surface that keeps only the newest undelivered frame.
type Mailbox struct {
	ch chan Frame
}

func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan Frame, 1)}
}

func (m *Mailbox) Draw(f Frame) {
	for {
		select {
		case m.ch <- f:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// Frames delivers the latest frame whenever the consumer is ready.
func (m *Mailbox) Frames() <-chan Frame { return m.ch }
