//go:build gui

package gui

import (
	"image/color"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"chatty/render"
)

// Pixel grid of the indicator, each pixel drawn as a cellSize square.
const (
	gridCols = render.Width / 2
	gridRows = render.Height / 2
	cellSize = 4
	textRows = 3
	rowH     = 18
)

var background = color.RGBA{18, 18, 18, 255}

// Indicator paints the latest render.Frame.
type Indicator struct {
	widget.BaseWidget
	mu    sync.Mutex
	frame render.Frame
}

func NewIndicator() *Indicator {
	i := &Indicator{}
	i.ExtendBaseWidget(i)
	return i
}

// SetFrame stores f; the caller refreshes on the fyne goroutine.
func (i *Indicator) SetFrame(f render.Frame) {
	i.mu.Lock()
	i.frame = f
	i.mu.Unlock()
}

func (i *Indicator) MinSize() fyne.Size {
	return fyne.NewSize(gridCols*cellSize, gridRows*cellSize+(1+textRows)*rowH)
}

func (i *Indicator) CreateRenderer() fyne.WidgetRenderer {
	r := &indicatorRenderer{
		ind:    i,
		rects:  make([]*canvas.Rectangle, gridCols*gridRows),
		status: canvas.NewText("", color.White),
		text:   widget.NewLabel(""),
	}
	for k := range r.rects {
		r.rects[k] = canvas.NewRectangle(background)
	}
	r.status.Alignment = fyne.TextAlignCenter
	r.status.TextStyle = fyne.TextStyle{Bold: true}
	r.text.Wrapping = fyne.TextWrapWord
	r.text.Alignment = fyne.TextAlignCenter
	return r
}

type indicatorRenderer struct {
	ind    *Indicator
	rects  []*canvas.Rectangle
	status *canvas.Text
	text   *widget.Label
}

func (r *indicatorRenderer) Layout(size fyne.Size) {
	cellW := size.Width / gridCols
	for y := 0; y < gridRows; y++ {
		for x := 0; x < gridCols; x++ {
			rect := r.rects[y*gridCols+x]
			rect.Move(fyne.NewPos(float32(x)*cellW, float32(y*cellSize)))
			rect.Resize(fyne.NewSize(cellW, cellSize))
		}
	}
	top := float32(gridRows * cellSize)
	r.status.Move(fyne.NewPos(0, top))
	r.status.Resize(fyne.NewSize(size.Width, rowH))
	r.text.Move(fyne.NewPos(0, top+rowH))
	r.text.Resize(fyne.NewSize(size.Width, size.Height-top-rowH))
}

func (r *indicatorRenderer) MinSize() fyne.Size {
	return r.ind.MinSize()
}

func (r *indicatorRenderer) Refresh() {
	r.ind.mu.Lock()
	f := r.ind.frame
	r.ind.mu.Unlock()

	raster := render.Rasterize(f, gridCols, gridRows)
	for k, rect := range r.rects {
		c := parseHex(raster.Pix[k])
		if rect.FillColor != c {
			rect.FillColor = c
			rect.Refresh()
		}
	}

	r.status.Text = f.Status.Text
	r.status.Color = parseHex(f.Status.Color)
	r.status.Refresh()
	r.text.SetText(f.Text)
}

func (r *indicatorRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(r.rects)+2)
	for _, rect := range r.rects {
		objs = append(objs, rect)
	}
	return append(objs, r.status, r.text)
}

func (r *indicatorRenderer) Destroy() {}

// parseHex turns "#rrggbb" into a color; anything else is the background.
func parseHex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return background
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return background
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}
