//go:build gui

package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

// trayIcon draws a 22px green dot with a darker ring.
func trayIcon() []byte {
	const size = 22
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center + 0.5
			dy := float64(y) - center + 0.5
			dist := math.Sqrt(dx*dx + dy*dy)

			switch {
			case dist < 5:
				img.Set(x, y, color.RGBA{0, 255, 136, 255})
			case dist < 8:
				t := (dist - 5) / 3
				img.Set(x, y, color.RGBA{0, uint8(255 - t*120), uint8(136 - t*60), 255})
			case dist < 10:
				img.Set(x, y, color.RGBA{40, 40, 40, 255})
			}
		}
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}
