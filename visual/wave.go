package visual

import "math"

const (
	waveCapacity = 60
	waveVisible  = 30
	waveScale    = 50

	flowAmplitude = 0.05
	flowRate      = 0.3
)

// wave keeps the last waveCapacity normalized energies in a ring.
type wave struct {
	ring  [waveCapacity]float64
	head  int // next write position
	count int
}

func newWave() *wave { return &wave{} }

func (w *wave) update(energy float64, _ bool) {
	v := math.Max(0, math.Min(energy/waveScale, 1))
	w.ring[w.head] = v
	w.head = (w.head + 1) % waveCapacity
	if w.count < waveCapacity {
		w.count++
	}
}

func (w *wave) tick(p *Params) {
	n := min(w.count, waveVisible)
	pts := make([]float64, n)
	start := w.head - n
	for i := range n {
		v := w.ring[(start+i+waveCapacity)%waveCapacity]
		v += math.Sin(float64(p.Frame+i)*flowRate) * flowAmplitude
		pts[i] = math.Max(0, math.Min(v, 1))
	}
	p.Points = pts
}

func (w *wave) reset() {
	*w = wave{}
}
