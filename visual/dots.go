package visual

import "math/rand/v2"

const (
	DotCount = 4

	dotCap       = 40
	dotSmoothing = 0.15
	idleDrift    = 2
)

type dots struct {
	rng    *rand.Rand
	level  [DotCount]float64
	target [DotCount]float64
}

func (d *dots) update(energy float64, recording bool) {
	if recording {
		base := min(energy, dotCap)
		for i := range d.target {
			d.target[i] = base * (0.7 + 0.6*d.rng.Float64())
		}
		return
	}
	for i := range d.target {
		d.target[i] = idleDrift * d.rng.Float64()
	}
}

func (d *dots) tick(p *Params) {
	for i := range d.level {
		d.level[i] += (d.target[i] - d.level[i]) * dotSmoothing
	}
	p.Levels = d.level
}

func (d *dots) reset() {
	d.level = [DotCount]float64{}
	d.target = [DotCount]float64{}
}
