// Package visual turns per-block audio energy into the parameters the
// indicator is drawn from.
package visual

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

type Mode int

const (
	ModeDots Mode = iota
	ModeWave
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeDots:
		return "dots"
	case ModeWave:
		return "wave"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names printed by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dots":
		return ModeDots, nil
	case "wave", "waveform":
		return ModeWave, nil
	}
	return 0, fmt.Errorf("unknown visual mode %q (dots|wave)", s)
}

// Params is one frame's worth of indicator state.
type Params struct {
	Mode      Mode
	Frame     int
	Recording bool
	Levels    [DotCount]float64 // ModeDots
	Points    []float64         // ModeWave, each in [0, 1]
}

type variant interface {
	update(energy float64, recording bool)
	tick(p *Params)
	reset()
}

// Feed is the VisualFeed. Update is called from the audio thread and
// Tick from the render loop; a mutex keeps each frame consistent.
type Feed struct {
	mu        sync.Mutex
	mode      Mode
	variants  [modeCount]variant
	recording bool
}

func NewFeed(mode Mode) *Feed {
	return newFeed(mode, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func newFeed(mode Mode, rng *rand.Rand) *Feed {
	if mode < 0 || mode >= modeCount {
		mode = ModeDots
	}
	f := &Feed{mode: mode}
	f.variants[ModeDots] = &dots{rng: rng}
	f.variants[ModeWave] = newWave()
	return f
}

func (f *Feed) Update(energy float64, recording bool) {
	f.mu.Lock()
	f.recording = recording
	f.variants[f.mode].update(energy, recording)
	f.mu.Unlock()
}

// Tick advances the active variant by one render frame.
func (f *Feed) Tick(frame int) Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := Params{Mode: f.mode, Frame: frame, Recording: f.recording}
	f.variants[f.mode].tick(&p)
	return p
}

// Cycle switches to the next variant. Both variants start from a clean
// state afterwards.
func (f *Feed) Cycle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = (f.mode + 1) % modeCount
	for _, v := range f.variants {
		v.reset()
	}
}

func (f *Feed) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}
