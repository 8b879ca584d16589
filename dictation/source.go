package dictation

import (
	"fmt"
	"math"

	"chatty/audio"
)

// EnergyGain scales block RMS into the range the visual feed expects
// (speech sits roughly between 2 and 40).
const EnergyGain = 200

// VisualSink receives one energy update per audio block.
type VisualSink interface {
	Update(energy float64, recording bool)
}

// Source is the AudioSource: the per-block entry point from the audio
// backend. OnBlock runs on the backend's real-time thread.
type Source struct {
	buf  *sampleBuffer
	sink VisualSink
}

// Energy returns sqrt(mean(s²)) × EnergyGain.
func Energy(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		f := float64(s)
		sum += f * f
	}
	return math.Sqrt(sum/float64(len(samples))) * EnergyGain
}

// OnBlock buffers the block if recording and always forwards its energy.
func (s *Source) OnBlock(samples []float32) {
	energy := Energy(samples)
	recording := s.buf.appendBlock(samples)
	if s.sink != nil {
		s.sink.Update(energy, recording)
	}
}

// Start attaches the source to a capture device and starts the stream.
// On failure the callback is detached again and the error matches ErrDevice.
func (s *Source) Start(capture audio.CaptureDevice) error {
	capture.SetCallback(s.OnBlock)
	if err := capture.Start(); err != nil {
		capture.ClearCallback()
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}
	return nil
}
