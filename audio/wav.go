package audio

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes mono float samples as 16-bit PCM WAV.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		v := math.Round(float64(s) * math.MaxInt16)
		data[i] = int(math.Max(math.MinInt16, math.Min(v, math.MaxInt16)))
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}
