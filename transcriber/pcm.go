package transcriber

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodePCM16 converts float samples in [-1, 1] to 16-bit little-endian
// PCM, clamping out-of-range values.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := float64(s) * math.MaxInt16
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}

// DecodePCM16 is the inverse of EncodePCM16, scaled by 1/32768.
func DecodePCM16(pcm []byte) ([]float32, error) {
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("pcm length %d is not a whole number of samples", len(pcm))
	}
	out := make([]float32, len(pcm)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		out[i] = float32(v) / 32768
	}
	return out, nil
}
