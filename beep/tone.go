package beep

import "math"

// tick is a decaying mono sine burst.
func tick(rate int, freq, duration, volume, decay float64) []int16 {
	n := int(float64(rate) * duration)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

func doubleBeep(rate int, freq, beepDur, gapDur, volume, decay float64) []int16 {
	b := tick(rate, freq, beepDur, volume, decay)
	gap := make([]int16, int(float64(rate)*gapDur))
	out := make([]int16, 0, 2*len(b)+len(gap))
	out = append(out, b...)
	out = append(out, gap...)
	return append(out, b...)
}

func toBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}
