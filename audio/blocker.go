package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// blocker re-chunks whatever the backend delivers into BlockSize blocks.
// The block buffer is allocated once, so the real-time path never
// allocates.
type blocker struct {
	cb    atomic.Pointer[BlockCallback]
	block []float32
	n     int
}

func newBlocker(size int) *blocker {
	if size <= 0 {
		size = DefaultCapture().BlockSize
	}
	return &blocker{block: make([]float32, size)}
}

func (b *blocker) set(cb BlockCallback) { b.cb.Store(&cb) }
func (b *blocker) clear()               { b.cb.Store(nil) }

func (b *blocker) emit() {
	b.n = 0
	if cb := b.cb.Load(); cb != nil {
		(*cb)(b.block)
	}
}

func (b *blocker) writeFloat32(samples []float32) {
	for len(samples) > 0 {
		k := copy(b.block[b.n:], samples)
		b.n += k
		samples = samples[k:]
		if b.n == len(b.block) {
			b.emit()
		}
	}
}

// writeF32LE takes interleaved little-endian float32 frames and keeps
// only the first of channels.
func (b *blocker) writeF32LE(data []byte, channels int) {
	if channels < 1 {
		channels = 1
	}
	stride := 4 * channels
	for i := 0; i+4 <= len(data); i += stride {
		b.block[b.n] = math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))
		b.n++
		if b.n == len(b.block) {
			b.emit()
		}
	}
}
