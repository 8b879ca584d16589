package dictation

import "sync"

// reserveSamples is the capacity a fresh buffer is grown to on entering
// Recording: 30s at 16kHz, so the audio callback rarely reallocates.
const reserveSamples = 30 * 16000

// sampleBuffer is the SampleBuffer: it accumulates only between begin and
// take. take hands the backing slice over and keeps nothing, so the
// transcription goroutine owns its samples without further locking.
type sampleBuffer struct {
	mu      sync.Mutex
	active  bool
	samples []float32
}

// begin clears the buffer and starts accumulating. Called from the
// controller goroutine, so the allocation never lands on the audio thread.
func (b *sampleBuffer) begin() {
	buf := make([]float32, 0, reserveSamples)
	b.mu.Lock()
	b.samples = buf
	b.active = true
	b.mu.Unlock()
}

// appendBlock copies block into the buffer if accumulating and reports
// whether it did.
func (b *sampleBuffer) appendBlock(block []float32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return false
	}
	b.samples = append(b.samples, block...)
	return true
}

// take stops accumulation and transfers the samples to the caller.
func (b *sampleBuffer) take() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.samples
	b.samples = nil
	b.active = false
	return out
}

func (b *sampleBuffer) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

func (b *sampleBuffer) recording() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}
