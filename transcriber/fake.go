package transcriber

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Fake returns a fixed transcript after an optional delay. Used by the
// -test mode and by tests outside this package.
type Fake struct {
	text  string
	err   error
	delay time.Duration

	mu    sync.Mutex
	calls []int
}

func NewFake(text string, err error, delay time.Duration) *Fake {
	return &Fake{text: text, err: err, delay: delay}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Transcribe(ctx context.Context, pcm []byte) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, len(pcm)/2)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", fmt.Errorf("fake transcriber error: %w", f.err)
	}
	return f.text, nil
}

// Calls returns the sample count of every attempt so far.
func (f *Fake) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}
