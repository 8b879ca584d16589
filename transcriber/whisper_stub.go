//go:build !whisper

package transcriber

import (
	"context"
	"fmt"
)

// Whisper is unavailable in builds without the whisper tag.
type Whisper struct{}

func NewWhisper(modelPath, lang string) (*Whisper, error) {
	return nil, fmt.Errorf("%w: built without whisper support (rebuild with -tags whisper)", ErrUnavailable)
}

func (w *Whisper) Name() string { return "whisper" }

func (w *Whisper) Transcribe(context.Context, []byte) (string, error) {
	return "", ErrUnavailable
}

func (w *Whisper) Close() error { return nil }
