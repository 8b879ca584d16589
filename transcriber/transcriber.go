package transcriber

import (
	"context"
	"errors"
	"fmt"
)

// SampleRate is the only rate the engines accept.
const SampleRate = 16000

var (
	ErrNoModel     = errors.New("no speech model configured")
	ErrUnavailable = errors.New("speech engine unavailable")
)

// Engine turns one recording into text. pcm is mono 16-bit little-endian
// at SampleRate. A blank result is not an error.
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, pcm []byte) (string, error)
}

type unavailable struct {
	cause error
}

// Unavailable returns an engine that fails every attempt with cause.
// It stands in when the model could not be loaded.
func Unavailable(cause error) Engine {
	if cause == nil {
		cause = ErrUnavailable
	}
	return unavailable{cause: cause}
}

func (u unavailable) Name() string { return "unavailable" }

func (u unavailable) Transcribe(context.Context, []byte) (string, error) {
	return "", u.cause
}

// New loads the engine for modelPath.
func New(modelPath, lang string) (Engine, error) {
	if modelPath == "" {
		return nil, ErrNoModel
	}
	w, err := NewWhisper(modelPath, lang)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", modelPath, err)
	}
	return w, nil
}
