//go:build whisper

package transcriber

import (
	"context"
	"fmt"
	"strings"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// Whisper runs whisper.cpp in-process. The model is loaded once; the
// context is not safe for concurrent Process calls, so they are serialized.
type Whisper struct {
	mu    sync.Mutex
	model whisper.Model
	wctx  whisper.Context
	lang  string
}

func NewWhisper(modelPath, lang string) (*Whisper, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, err
	}
	wctx, err := model.NewContext()
	if err != nil {
		model.Close()
		return nil, fmt.Errorf("whisper context: %w", err)
	}
	if lang == "" {
		lang = "auto"
	}
	if err := wctx.SetLanguage(lang); err != nil {
		model.Close()
		return nil, fmt.Errorf("whisper language %q: %w", lang, err)
	}
	wctx.SetTranslate(false)
	return &Whisper{model: model, wctx: wctx, lang: lang}, nil
}

func (w *Whisper) Name() string { return "whisper" }

func (w *Whisper) Transcribe(ctx context.Context, pcm []byte) (string, error) {
	samples, err := DecodePCM16(pcm)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	onSegment := func(s whisper.Segment) {
		sb.WriteString(s.Text)
	}
	// Returning false from the encoder callback aborts the run.
	proceed := func() bool { return ctx.Err() == nil }

	w.mu.Lock()
	err = w.wctx.Process(samples, proceed, onSegment, nil)
	w.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("whisper process: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return stripBlank(sb.String()), nil
}

func (w *Whisper) Close() error {
	return w.model.Close()
}
