package dictation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatty/transcriber"
)

type Outcome int

const (
	OutcomeText Outcome = iota
	OutcomeEmpty
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeText:
		return "text"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the single outcome of one transcription attempt.
type Result struct {
	Outcome Outcome
	Text    string // trimmed, set for OutcomeText
	Err     error  // set for OutcomeFailure
	Samples int
	Elapsed time.Duration
}

// EngineUnavailable stands in for an engine whose model failed to load.
// Every attempt fails with an error matching both ErrEngine and cause, so a
// startup failure stays distinguishable from a failed attempt.
func EngineUnavailable(cause error) transcriber.Engine {
	if cause == nil {
		return transcriber.Unavailable(ErrEngine)
	}
	return transcriber.Unavailable(fmt.Errorf("%w: %w", ErrEngine, cause))
}

// transcribe runs one attempt over samples, which it owns. It never
// returns without a Result, including when the engine panics.
func transcribe(ctx context.Context, engine transcriber.Engine, samples []float32) (res Result) {
	res.Samples = len(samples)
	if len(samples) == 0 {
		res.Outcome = OutcomeEmpty
		return res
	}

	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			res = Result{
				Outcome: OutcomeFailure,
				Err:     fmt.Errorf("%w: engine panic: %v", ErrTranscription, r),
				Samples: len(samples),
				Elapsed: time.Since(start),
			}
		}
	}()

	pcm := transcriber.EncodePCM16(samples)
	text, err := engine.Transcribe(ctx, pcm)
	if err != nil {
		res.Outcome = OutcomeFailure
		res.Err = fmt.Errorf("%w: %w", ErrTranscription, err)
		return res
	}

	text = strings.TrimSpace(text)
	if text == "" {
		res.Outcome = OutcomeEmpty
		return res
	}
	res.Outcome = OutcomeText
	res.Text = text
	return res
}
