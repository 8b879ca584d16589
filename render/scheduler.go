package render

import (
	"context"
	"time"

	"chatty/dictation"
	"chatty/visual"
)

// Period is the render tick: 20 frames per second.
const Period = 50 * time.Millisecond

type ParamSource interface {
	Tick(frame int) visual.Params
}

type StateSource interface {
	Snapshot() dictation.Snapshot
}

// Scheduler is the RenderScheduler. Each tick reads the latest published
// state and hands a frame to the surface; nothing on this path waits on
// transcription or output.
type Scheduler struct {
	feed    ParamSource
	state   StateSource
	surface Surface
	period  time.Duration
}

func NewScheduler(feed ParamSource, state StateSource, surface Surface) *Scheduler {
	return &Scheduler{feed: feed, state: state, surface: surface, period: Period}
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame++
			s.surface.Draw(s.frame(frame))
		}
	}
}

func (s *Scheduler) frame(n int) Frame {
	return Compose(s.feed.Tick(n), s.state.Snapshot())
}
