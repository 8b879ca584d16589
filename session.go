package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"chatty/beep"
	"chatty/config"
	"chatty/dictation"
	"chatty/hotkey"
	"chatty/log"
	"chatty/render"
	"chatty/transcriber"
	"chatty/visual"
)

// session is one running instance: controller, indicator feed and the
// mailbox the active surface reads frames from.
type session struct {
	ctrl *dictation.Controller
	feed *visual.Feed
	mail *render.Mailbox
	obs  *observer
}

func newSession(cfg config.Config, engine transcriber.Engine, out dictation.Output) *session {
	s := &session{
		feed: visual.NewFeed(cfg.Mode()),
		mail: render.NewMailbox(),
		obs:  &observer{beep: cfg.Beep},
	}
	s.ctrl = dictation.New(dictation.Config{
		Engine:   engine,
		Output:   out,
		Sink:     s.feed,
		Modes:    s.feed,
		Observer: s.obs,
		AutoType: cfg.AutoType,
	})
	return s
}

// run drives the controller, the render tick and, when l is non-nil, the
// hotkey router until ctx is cancelled or one of them fails.
func (s *session) run(ctx context.Context, l hotkey.Listener) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.ctrl.Run(ctx) })
	g.Go(func() error { return render.NewScheduler(s.feed, s.ctrl, s.mail).Run(ctx) })
	if l != nil {
		g.Go(func() error { return hotkey.NewRouter(s.ctrl).Run(ctx, l) })
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// observer logs controller events and plays the audible cues. With
// trace set it also prints one line per event for scripted runs.
type observer struct {
	beep  bool
	trace io.Writer
	idle  chan<- struct{} // signalled on every return to Idle
	count atomic.Int64
}

func (o *observer) tracef(format string, args ...any) {
	if o.trace != nil {
		fmt.Fprintf(o.trace, format+"\n", args...)
	}
}

func (o *observer) StateChanged(from, to dictation.State) {
	log.State(from.String(), to.String())
	o.tracef("STATE %s", to)
	if to == dictation.StateIdle && o.idle != nil {
		select {
		case o.idle <- struct{}{}:
		default:
		}
	}
	if !o.beep {
		return
	}
	switch to {
	case dictation.StateRecording:
		beep.PlayStart()
	case dictation.StateProcessing:
		beep.PlayEnd()
	}
}

func (o *observer) TranscriptionDone(res dictation.Result) {
	log.Transcription(res.Outcome.String(), res.Samples, res.Elapsed, len(res.Text))
	o.tracef("RESULT %s samples=%d", res.Outcome, res.Samples)
	switch res.Outcome {
	case dictation.OutcomeText:
		o.count.Add(1)
	case dictation.OutcomeFailure:
		if o.beep {
			beep.PlayError()
		}
	}
}

func (o *observer) OutputDone(copyErr, typeErr error) {
	log.Output(copyErr, typeErr)
	o.tracef("OUTPUT copy_err=%v type_err=%v", copyErr, typeErr)
}

func (o *observer) transcriptions() int { return int(o.count.Load()) }

// waitQuit blocks until the session ends or quit is closed, cancelling the
// session in the latter case.
func waitQuit(ctx context.Context, cancel context.CancelFunc, quit <-chan struct{}) {
	select {
	case <-quit:
		cancel()
	case <-ctx.Done():
	}
}

// runThenClose runs the app to completion, deferred cleanup included, and
// only then closes the window that owns the main thread.
func runThenClose(run, closeWindow func()) {
	defer closeWindow()
	run()
}
