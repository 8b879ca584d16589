package dictation

import (
	"context"
	"sync/atomic"
	"time"

	"chatty/log"
	"chatty/transcriber"
)

// ModeCycler switches the visual indicator to its next variant.
type ModeCycler interface {
	Cycle()
}

// Observer is told about controller events. Calls happen on the
// controller goroutine and must not block.
type Observer interface {
	StateChanged(from, to State)
	TranscriptionDone(res Result)
	OutputDone(copyErr, typeErr error)
}

type Config struct {
	Engine   transcriber.Engine
	Output   Output
	Sink     VisualSink
	Modes    ModeCycler
	Observer Observer
	Clock    Clock   // defaults to wall-clock timers
	Timings  Timings // zero value means DefaultTimings
	AutoType bool
}

type actionKind int

const (
	actToggle actionKind = iota
	actCancel
	actCycle
	actResult
	actTimer
	actOutput
	actDegraded
)

type timerStep int

const (
	stepCopy timerStep = iota
	stepClear
	stepHold
)

type action struct {
	kind   actionKind
	gen    uint64
	step   timerStep
	result Result
	report outputReport
	status Status
}

// Controller is the RecordingController. Every transition is evaluated on
// the goroutine running Run; other goroutines only post actions and read
// the published Snapshot.
type Controller struct {
	engine   transcriber.Engine
	modes    ModeCycler
	observer Observer
	clock    Clock
	timings  Timings

	buf    sampleBuffer
	source Source
	out    dispatcher

	actions chan action
	done    chan struct{}
	snap    atomic.Pointer[Snapshot]

	// Owned by the Run goroutine.
	ctx     context.Context
	state   State
	status  Status
	idle    Status
	gen     uint64
	pending Timer
}

func New(cfg Config) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.Timings == (Timings{}) {
		cfg.Timings = DefaultTimings()
	}
	if cfg.Engine == nil {
		cfg.Engine = EngineUnavailable(nil)
	}
	c := &Controller{
		engine:   cfg.Engine,
		modes:    cfg.Modes,
		observer: cfg.Observer,
		clock:    cfg.Clock,
		timings:  cfg.Timings,
		out: dispatcher{
			out:      cfg.Output,
			timings:  cfg.Timings,
			autoType: cfg.AutoType,
		},
		actions: make(chan action, 64),
		done:    make(chan struct{}),
		state:   StateIdle,
		status:  statusIdle,
		idle:    statusIdle,
	}
	c.source = Source{buf: &c.buf, sink: cfg.Sink}
	c.publish()
	return c
}

// Source is the audio entry point bound to this controller's buffer.
func (c *Controller) Source() *Source { return &c.source }

func (c *Controller) Toggle()    { c.post(action{kind: actToggle}) }
func (c *Controller) Cancel()    { c.post(action{kind: actCancel}) }
func (c *Controller) CycleMode() { c.post(action{kind: actCycle}) }

func (c *Controller) Snapshot() Snapshot { return *c.snap.Load() }
func (c *Controller) State() State       { return c.Snapshot().State }

// Displaying reports whether a transcript is on screen.
func (c *Controller) Displaying() bool { return c.Snapshot().Display.Visible }

// post enqueues an action. After Run has returned it is a no-op.
func (c *Controller) post(a action) {
	select {
	case c.actions <- a:
	case <-c.done:
	}
}

// Run consumes actions until ctx is cancelled. It must be called once.
func (c *Controller) Run(ctx context.Context) error {
	c.ctx = ctx
	defer close(c.done)
	defer c.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-c.actions:
			c.handle(a)
			c.publish()
		}
	}
}

func (c *Controller) handle(a action) {
	switch a.kind {
	case actToggle:
		c.toggle()
	case actCancel:
		if c.state == StateDisplaying {
			log.Info("transcript_cleared")
			c.finish()
		}
	case actCycle:
		if c.modes != nil {
			c.modes.Cycle()
		}
	case actResult:
		if a.gen != c.gen || c.state != StateProcessing {
			log.Debugf("dropping stale transcription result gen=%d", a.gen)
			return
		}
		c.resolve(a.result)
	case actTimer:
		if a.gen != c.gen {
			return
		}
		c.fire(a.step)
	case actOutput:
		if a.gen != c.gen || c.state != StateDisplaying {
			return
		}
		c.out.cancel = nil
		c.setStatus(a.report.status())
		if c.observer != nil {
			c.observer.OutputDone(a.report.copyErr, a.report.typeErr)
		}
		if a.report.copyErr != nil {
			log.Errorf("clipboard: %v", a.report.copyErr)
		} else if a.report.typeErr != nil {
			log.Warnf("typing: %v", a.report.typeErr)
		}
		c.schedule(stepClear, c.timings.ClearDelay)
	case actDegraded:
		c.idle = a.status
		if c.state == StateIdle {
			c.status = c.idle
		}
	}
}

func (c *Controller) toggle() {
	switch c.state {
	case StateIdle:
		c.buf.begin()
		c.transition(StateRecording, statusListening)
		log.Info("recording_start")
	case StateRecording:
		samples := c.buf.take()
		c.gen++
		c.transition(StateProcessing, statusProcessing)
		log.Infof("recording_stop samples=%d", len(samples))
		gen, engine, ctx := c.gen, c.engine, c.ctx
		go func() {
			res := transcribe(ctx, engine, samples)
			c.post(action{kind: actResult, gen: gen, result: res})
		}()
	default:
		log.Debugf("toggle ignored in state %s", c.state)
	}
}

func (c *Controller) resolve(res Result) {
	if c.observer != nil {
		c.observer.TranscriptionDone(res)
	}
	switch res.Outcome {
	case OutcomeText:
		log.Infof("transcription chars=%d elapsed=%s", len(res.Text), res.Elapsed)
		c.out.show(res.Text)
		c.transition(StateDisplaying, statusCopying)
		c.schedule(stepCopy, c.timings.CopyDelay)
	case OutcomeEmpty:
		if res.Samples == 0 {
			log.Info("recording_empty")
			c.transition(StateIdle, c.idle)
			return
		}
		log.Infof("no_speech samples=%d", res.Samples)
		c.setStatus(statusNoSpeech)
		c.schedule(stepHold, c.timings.StatusHold)
	case OutcomeFailure:
		log.Errorf("transcription failed: %v", res.Err)
		c.setStatus(statusError)
		c.schedule(stepHold, c.timings.StatusHold)
	}
}

func (c *Controller) fire(step timerStep) {
	switch step {
	case stepHold:
		if c.state == StateProcessing {
			c.transition(StateIdle, c.idle)
		}
	case stepCopy:
		if c.state != StateDisplaying {
			return
		}
		gen := c.gen
		started := c.out.deliver(c.ctx, func(r outputReport) {
			c.post(action{kind: actOutput, gen: gen, report: r})
		})
		if !started {
			c.schedule(stepClear, c.timings.ClearDelay)
		}
	case stepClear:
		if c.state == StateDisplaying {
			c.finish()
		}
	}
}

// finish invalidates every pending auto-action and the displayed text,
// then returns to Idle.
func (c *Controller) finish() {
	c.gen++
	c.stopPending()
	c.out.clear()
	c.transition(StateIdle, c.idle)
}

// schedule arms the single pending auto-action for the current generation.
func (c *Controller) schedule(step timerStep, d time.Duration) {
	c.stopPending()
	gen := c.gen
	c.pending = c.clock.AfterFunc(d, func() {
		c.post(action{kind: actTimer, gen: gen, step: step})
	})
}

func (c *Controller) stopPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) transition(to State, st Status) {
	from := c.state
	c.state = to
	c.status = st
	if from != to && c.observer != nil {
		c.observer.StateChanged(from, to)
	}
}

func (c *Controller) setStatus(st Status) { c.status = st }

// DeviceFailed marks the audio subsystem as unavailable. The idle status
// reports it from then on; recording still works and yields Empty.
func (c *Controller) DeviceFailed() {
	c.post(action{kind: actDegraded, status: statusNoAudio})
}

// EngineFailed marks the speech model as unavailable.
func (c *Controller) EngineFailed() {
	c.post(action{kind: actDegraded, status: statusNoEngine})
}

func (c *Controller) publish() {
	c.snap.Store(&Snapshot{
		State:   c.state,
		Status:  c.status,
		Display: c.out.display,
	})
}

func (c *Controller) shutdown() {
	c.gen++
	c.stopPending()
	c.out.clear()
	c.buf.take()
}
