package dictation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chatty/audio"
	"chatty/transcriber"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves simulated time forward and runs every timer that came due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakeEngine struct {
	text  string
	err   error
	block chan struct{}

	calls atomic.Int32
	bytes atomic.Int32
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) Transcribe(ctx context.Context, pcm []byte) (string, error) {
	e.calls.Add(1)
	e.bytes.Store(int32(len(pcm)))
	if e.block != nil {
		select {
		case <-e.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return e.text, e.err
}

type fakeOutput struct {
	mu      sync.Mutex
	copies  []string
	typed   []string
	copyErr error
	typeErr error
	hold    bool // Type waits for ctx cancellation
}

func (o *fakeOutput) Copy(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.copies = append(o.copies, text)
	return o.copyErr
}

func (o *fakeOutput) Type(ctx context.Context, text string) error {
	if o.hold {
		<-ctx.Done()
		return ctx.Err()
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.typed = append(o.typed, text)
	return o.typeErr
}

func (o *fakeOutput) counts() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.copies), len(o.typed)
}

type fakeSink struct {
	mu      sync.Mutex
	updates []sinkUpdate
}

type sinkUpdate struct {
	energy    float64
	recording bool
}

func (s *fakeSink) Update(energy float64, recording bool) {
	s.mu.Lock()
	s.updates = append(s.updates, sinkUpdate{energy, recording})
	s.mu.Unlock()
}

// fakeModes doubles as a barrier: once a cycle is observed every action
// queued before it has been handled.
type fakeModes struct {
	cycled chan struct{}
}

func (m *fakeModes) Cycle() { m.cycled <- struct{}{} }

type fakeObserver struct {
	mu      sync.Mutex
	states  []State
	results []Result
}

func (o *fakeObserver) StateChanged(_, to State) {
	o.mu.Lock()
	o.states = append(o.states, to)
	o.mu.Unlock()
}

func (o *fakeObserver) TranscriptionDone(res Result) {
	o.mu.Lock()
	o.results = append(o.results, res)
	o.mu.Unlock()
}

func (o *fakeObserver) OutputDone(error, error) {}

func (o *fakeObserver) history() []State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]State(nil), o.states...)
}

type harness struct {
	t      *testing.T
	c      *Controller
	clock  *fakeClock
	engine *fakeEngine
	out    *fakeOutput
	sink   *fakeSink
	modes  *fakeModes
	obs    *fakeObserver
}

func testTimings() Timings {
	return Timings{
		CopyDelay:  1500 * time.Millisecond,
		ClearDelay: time.Second,
		StatusHold: 2 * time.Second,
	}
}

func newHarness(t *testing.T, engine *fakeEngine, out *fakeOutput) *harness {
	t.Helper()
	h := startHarness(t, engine, out)
	h.engine = engine
	return h
}

// startHarness runs a controller over any engine; h.engine stays nil.
func startHarness(t *testing.T, engine transcriber.Engine, out *fakeOutput) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		clock:  &fakeClock{},
		out:    out,
		sink:   &fakeSink{},
		modes:  &fakeModes{cycled: make(chan struct{}, 1)},
		obs:    &fakeObserver{},
	}
	h.c = New(Config{
		Engine:   engine,
		Output:   out,
		Sink:     h.sink,
		Modes:    h.modes,
		Observer: h.obs,
		Clock:    h.clock,
		Timings:  testTimings(),
		AutoType: true,
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.c.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return h
}

// flush waits until every previously posted action has been handled.
func (h *harness) flush() {
	h.t.Helper()
	h.c.CycleMode()
	select {
	case <-h.modes.cycled:
	case <-time.After(2 * time.Second):
		h.t.Fatal("controller did not drain its queue")
	}
}

func (h *harness) waitFor(what string, cond func() bool) {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			h.t.Fatalf("timed out waiting for %s (state=%s)", what, h.c.State())
		}
		time.Sleep(time.Millisecond)
	}
}

func (h *harness) waitState(s State) {
	h.t.Helper()
	h.waitFor("state "+s.String(), func() bool { return h.c.State() == s })
}

func block(n int, v float32) []float32 {
	b := make([]float32, n)
	for i := range b {
		b[i] = v
	}
	return b
}

// fakeCapture is an audio.CaptureDevice whose Start returns startErr.
type fakeCapture struct {
	startErr error
	cb       audio.BlockCallback
	started  bool
	cleared  bool
}

func (f *fakeCapture) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeCapture) Stop()  { f.started = false }
func (f *fakeCapture) Close() {}

func (f *fakeCapture) SetCallback(cb audio.BlockCallback) { f.cb = cb }

func (f *fakeCapture) ClearCallback() {
	f.cb = nil
	f.cleared = true
}

func (f *fakeCapture) DeviceName() string { return "fake" }
