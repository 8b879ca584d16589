package render

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"chatty/dictation"
	"chatty/visual"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComposeIdleDots(t *testing.T) {
	p := visual.Params{Mode: visual.ModeDots, Frame: 0}
	f := Compose(p, dictation.Snapshot{State: dictation.StateIdle})

	if len(f.Circles) != 2*visual.DotCount {
		t.Fatalf("got %d circles, want %d", len(f.Circles), 2*visual.DotCount)
	}
	for i := 0; i < visual.DotCount; i++ {
		glow, dot := f.Circles[2*i], f.Circles[2*i+1]
		wantX := float64(30 + 20*i)
		wantY := 20 + math.Sin(float64(i*20)*0.2)*1.5
		wantR := 4 + math.Sin(float64(i*30)*0.1)*0.3
		if !near(dot.Center.X, wantX) || !near(dot.Center.Y, wantY) {
			t.Errorf("dot %d at %+v, want (%v, %v)", i, dot.Center, wantX, wantY)
		}
		if !near(dot.Radius, wantR) || !near(glow.Radius, wantR+1) {
			t.Errorf("dot %d radius %v glow %v, want %v", i, dot.Radius, glow.Radius, wantR)
		}
		if dot.Fill != colorIdle || glow.Outline != colorIdle || glow.Fill != "" {
			t.Errorf("dot %d colors: %+v %+v", i, dot, glow)
		}
	}
	if f.Text != "" {
		t.Errorf("idle frame has text %q", f.Text)
	}
}

func TestComposeRecordingDots(t *testing.T) {
	p := visual.Params{Mode: visual.ModeDots, Frame: 3, Levels: [visual.DotCount]float64{10, 0, 20, 40}}
	f := Compose(p, dictation.Snapshot{State: dictation.StateRecording})

	dot := f.Circles[7]
	wantY := 20 + math.Sin(float64(3+60)*0.2)*1.5 + 40*0.2
	if !near(dot.Center.Y, wantY) {
		t.Errorf("y = %v, want %v", dot.Center.Y, wantY)
	}
	if !near(dot.Radius, 4+40*0.08) {
		t.Errorf("radius = %v", dot.Radius)
	}
	if dot.Fill != colorRecording {
		t.Errorf("fill = %s, want %s", dot.Fill, colorRecording)
	}
}

func TestComposeProcessingColor(t *testing.T) {
	f := Compose(visual.Params{}, dictation.Snapshot{State: dictation.StateProcessing})
	if f.Circles[1].Fill != colorProcessing {
		t.Fatalf("fill = %s", f.Circles[1].Fill)
	}
}

func TestComposeWave(t *testing.T) {
	pts := []float64{0, 0.5, 1}
	f := Compose(visual.Params{Mode: visual.ModeWave, Points: pts}, dictation.Snapshot{
		State:   dictation.StateDisplaying,
		Display: dictation.Display{Text: "hi", Visible: true},
	})
	if len(f.Circles) != 0 || len(f.Lines) != 1 {
		t.Fatalf("circles=%d lines=%d", len(f.Circles), len(f.Lines))
	}
	line := f.Lines[0].Points
	if len(line) != 3 {
		t.Fatalf("%d points", len(line))
	}
	if !near(line[0].X, waveMargin) || !near(line[2].X, Width-waveMargin) {
		t.Errorf("x span %v..%v", line[0].X, line[2].X)
	}
	if !near(line[0].Y, Height-waveMargin) || !near(line[2].Y, waveMargin) {
		t.Errorf("y span %v..%v", line[0].Y, line[2].Y)
	}
	if f.Text != "hi" {
		t.Errorf("text = %q", f.Text)
	}
}

func TestMailboxKeepsLatest(t *testing.T) {
	m := NewMailbox()
	for i := 1; i <= 5; i++ {
		m.Draw(Frame{Seq: i})
	}
	select {
	case f := <-m.Frames():
		if f.Seq != 5 {
			t.Fatalf("got frame %d, want 5", f.Seq)
		}
	default:
		t.Fatal("no frame delivered")
	}
	select {
	case f := <-m.Frames():
		t.Fatalf("stale frame %d still queued", f.Seq)
	default:
	}
}

type stubFeed struct {
	mu     sync.Mutex
	frames []int
}

func (s *stubFeed) Tick(frame int) visual.Params {
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	s.mu.Unlock()
	return visual.Params{Frame: frame}
}

type stubState struct{}

func (stubState) Snapshot() dictation.Snapshot { return dictation.Snapshot{} }

func TestSchedulerNeverBlocksOnSurface(t *testing.T) {
	feed := &stubFeed{}
	mb := NewMailbox()
	s := NewScheduler(feed, stubState{}, mb)
	s.period = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run = %v", err)
	}

	// Nobody read the mailbox, yet the scheduler kept ticking.
	feed.mu.Lock()
	n := len(feed.frames)
	last := feed.frames[n-1]
	feed.mu.Unlock()
	if n < 5 {
		t.Fatalf("only %d ticks in 100ms", n)
	}
	f := <-mb.Frames()
	if f.Seq != last {
		t.Fatalf("mailbox holds frame %d, want latest %d", f.Seq, last)
	}
}
