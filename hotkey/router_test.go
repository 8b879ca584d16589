package hotkey

import (
	"context"
	"testing"
	"time"
)

type recorder struct {
	displaying bool
	toggles    int
	cancels    int
	cycles     int
}

func (r *recorder) Toggle()          { r.toggles++ }
func (r *recorder) Cancel()          { r.cancels++ }
func (r *recorder) CycleMode()       { r.cycles++ }
func (r *recorder) Displaying() bool { return r.displaying }

func press(k Key) Event   { return Event{Key: k, Kind: Press} }
func release(k Key) Event { return Event{Key: k, Kind: Release} }
func repeat(k Key) Event  { return Event{Key: k, Kind: Repeat} }

func TestCtrlTogglesOncePerPress(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	r.Handle(press(KeyCtrl))
	r.Handle(repeat(KeyCtrl))
	r.Handle(repeat(KeyCtrl))
	r.Handle(press(KeyCtrl)) // second keyboard reporting the same key
	if rec.toggles != 1 {
		t.Fatalf("toggles = %d while held, want 1", rec.toggles)
	}

	r.Handle(release(KeyCtrl))
	if rec.toggles != 1 {
		t.Fatalf("release produced an action")
	}
	r.Handle(press(KeyCtrl))
	if rec.toggles != 2 {
		t.Fatalf("toggles = %d after second press, want 2", rec.toggles)
	}
}

func TestCtrlMCyclesOncePerCombination(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	r.Handle(press(KeyM))
	if rec.cycles != 0 {
		t.Fatal("M alone cycled the mode")
	}
	r.Handle(release(KeyM))

	r.Handle(press(KeyCtrl))
	r.Handle(press(KeyM))
	r.Handle(repeat(KeyM))
	r.Handle(press(KeyM))
	if rec.cycles != 1 {
		t.Fatalf("cycles = %d, want 1", rec.cycles)
	}
	// the ctrl press that opened the combination toggled once
	if rec.toggles != 1 {
		t.Fatalf("toggles = %d, want 1", rec.toggles)
	}
	r.Handle(release(KeyM))
	r.Handle(press(KeyM))
	if rec.cycles != 2 {
		t.Fatalf("cycles = %d after re-press, want 2", rec.cycles)
	}

	r.Handle(release(KeyCtrl))
	r.Handle(release(KeyM))
	r.Handle(press(KeyM))
	if rec.cycles != 2 {
		t.Fatal("cycled after ctrl was released")
	}
}

func TestChordCyclesWithoutCtrl(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)
	r.Handle(Event{Key: KeyM, Kind: Press, Chord: true})
	r.Handle(Event{Key: KeyM, Kind: Release, Chord: true})
	if rec.cycles != 1 || rec.toggles != 0 {
		t.Fatalf("cycles=%d toggles=%d", rec.cycles, rec.toggles)
	}
}

func TestEscapeOnlyWhileDisplaying(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)

	r.Handle(press(KeyEscape))
	r.Handle(release(KeyEscape))
	if rec.cancels != 0 {
		t.Fatal("escape cancelled with nothing displayed")
	}

	rec.displaying = true
	r.Handle(press(KeyEscape))
	r.Handle(repeat(KeyEscape))
	r.Handle(press(KeyEscape))
	if rec.cancels != 1 {
		t.Fatalf("cancels = %d, want 1", rec.cancels)
	}
	r.Handle(release(KeyEscape))
	r.Handle(press(KeyEscape))
	if rec.cancels != 2 {
		t.Fatalf("cancels = %d, want 2", rec.cancels)
	}
}

func TestReleasesNeverAct(t *testing.T) {
	rec := &recorder{displaying: true}
	r := NewRouter(rec)
	for _, k := range []Key{KeyCtrl, KeyM, KeyEscape} {
		r.Handle(release(k))
	}
	if rec.toggles+rec.cancels+rec.cycles != 0 {
		t.Fatalf("releases produced actions: %+v", rec)
	}
}

func TestRunDrainsListener(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(rec)
	fk := NewFake()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, fk) }()

	fk.Tap(KeyCtrl)
	fk.Tap(KeyCtrl)
	// Run is the only reader; once it drains the channel both taps are handled.
	deadline := time.Now().Add(time.Second)
	for len(fk.events) > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(5 * time.Millisecond)
	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("Run = %v", err)
	}
	if rec.toggles != 2 {
		t.Fatalf("toggles = %d, want 2", rec.toggles)
	}
}
