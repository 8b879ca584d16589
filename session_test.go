package main

import (
	"context"
	"testing"
	"time"
)

func TestWaitQuitCancelsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quit := make(chan struct{})

	done := make(chan struct{})
	go func() {
		waitQuit(ctx, cancel, quit)
		close(done)
	}()

	close(quit)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waitQuit did not return after quit")
	}
	if ctx.Err() == nil {
		t.Fatal("session context not cancelled by quit")
	}
}

func TestWaitQuitReturnsOnSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// a nil quit channel never fires; ctx alone must end the wait
	waitQuit(ctx, cancel, nil)
}

func TestRunThenCloseOrdersCleanup(t *testing.T) {
	var order []string
	run := func() {
		defer func() { order = append(order, "session_end") }()
		order = append(order, "run")
	}
	runThenClose(run, func() { order = append(order, "close") })

	want := []string{"run", "session_end", "close"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
