package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"chatty/audio"
	"chatty/beep"
	"chatty/config"
	"chatty/dictation"
	"chatty/hotkey"
	"chatty/log"
	"chatty/transcriber"
)

// syncWriter serializes trace lines from the controller and output
// goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// traceOutput stands in for the clipboard in test mode.
type traceOutput struct {
	w io.Writer
}

func (t traceOutput) Copy(text string) error {
	fmt.Fprintf(t.w, "COPY %s\n", text)
	return nil
}

func (t traceOutput) Type(_ context.Context, text string) error {
	fmt.Fprintf(t.w, "TYPE %s\n", text)
	return nil
}

// testDriver turns script lines into hotkey events and waits.
type testDriver struct {
	keys    *hotkey.FakeListener
	ctrl    *dictation.Controller
	capture *audio.FakeCapture
	idle    <-chan struct{}
	out     io.Writer
}

// exec runs one command and reports whether the script should continue.
func (d *testDriver) exec(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToUpper(cmd) {
	case "":
	case "TOGGLE":
		d.keys.Tap(hotkey.KeyCtrl)
	case "CYCLE":
		d.keys.Send(hotkey.Event{Key: hotkey.KeyM, Kind: hotkey.Press, Chord: true})
		d.keys.Send(hotkey.Event{Key: hotkey.KeyM, Kind: hotkey.Release, Chord: true})
	case "ESC":
		d.keys.Tap(hotkey.KeyEscape)
	case "WAIT":
		<-d.idle
	case "WAIT_AUDIO_DONE":
		<-d.capture.AudioDone()
	case "SLEEP":
		if ms, err := strconv.Atoi(arg); err == nil {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		}
	case "STATE":
		fmt.Fprintf(d.out, "STATE %s\n", d.ctrl.State())
	case "QUIT":
		return false
	default:
		fmt.Fprintf(d.out, "ERROR unknown command %q\n", cmd)
	}
	return true
}

// runTestMode drives a real controller from a WAV file and a script on
// stdin. Without a model the engine is a fake that returns a fixed text.
func runTestMode(wavPath string, cfg config.Config, engine transcriber.Engine) int {
	beep.Disable()
	cfg.Beep = false

	if engine == nil {
		engine = transcriber.NewFake("test transcription", nil, 200*time.Millisecond)
	}

	fakeCtx, err := audio.NewFakeContext(wavPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading WAV: %v\n", err)
		return 1
	}
	capture, err := fakeCtx.NewCapture(nil, audio.DefaultCapture())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating capture: %v\n", err)
		return 1
	}
	defer capture.Close()

	out := &syncWriter{w: os.Stdout}
	s := newSession(cfg, engine, traceOutput{w: out})
	s.obs.trace = out
	idle := make(chan struct{}, 1)
	s.obs.idle = idle
	log.SessionStart(engine.Name(), capture.DeviceName(), cfg.Visual)

	if err := s.ctrl.Source().Start(capture); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting capture: %v\n", err)
		return 1
	}

	keys := hotkey.NewFake()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx, keys) }()

	d := &testDriver{keys: keys, ctrl: s.ctrl, capture: capture.(*audio.FakeCapture), idle: idle, out: out}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if !d.exec(scanner.Text()) {
			break
		}
	}

	cancel()
	if err := <-done; err != nil {
		log.Errorf("test mode: %v", err)
		return 1
	}
	log.SessionEnd(s.obs.transcriptions())
	return 0
}
