package doctor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"chatty/audio"
	"chatty/dictation"
	"chatty/hotkey"
	"chatty/log"
	"chatty/transcriber"
)

// Options selects what the checks run against.
type Options struct {
	Model    string
	Language string
	Device   string
	WAV      string // use this file instead of the microphone
}

// minSpeechEnergy is the peak block energy below which a recording is
// treated as silence.
const minSpeechEnergy = 2.0

// Run executes interactive diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(opts Options) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("chatty doctor - interactive system diagnostics")
	fmt.Println("==============================================")

	allPass := true

	if !checkHotkey() {
		allPass = false
	}
	samples, ok := checkMicrophone(opts)
	if !ok {
		allPass = false
	}
	if !checkEngine(opts, samples) {
		allPass = false
	}
	if !checkClipboardCopy() {
		allPass = false
	}
	if allPass && !checkClipboardPaste() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkHotkey() bool {
	fmt.Println()
	fmt.Println("[1/5] Hotkey detection")

	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  %s\n", msg)

	l := hotkey.New()
	if err := l.Register(); err != nil {
		fmt.Printf("  FAIL: could not register hotkey: %v\n", err)
		return false
	}
	defer l.Unregister()

	fmt.Println("Press the record hotkey (Ctrl; Ctrl+Shift+Space where raw keys are unavailable)...")
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev := <-l.Events():
			if ev.Key == hotkey.KeyCtrl && ev.Kind == hotkey.Press {
				fmt.Println("  PASS: hotkey detected")
				resetTerminal()
				return true
			}
		case <-timeout:
			fmt.Println("  FAIL: timeout waiting for hotkey")
			return false
		}
	}
}

func checkMicrophone(opts Options) ([]float32, bool) {
	fmt.Println()
	fmt.Println("[2/5] Microphone")

	var samples []float32
	if opts.WAV != "" {
		var err error
		samples, err = audio.ReadWAV(opts.WAV)
		if err != nil {
			fmt.Printf("  FAIL: %v\n", err)
			return nil, false
		}
		fmt.Printf("Using %s\n", opts.WAV)
	} else {
		ctx, err := audio.NewContext()
		if err != nil {
			fmt.Printf("  FAIL: cannot connect to audio: %v\n", err)
			return nil, false
		}
		defer ctx.Close()

		var device *audio.DeviceInfo
		if opts.Device != "" {
			if device, err = audio.FindDevice(ctx, opts.Device); err != nil {
				fmt.Printf("  FAIL: %v\n", err)
				return nil, false
			}
		}

		fmt.Print("Press Enter and speak for 3 seconds...")
		bufio.NewReader(os.Stdin).ReadString('\n')

		stop := make(chan struct{})
		go func() {
			time.Sleep(3 * time.Second)
			close(stop)
		}()
		samples, err = recordAudio(ctx, device, stop)
		if err != nil {
			fmt.Printf("  FAIL: recording error: %v\n", err)
			return nil, false
		}
		saveRecording(samples)
	}

	peak, mean := levels(samples, audio.DefaultCapture().BlockSize)
	fmt.Printf("  %.1fs captured, energy peak %.1f mean %.1f\n",
		float64(len(samples))/transcriber.SampleRate, peak, mean)
	switch {
	case len(samples) == 0:
		fmt.Println("  FAIL: no audio captured")
		return nil, false
	case peak < minSpeechEnergy:
		fmt.Println("  FAIL: signal too quiet (muted or wrong device?)")
		return samples, false
	}
	fmt.Println("  PASS: microphone signal detected")
	return samples, true
}

func recordAudio(ctx audio.Context, device *audio.DeviceInfo, stop <-chan struct{}) ([]float32, error) {
	var (
		mu  sync.Mutex
		buf []float32
	)

	capture, err := ctx.NewCapture(device, audio.DefaultCapture())
	if err != nil {
		return nil, err
	}
	defer capture.Close()

	capture.SetCallback(func(block []float32) {
		mu.Lock()
		buf = append(buf, block...)
		mu.Unlock()
	})
	if err := capture.Start(); err != nil {
		return nil, err
	}

	fmt.Printf("  Recording from %s", capture.DeviceName())
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for done := false; !done; {
		select {
		case <-stop:
			done = true
		case <-ticker.C:
			fmt.Print(".")
		}
	}
	capture.Stop()
	capture.ClearCallback()
	fmt.Println(" done")

	mu.Lock()
	defer mu.Unlock()
	return buf, nil
}

// levels returns the peak and mean block energy.
func levels(samples []float32, blockSize int) (peak, mean float64) {
	if len(samples) == 0 || blockSize <= 0 {
		return 0, 0
	}
	var sum float64
	n := 0
	for pos := 0; pos < len(samples); pos += blockSize {
		e := dictation.Energy(samples[pos:min(pos+blockSize, len(samples))])
		peak = max(peak, e)
		sum += e
		n++
	}
	return peak, sum / float64(n)
}

// saveRecording keeps the doctor capture next to the diagnostics log so
// it can be replayed with -test.
func saveRecording(samples []float32) {
	path := filepath.Join(log.Dir(), "doctor_recording.wav")
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	if err := audio.WriteWAV(f, samples, transcriber.SampleRate); err == nil {
		fmt.Printf("  Saved %s\n", path)
	}
}

func checkEngine(opts Options, samples []float32) bool {
	fmt.Println()
	fmt.Println("[3/5] Speech engine")

	engine, err := transcriber.New(opts.Model, opts.Language)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	if c, ok := engine.(interface{ Close() error }); ok {
		defer c.Close()
	}
	if len(samples) == 0 {
		fmt.Printf("  PASS: %s loaded (no audio to transcribe)\n", engine.Name())
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	start := time.Now()
	text, err := engine.Transcribe(ctx, transcriber.EncodePCM16(samples))
	if err != nil {
		fmt.Printf("  FAIL: transcription error: %v\n", err)
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = "(no speech detected)"
	}
	fmt.Printf("  Transcribed in %s: %s\n", time.Since(start).Round(time.Millisecond), text)
	fmt.Println("  PASS: engine responded")
	return true
}
