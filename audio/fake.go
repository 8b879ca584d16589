package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-audio/wav"
)

// FakeContext plays a WAV file through the capture interface. Used by
// -test mode and tests.
type FakeContext struct {
	samples  []float32
	realtime bool
}

func NewFakeContext(wavPath string, realtime bool) (*FakeContext, error) {
	samples, err := ReadWAV(wavPath)
	if err != nil {
		return nil, err
	}
	return &FakeContext{samples: samples, realtime: realtime}, nil
}

// NewFakeContextSamples feeds samples directly.
func NewFakeContextSamples(samples []float32, realtime bool) *FakeContext {
	return &FakeContext{samples: samples, realtime: realtime}
}

// ReadWAV decodes a 16 kHz WAV file to mono float samples (first channel).
func ReadWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if buf.Format.SampleRate != 16000 {
		return nil, fmt.Errorf("%s: sample rate %d, want 16000", path, buf.Format.SampleRate)
	}
	channels := max(buf.Format.NumChannels, 1)
	scale := float32(int(1) << (d.BitDepth - 1))
	out := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		out = append(out, float32(buf.Data[i])/scale)
	}
	return out, nil
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) { return []DeviceInfo{{ID: "fake", Name: "fake"}}, nil }
func (f *FakeContext) Close()                         {}

func (f *FakeContext) NewCapture(_ *DeviceInfo, config CaptureConfig) (CaptureDevice, error) {
	return &FakeCapture{
		samples:   f.samples,
		realtime:  f.realtime,
		config:    config,
		blocker:   newBlocker(config.BlockSize),
		audioDone: make(chan struct{}),
	}, nil
}

type FakeCapture struct {
	samples   []float32
	realtime  bool
	config    CaptureConfig
	blocker   *blocker
	audioDone chan struct{}

	mu       sync.Mutex
	stopCh   chan struct{}
	feedDone chan struct{}
}

// AudioDone is closed once every sample of the file has been delivered.
func (f *FakeCapture) AudioDone() <-chan struct{} { return f.audioDone }

func (f *FakeCapture) SetCallback(cb BlockCallback) { f.blocker.set(cb) }
func (f *FakeCapture) ClearCallback()               { f.blocker.clear() }
func (f *FakeCapture) DeviceName() string           { return "fake" }

func (f *FakeCapture) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopCh != nil {
		return fmt.Errorf("fake capture already started")
	}
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})

	size := len(f.blocker.block)
	if !f.realtime {
		for pos := 0; pos < len(f.samples); pos += size {
			f.blocker.writeFloat32(f.samples[pos:min(pos+size, len(f.samples))])
		}
		close(f.audioDone)
		close(f.feedDone)
		return nil
	}

	if len(f.samples) == 0 {
		close(f.audioDone)
	}
	interval := f.config.BlockDuration()
	if interval <= 0 {
		interval = DefaultCapture().BlockDuration()
	}
	go func() {
		defer close(f.feedDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		silence := make([]float32, size)
		pos := 0
		for {
			select {
			case <-f.stopCh:
				return
			case <-ticker.C:
			}
			if pos < len(f.samples) {
				end := min(pos+size, len(f.samples))
				f.blocker.writeFloat32(f.samples[pos:end])
				pos = end
				if pos == len(f.samples) {
					close(f.audioDone)
				}
				continue
			}
			f.blocker.writeFloat32(silence)
		}
	}()
	return nil
}

func (f *FakeCapture) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopCh == nil {
		return
	}
	select {
	case <-f.stopCh:
	default:
		close(f.stopCh)
	}
	<-f.feedDone
}

func (f *FakeCapture) Close() { f.Stop() }
