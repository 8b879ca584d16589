package audio

import (
	"strings"
	"time"
)

var btKeywords = []string{
	"airpods", "beats", "bose", "wh-1000", "wf-1000",
	"sony wh-", "sony wf-",
	"jabra", "galaxy buds", "pixel buds", "powerbeats",
	"jbl ", "sennheiser momentum", "plantronics",
	"tozo", "anker soundcore", "skullcandy",
	"bluetooth", " bt ", " bt)", " bt]",
}

func IsBluetooth(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range btKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// BlockCallback receives one fixed-size block of mono samples in [-1, 1].
// It runs on the backend's real-time thread; the slice is reused after
// the call returns.
type BlockCallback func(samples []float32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
	BlockSize  int // samples per callback
}

// DefaultCapture is 16 kHz mono in blocks of 1000 samples (62.5 ms).
func DefaultCapture() CaptureConfig {
	return CaptureConfig{SampleRate: 16000, Channels: 1, BlockSize: 1000}
}

// BlockDuration is the cadence at which blocks are delivered.
func (c CaptureConfig) BlockDuration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.BlockSize) * time.Second / time.Duration(c.SampleRate)
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb BlockCallback)
	ClearCallback()
	DeviceName() string
}
