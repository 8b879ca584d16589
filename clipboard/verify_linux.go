//go:build linux

package clipboard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// eventSize is sizeof(struct input_event) on 64-bit kernels.
const eventSize = 24

func findEventNode(name string) (string, error) {
	entries, err := os.ReadDir("/sys/class/input")
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		data, err := os.ReadFile(filepath.Join("/sys/class/input", e.Name(), "device", "name"))
		if err == nil && strings.TrimSpace(string(data)) == name {
			return filepath.Join("/dev/input", e.Name()), nil
		}
	}
	return "", fmt.Errorf("%s evdev device not found", name)
}

// sawKey reports whether buf holds a key event for code.
func sawKey(buf []byte, code uint16) bool {
	for i := 0; i+eventSize <= len(buf); i += eventSize {
		if binary.LittleEndian.Uint16(buf[i+16:]) == evKey &&
			binary.LittleEndian.Uint16(buf[i+18:]) == code {
			return true
		}
	}
	return false
}

// Verify taps Shift on the virtual keyboard and reads it back from the
// kernel input layer. Shift alone types nothing into the focused window.
func Verify() (string, error) {
	if err := Init(); err != nil {
		return "", fmt.Errorf("uinput init: %w", err)
	}
	node, err := findEventNode(deviceName)
	if err != nil {
		return "", err
	}
	evdev, err := os.Open(node)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", node, err)
	}
	defer evdev.Close()

	if err := keyTap(keyLeftShift, false); err != nil {
		return "", fmt.Errorf("key send: %w", err)
	}

	seen := make(chan error, 1)
	go func() {
		buf := make([]byte, eventSize*32)
		n, err := evdev.Read(buf)
		switch {
		case err != nil:
			seen <- fmt.Errorf("reading events: %w", err)
		case !sawKey(buf[:n], keyLeftShift):
			seen <- errors.New("keystroke not seen on readback")
		default:
			seen <- nil
		}
	}()

	select {
	case err := <-seen:
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("simulated typing verified via %s", node), nil
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("timed out waiting for keystroke events")
	}
}
