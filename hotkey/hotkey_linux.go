//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
	keyEsc     = 1
	keyLCtrl   = 29
	keyM       = 50
	keyRCtrl   = 97
)

const inputEventSize = 24

// evdevListener reads keyboards directly. Devices are opened read-only and
// never grabbed, so other applications still receive every key.
type evdevListener struct {
	events chan Event
	files  []*os.File
	stop   chan struct{}
	once   sync.Once
}

func New() Listener {
	return &evdevListener{events: make(chan Event, 16)}
}

func (h *evdevListener) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	h.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		go h.readEvents(f)
	}

	if len(h.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (h *evdevListener) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)

	for {
		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			ev, ok := decodeEvent(buf[i : i+inputEventSize])
			if !ok {
				continue
			}
			select {
			case h.events <- ev:
			case <-h.stop:
				return
			}
		}
	}
}

// decodeEvent maps one struct input_event to an Event.
func decodeEvent(raw []byte) (Event, bool) {
	evType := binary.LittleEndian.Uint16(raw[16:])
	evCode := binary.LittleEndian.Uint16(raw[18:])
	evValue := int32(binary.LittleEndian.Uint32(raw[20:]))
	if evType != evKey {
		return Event{}, false
	}

	var ev Event
	switch evCode {
	case keyLCtrl, keyRCtrl:
		ev.Key = KeyCtrl
	case keyM:
		ev.Key = KeyM
	case keyEsc:
		ev.Key = KeyEscape
	default:
		return Event{}, false
	}
	switch evValue {
	case keyPress:
		ev.Kind = Press
	case keyRelease:
		ev.Kind = Release
	case keyRepeat:
		ev.Kind = Repeat
	default:
		return Event{}, false
	}
	return ev, true
}

func (h *evdevListener) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, f := range h.files {
			f.Close()
		}
	})
}

func (h *evdevListener) Events() <-chan Event {
	return h.events
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
