//go:build !linux

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"
)

// Without raw key access a lone Ctrl cannot be observed, so each action is
// bound to a chord with Ctrl+Shift.
type binding struct {
	hk  *hotkey.Hotkey
	key Key
}

type xListener struct {
	bindings []binding
	events   chan Event
	stop     chan struct{}
	once     sync.Once
}

func New() Listener {
	mods := []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}
	return &xListener{
		bindings: []binding{
			{hotkey.New(mods, hotkey.KeySpace), KeyCtrl},
			{hotkey.New(mods, hotkey.KeyM), KeyM},
			{hotkey.New(mods, hotkey.KeyEscape), KeyEscape},
		},
		events: make(chan Event, 16),
	}
}

func (h *xListener) Register() error {
	h.stop = make(chan struct{})
	for i, b := range h.bindings {
		if err := b.hk.Register(); err != nil {
			for _, prev := range h.bindings[:i] {
				prev.hk.Unregister()
			}
			return fmt.Errorf("register %s chord: %w", b.key, err)
		}
		go h.forward(b)
	}
	return nil
}

func (h *xListener) forward(b binding) {
	for {
		var ev Event
		select {
		case <-b.hk.Keydown():
			ev = Event{Key: b.key, Kind: Press, Chord: true}
		case <-b.hk.Keyup():
			ev = Event{Key: b.key, Kind: Release, Chord: true}
		case <-h.stop:
			return
		}
		select {
		case h.events <- ev:
		case <-h.stop:
			return
		}
	}
}

func (h *xListener) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, b := range h.bindings {
			b.hk.Unregister()
		}
	})
}

func (h *xListener) Events() <-chan Event {
	return h.events
}

func Diagnose() (string, error) {
	return "hotkey support available (Ctrl+Shift+Space record, Ctrl+Shift+M mode, Ctrl+Shift+Esc clear)", nil
}
