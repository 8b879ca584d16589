package hotkey

import "context"

// Actions is what the router drives. Displaying gates escape.
type Actions interface {
	Toggle()
	Cancel()
	CycleMode()
	Displaying() bool
}

// Router is the HotkeyRouter: raw press/release events in, edge-triggered
// actions out. Each latch is set by the press that fired and cleared only
// by that key's release, so held keys and autorepeat fire once.
//
// The Ctrl press toggles before M can arrive, so on evdev Ctrl+M both
// toggles recording and cycles the mode. Chord listeners (Event.Chord)
// deliver M without a bare Ctrl press and cycle the mode alone.
type Router struct {
	actions Actions

	ctrlHeld  bool
	ctrlLatch bool
	mLatch    bool
	escLatch  bool
}

func NewRouter(a Actions) *Router {
	return &Router{actions: a}
}

func (r *Router) Handle(ev Event) {
	switch ev.Key {
	case KeyCtrl:
		switch ev.Kind {
		case Press:
			r.ctrlHeld = true
			if !r.ctrlLatch {
				r.ctrlLatch = true
				r.actions.Toggle()
			}
		case Repeat:
			r.ctrlHeld = true
		case Release:
			r.ctrlHeld = false
			r.ctrlLatch = false
		}
	case KeyM:
		switch ev.Kind {
		case Press:
			if (r.ctrlHeld || ev.Chord) && !r.mLatch {
				r.mLatch = true
				r.actions.CycleMode()
			}
		case Release:
			r.mLatch = false
		}
	case KeyEscape:
		switch ev.Kind {
		case Press:
			if !r.escLatch {
				r.escLatch = true
				if r.actions.Displaying() {
					r.actions.Cancel()
				}
			}
		case Release:
			r.escLatch = false
		}
	}
}

// Run feeds events from l into the router until ctx ends or l closes.
func (r *Router) Run(ctx context.Context, l Listener) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-l.Events():
			if !ok {
				return nil
			}
			r.Handle(ev)
		}
	}
}
