package hotkey

type FakeListener struct {
	events chan Event
}

func NewFake() *FakeListener {
	return &FakeListener{events: make(chan Event, 16)}
}

func (f *FakeListener) Register() error      { return nil }
func (f *FakeListener) Unregister()          {}
func (f *FakeListener) Events() <-chan Event { return f.events }

func (f *FakeListener) Send(ev Event) { f.events <- ev }

// Tap sends a press followed by a release.
func (f *FakeListener) Tap(k Key) {
	f.events <- Event{Key: k, Kind: Press}
	f.events <- Event{Key: k, Kind: Release}
}
