package hotkey

// Key is one of the few keys the app listens for.
type Key int

const (
	KeyCtrl Key = iota
	KeyM
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyCtrl:
		return "ctrl"
	case KeyM:
		return "m"
	case KeyEscape:
		return "esc"
	default:
		return "?"
	}
}

type Kind int

const (
	Press Kind = iota
	Release
	Repeat // autorepeat while held
)

// Event is a raw key transition. Chord is set by listeners that only see
// complete combinations (the modifier is implied as held).
type Event struct {
	Key   Key
	Kind  Kind
	Chord bool
}

// Listener delivers global key events until Unregister.
type Listener interface {
	Register() error
	Unregister()
	Events() <-chan Event
}
