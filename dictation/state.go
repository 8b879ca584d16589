package dictation

// State is the recording state machine's current position. Only the
// controller goroutine changes it.
type State int32

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
	StateDisplaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// Status is the transient one-line message shown under the indicator.
type Status struct {
	Text  string
	Color string // "#rrggbb"
}

var (
	statusIdle       = Status{"Ctrl: start", "#888888"}
	statusListening  = Status{"Listening...", "#00ff88"}
	statusProcessing = Status{"Processing...", "#ffaa00"}
	statusCopying    = Status{"Auto-copying...", "#ffaa00"}
	statusPasted     = Status{"Text pasted!", "#00ff88"}
	statusClipOnly   = Status{"Copied to clipboard - paste with Ctrl+V", "#ffaa00"}
	statusCopyFailed = Status{"Copy failed", "#ff0000"}
	statusNoSpeech   = Status{"No speech. Try again.", "#ff6600"}
	statusError      = Status{"Error. Try again.", "#ff0000"}
	statusNoAudio    = Status{"No microphone", "#ff0000"}
	statusNoEngine   = Status{"No speech model", "#ff0000"}
)

// Display is the transcript currently on screen.
type Display struct {
	Text    string
	Visible bool
}

// Snapshot is a consistent read of everything the render tick needs.
type Snapshot struct {
	State   State
	Status  Status
	Display Display
}
