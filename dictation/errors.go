package dictation

import "errors"

var (
	// ErrDevice means audio capture could not be opened or started. The rest
	// of the app keeps running; every transcription then yields Empty.
	ErrDevice = errors.New("audio device unavailable")

	// ErrEngine means the speech model failed to load. Every transcription
	// then yields Failure.
	ErrEngine = errors.New("speech engine unavailable")

	// ErrTranscription wraps an engine error or panic during one attempt.
	ErrTranscription = errors.New("transcription failed")

	ErrClipboard = errors.New("clipboard write failed")
	ErrTyping    = errors.New("simulated typing failed")
)
