package transcriber

import "strings"

// whisper emits bracketed markers such as [BLANK_AUDIO] or (silence) for
// recordings without speech.
var blankMarkers = []string{"[BLANK_AUDIO]", "[ Silence ]", "(silence)", "[SILENCE]"}

func stripBlank(text string) string {
	for _, m := range blankMarkers {
		text = strings.ReplaceAll(text, m, "")
	}
	return strings.TrimSpace(text)
}
