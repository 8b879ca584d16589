package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func TestResolveDirFlag(t *testing.T) {
	got, err := ResolveDir("/tmp/mylog")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mylog" {
		t.Errorf("got %q, want /tmp/mylog", got)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("CHATTY_LOG_PATH", "/tmp/chatty-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/chatty-env-log" {
		t.Errorf("got %q, want /tmp/chatty-env-log", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("CHATTY_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Error("expected non-empty default directory")
	}
}

func TestInitCreatesFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(false, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(tmp, FileName)); err != nil {
		t.Errorf("%s not created: %v", FileName, err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "transcribe_log.txt")); err == nil {
		t.Error("transcript log must not be written")
	}
}

func TestEventsReachFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(false, nil); err != nil {
		t.Fatal(err)
	}
	SessionStart("whisper", "default", "dots")
	Transcription("text", 32000, 1500*time.Millisecond, 11)
	Debugf("hidden %d", 1)
	Close()

	data, err := os.ReadFile(filepath.Join(tmp, FileName))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"session_start", "engine=whisper", "transcription", "audio_s=2", "chars=11"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
}

func TestDebugMirror(t *testing.T) {
	setupLogDir(t)

	var mirror strings.Builder
	if err := Init(true, &mirror); err != nil {
		t.Fatal(err)
	}
	Debugf("visible %d", 2)
	Close()

	if !strings.Contains(mirror.String(), "visible 2") {
		t.Errorf("mirror missing debug line: %q", mirror.String())
	}
}

func TestLoggingBeforeInit(t *testing.T) {
	setupLogDir(t)
	Info("dropped")
	Errorf("dropped %d", 1)
	Output(nil, nil)
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(false, nil); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}
