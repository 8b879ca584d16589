package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const FileName = "diagnostics_log.txt"

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady atomic.Bool
	pid      int
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		return absolute(flagPath)
	}

	// Priority 2: CHATTY_LOG_PATH environment variable
	if envPath := os.Getenv("CHATTY_LOG_PATH"); envPath != "" {
		return absolute(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// Init opens the diagnostics log. With debug set, debug events are kept;
// mirror, if non-nil, receives a copy of every line (stderr when no TUI
// owns the terminal).
func Init(debug bool, mirror io.Writer) error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error
	diagPath := filepath.Join(dir, FileName)
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	if mirror != nil {
		out = zerolog.MultiLevelWriter(out, zerolog.ConsoleWriter{Out: mirror, TimeFormat: "15:04:05"})
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	diagLog = zerolog.New(out).Level(level).With().Timestamp().Int("pid", pid).Logger()

	logReady.Store(true)
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	logReady.Store(false)
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
}

func Info(msg string) {
	if logReady.Load() {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady.Load() {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady.Load() {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady.Load() {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func State(from, to string) {
	if !logReady.Load() {
		return
	}
	diagLog.Debug().
		Str("from", from).
		Str("to", to).
		Msg("state")
}

// Transcription records one attempt. The text itself is never logged.
func Transcription(outcome string, samples int, elapsed time.Duration, chars int) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("outcome", outcome).
		Float64("audio_s", float64(samples)/16000).
		Float64("total_ms", float64(elapsed.Microseconds())/1000).
		Int("chars", chars).
		Msg("transcription")
}

func Output(copyErr, typeErr error) {
	if !logReady.Load() {
		return
	}
	ev := diagLog.Info().
		Bool("copied", copyErr == nil).
		Bool("typed", copyErr == nil && typeErr == nil)
	if copyErr != nil {
		ev = ev.AnErr("copy_err", copyErr)
	}
	if typeErr != nil {
		ev = ev.AnErr("type_err", typeErr)
	}
	ev.Msg("output")
}

func SessionStart(engine, device, visual string) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("engine", engine).
		Str("device", device).
		Str("visual", visual).
		Msg("session_start")
}

func SessionEnd(count int) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Int("count", count).
		Msg("session_end")
}
