package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	appName      = "pastekit"
	diagFileName = "diagnostics_log.txt"
)

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	pid      int
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: --logpath flag
	if flagPath != "" {
		return absPath(flagPath)
	}

	// Priority 2: PASTEKIT_LOG_PATH environment variable
	if envPath := os.Getenv("PASTEKIT_LOG_PATH"); envPath != "" {
		return absPath(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absPath(p string) (string, error) {
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

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	f, err := os.OpenFile(filepath.Join(dir, diagFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	diagFile = f

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05.000",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// PasteStart records the configuration a paste was resolved with. The text
// itself is never logged, only its length.
func PasteStart(id uint64, strategy string, chars int, restore bool, restoreDelay time.Duration, snapshotItems int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Uint64("op", id).
		Str("strategy", strategy).
		Int("chars", chars).
		Bool("restore", restore).
		Dur("restore_delay", restoreDelay).
		Int("snapshot", snapshotItems).
		Msg("paste_start")
}

func PasteDispatch(id uint64, strategy string, elapsed time.Duration) {
	if !logReady {
		return
	}
	diagLog.Info().
		Uint64("op", id).
		Str("strategy", strategy).
		Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
		Msg("paste_dispatch")
}

// PasteFailure logs a swallowed failure together with the step it happened in.
func PasteFailure(id uint64, strategy, step string, err error) {
	if !logReady {
		return
	}
	diagLog.Error().
		Uint64("op", id).
		Str("strategy", strategy).
		Str("step", step).
		Err(err).
		Msg("paste_failure")
}

func ClipboardRestore(id uint64, items int, outcome string, elapsed time.Duration) {
	if !logReady {
		return
	}
	diagLog.Info().
		Uint64("op", id).
		Int("items", items).
		Str("outcome", outcome).
		Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
		Msg("clipboard_restore")
}

func ClipboardError(id uint64, step string, err error) {
	if !logReady {
		return
	}
	diagLog.Warn().
		Uint64("op", id).
		Str("step", step).
		Err(err).
		Msg("clipboard_error")
}

func SessionStart(version, store string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("version", version).
		Str("store", store).
		Msg("session_start")
}
