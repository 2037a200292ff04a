package log

import (
	"errors"
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

func readDiag(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, diagFileName))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
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
	t.Setenv("PASTEKIT_LOG_PATH", "/tmp/pastekit-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/pastekit-env-log" {
		t.Errorf("got %q, want /tmp/pastekit-env-log", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("PASTEKIT_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "pastekit") {
		t.Errorf("default dir %q should mention pastekit", got)
	}
}

func TestInitCreatesFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(tmp, diagFileName)); err != nil {
		t.Errorf("%s not created: %v", diagFileName, err)
	}
}

func TestPasteEvents(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}

	PasteStart(7, "command-v", 11, true, 300*time.Millisecond, 2)
	PasteFailure(7, "command-v", "dispatch", errors.New("permission denied"))
	ClipboardRestore(7, 2, "restored", 301*time.Millisecond)

	out := readDiag(t, tmp)
	for _, want := range []string{"paste_start", "strategy=command-v", "chars=11", "paste_failure", "step=dispatch", "permission denied", "clipboard_restore", "outcome=restored"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostics log missing %q, got:\n%s", want, out)
		}
	}
}

func TestHelpersNoopBeforeInit(t *testing.T) {
	tmp := setupLogDir(t)

	Info("not written")
	PasteStart(1, "scripted", 3, false, 0, 0)

	if _, err := os.Stat(filepath.Join(tmp, diagFileName)); !os.IsNotExist(err) {
		t.Errorf("expected no log file before Init, stat err = %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}

func TestLevelHelpers(t *testing.T) {
	tmp := setupLogDir(t)
	if err := Init(); err != nil {
		t.Fatal(err)
	}

	Info("session ready")
	Warnf("native clipboard unavailable: %s", "no display")
	Errorf("loop: task %s panicked: %v", "clipboard-restore", "boom")
	Close()

	out := readDiag(t, tmp)
	for _, want := range []string{
		"INF session ready",
		"WRN native clipboard unavailable: no display",
		"ERR loop: task clipboard-restore panicked: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostics log missing %q, got:\n%s", want, out)
		}
	}
}
