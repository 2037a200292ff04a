package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastekit/paste"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestDefaults(t *testing.T) {
	isolate(t)

	s, err := New("")
	require.NoError(t, err)

	assert.Equal(t, paste.Config{}, s.Resolve())
	assert.Equal(t, paste.MinRestoreDelay, s.Resolve().EffectiveRestoreDelay())
	assert.Empty(t, s.ConfigFile())
	assert.False(t, s.Watch())
}

func TestFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, `
restoreClipboardAfterPaste = true
UseAppleScriptPaste = true
clipboardRestoreDelay = 0.6
`)

	s, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, paste.Config{
		RestoreClipboard: true,
		Scripted:         true,
		RestoreDelay:     600 * time.Millisecond,
	}, s.Resolve())
	assert.Equal(t, path, s.ConfigFile())
}

func TestDefaultDirFile(t *testing.T) {
	isolate(t)
	dir, err := DefaultDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeConfig(t, filepath.Join(dir, "config.toml"), "restoreClipboardAfterPaste = true\n")

	s, err := New("")
	require.NoError(t, err)
	assert.True(t, s.Resolve().RestoreClipboard)
}

func TestExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := New(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestMalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "restoreClipboardAfterPaste = = true\n")

	_, err := New(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "restoreClipboardAfterPaste = false\nclipboardRestoreDelay = 2\n")
	t.Setenv("PASTEKIT_RESTORE_CLIPBOARD", "true")
	t.Setenv("PASTEKIT_SCRIPTED_PASTE", "1")
	t.Setenv("PASTEKIT_RESTORE_DELAY", "0.1")

	s, err := New(path)
	require.NoError(t, err)

	cfg := s.Resolve()
	assert.True(t, cfg.RestoreClipboard)
	assert.True(t, cfg.Scripted)
	assert.Equal(t, 100*time.Millisecond, cfg.RestoreDelay)
	assert.Equal(t, paste.MinRestoreDelay, cfg.EffectiveRestoreDelay())
}

func TestReload(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "restoreClipboardAfterPaste = false\n")

	s, err := New(path)
	require.NoError(t, err)

	var seen []paste.Config
	s.OnChange(func(c paste.Config) { seen = append(seen, c) })

	writeConfig(t, path, "restoreClipboardAfterPaste = true\nclipboardRestoreDelay = 1.5\n")
	require.NoError(t, s.reload())

	want := paste.Config{RestoreClipboard: true, RestoreDelay: 1500 * time.Millisecond}
	assert.Equal(t, want, s.Resolve())
	assert.Equal(t, []paste.Config{want}, seen)

	// Unchanged contents do not notify again.
	require.NoError(t, s.reload())
	assert.Len(t, seen, 1)
}

func TestReloadKeepsLastGoodConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "restoreClipboardAfterPaste = true\n")

	s, err := New(path)
	require.NoError(t, err)

	writeConfig(t, path, "restoreClipboardAfterPaste = [\n")
	assert.Error(t, s.reload())
	assert.True(t, s.Resolve().RestoreClipboard)
}

func TestWatchPicksUpEdits(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "UseAppleScriptPaste = false\n")

	s, err := New(path)
	require.NoError(t, err)
	require.True(t, s.Watch())
	assert.True(t, s.Watch(), "second Watch is a no-op")

	writeConfig(t, path, "UseAppleScriptPaste = true\n")

	assert.Eventually(t, func() bool { return s.Resolve().Scripted }, 3*time.Second, 20*time.Millisecond)
}
