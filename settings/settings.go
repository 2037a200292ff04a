// Package settings resolves the paste configuration from a TOML file and
// PASTEKIT_* environment variables, reloading when the file changes.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"pastekit/log"
	"pastekit/paste"
)

const (
	KeyRestoreClipboard = "restoreClipboardAfterPaste"
	KeyScriptedPaste    = "UseAppleScriptPaste"
	KeyRestoreDelay     = "clipboardRestoreDelay"
)

var envBindings = map[string]string{
	KeyRestoreClipboard: "PASTEKIT_RESTORE_CLIPBOARD",
	KeyScriptedPaste:    "PASTEKIT_SCRIPTED_PASTE",
	KeyRestoreDelay:     "PASTEKIT_RESTORE_DELAY",
}

// Store caches the resolved paste.Config. Resolve is safe to call from any
// goroutine while a reload is in flight.
type Store struct {
	v *viper.Viper

	mu       sync.RWMutex
	cfg      paste.Config
	watching bool
	onChange []func(paste.Config)
}

// DefaultDir is the directory searched for config.toml when no explicit
// file is given.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pastekit"), nil
}

// New loads settings. An explicit path must exist; with an empty path a
// missing config.toml in DefaultDir just means defaults and environment.
func New(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	v.SetDefault(KeyRestoreClipboard, false)
	v.SetDefault(KeyScriptedPaste, false)
	v.SetDefault(KeyRestoreDelay, 0.0)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := &Store{v: v}
	s.cfg = decode(v)
	return s, nil
}

func decode(v *viper.Viper) paste.Config {
	secs := v.GetFloat64(KeyRestoreDelay)
	return paste.Config{
		RestoreClipboard: v.GetBool(KeyRestoreClipboard),
		Scripted:         v.GetBool(KeyScriptedPaste),
		RestoreDelay:     time.Duration(secs * float64(time.Second)),
	}
}

func (s *Store) Resolve() paste.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// ConfigFile is the file the settings were read from, or "" if none.
func (s *Store) ConfigFile() string {
	return s.v.ConfigFileUsed()
}

// OnChange registers fn to run after every successful reload.
func (s *Store) OnChange(fn func(paste.Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Watch reloads on file changes. Without a config file there is nothing to
// watch and it returns false.
func (s *Store) Watch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching {
		return true
	}
	if s.ConfigFile() == "" {
		return false
	}
	if _, err := os.Stat(s.ConfigFile()); err != nil {
		return false
	}

	s.v.OnConfigChange(func(e fsnotify.Event) {
		if err := s.reload(); err != nil {
			log.Warnf("settings reload (%s %s): %v", e.Op, e.Name, err)
		}
	})
	s.v.WatchConfig()
	s.watching = true
	return true
}

func (s *Store) reload() error {
	if err := s.v.ReadInConfig(); err != nil {
		return err
	}
	cfg := decode(s.v)

	s.mu.Lock()
	changed := cfg != s.cfg
	s.cfg = cfg
	callbacks := make([]func(paste.Config), len(s.onChange))
	copy(callbacks, s.onChange)
	s.mu.Unlock()

	if changed {
		log.Info(fmt.Sprintf("settings reloaded: restore=%t scripted=%t delay=%s",
			cfg.RestoreClipboard, cfg.Scripted, cfg.RestoreDelay))
		for _, fn := range callbacks {
			fn(cfg)
		}
	}
	return nil
}
