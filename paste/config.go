package paste

import "time"

const (
	// DispatchDelay lets the clipboard write settle before the paste
	// keystroke reaches the target application.
	DispatchDelay = 50 * time.Millisecond
	// MinRestoreDelay is the floor for restoring the previous clipboard, so
	// the target has consumed the staged text before it is overwritten.
	MinRestoreDelay = 250 * time.Millisecond
)

// Config is the per-call configuration. It is resolved once when a paste
// starts and never re-read by that paste's continuations.
type Config struct {
	RestoreClipboard bool
	Scripted         bool
	RestoreDelay     time.Duration
}

func (c Config) Strategy() Strategy {
	if c.Scripted {
		return StrategyScripted
	}
	return StrategyCommandV
}

// EffectiveRestoreDelay clamps RestoreDelay to MinRestoreDelay.
func (c Config) EffectiveRestoreDelay() time.Duration {
	return max(c.RestoreDelay, MinRestoreDelay)
}

type ConfigSource interface {
	Resolve() Config
}

// StaticConfig is a ConfigSource that never changes.
type StaticConfig Config

func (s StaticConfig) Resolve() Config { return Config(s) }

// Request is one paste: the text plus the configuration it runs with.
type Request struct {
	Text   string
	Config Config
}

// Strategy selects how the paste keystroke is delivered. Exactly one
// strategy runs per paste; they are never chained.
type Strategy int

const (
	// StrategyCommandV posts raw key events at the lowest input layer.
	StrategyCommandV Strategy = iota
	// StrategyScripted asks the OS automation layer for one keystroke.
	StrategyScripted
	// StrategyNone marks operations that send no paste keystroke, such as
	// PressEnter.
	StrategyNone
)

func (s Strategy) String() string {
	switch s {
	case StrategyCommandV:
		return "command-v"
	case StrategyScripted:
		return "scripted"
	case StrategyNone:
		return "none"
	default:
		return "unknown"
	}
}
