//go:generate mockgen -source=input.go -destination=mocks/mock_input.go -package=mock_input

// Package input synthesizes keyboard events for the focused application.
//
// Two layers are exposed. A Poster injects raw key events at the lowest
// layer the platform offers (CGEvent at the HID tap, uinput on Linux). A
// Scripter asks a higher-level automation facility to type a whole chord.
// Neither checks permissions; consult an Oracle first.
package input

import "errors"

var (
	// ErrEventConstruction means the OS would not allocate an event or
	// event source.
	ErrEventConstruction = errors.New("input: event construction failed")
	ErrUnsupported       = errors.New("input: not supported on this platform")
)

// Key is a platform virtual key code.
type Key uint16

// Flags is a platform modifier-flag bitmask carried by each event.
type Flags uint64

type Event struct {
	Key   Key
	Down  bool
	Flags Flags
}

// PasteChord is the paste shortcut as four events in strict order:
// modifier down, V down, V up, modifier up, each tagged with the modifier.
func PasteChord() []Event {
	return []Event{
		{Key: KeyCommand, Down: true, Flags: FlagCommand},
		{Key: KeyV, Down: true, Flags: FlagCommand},
		{Key: KeyV, Down: false, Flags: FlagCommand},
		{Key: KeyCommand, Down: false, Flags: FlagCommand},
	}
}

// ReturnKey is a single unmodified Return keystroke.
func ReturnKey() []Event {
	return []Event{
		{Key: KeyReturn, Down: true},
		{Key: KeyReturn, Down: false},
	}
}

type Poster interface {
	// Post builds every event first and injects them only if all were
	// built, so a construction failure never leaves a modifier held.
	Post(events []Event) error
}

// Chord names a keystroke for a Scripter, e.g. {Key: "v", Command: true}.
type Chord struct {
	Key     string
	Command bool
}

var PasteKeystroke = Chord{Key: "v", Command: true}

type Scripter interface {
	Keystroke(c Chord) error
}

// Oracle reports whether this process may synthesize input.
type Oracle interface {
	Trusted() bool
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func() bool

func (f OracleFunc) Trusted() bool { return f() }
