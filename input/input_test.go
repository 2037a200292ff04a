package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasteChordOrder(t *testing.T) {
	want := []Event{
		{Key: KeyCommand, Down: true, Flags: FlagCommand},
		{Key: KeyV, Down: true, Flags: FlagCommand},
		{Key: KeyV, Down: false, Flags: FlagCommand},
		{Key: KeyCommand, Down: false, Flags: FlagCommand},
	}
	assert.Equal(t, want, PasteChord())
}

func TestPasteChordEveryEventCarriesModifier(t *testing.T) {
	for i, ev := range PasteChord() {
		assert.NotZero(t, ev.Flags&FlagCommand, "event %d missing command flag", i)
	}
}

func TestReturnKeyUnmodified(t *testing.T) {
	evs := ReturnKey()
	if assert.Len(t, evs, 2) {
		assert.Equal(t, Event{Key: KeyReturn, Down: true}, evs[0])
		assert.Equal(t, Event{Key: KeyReturn, Down: false}, evs[1])
	}
}

func TestAppleScript(t *testing.T) {
	tests := []struct {
		chord Chord
		want  string
	}{
		{PasteKeystroke, `tell application "System Events" to keystroke "v" using command down`},
		{Chord{Key: "a"}, `tell application "System Events" to keystroke "a"`},
		{Chord{Key: `"`}, `tell application "System Events" to keystroke "\""`},
	}
	for _, tt := range tests {
		if got := appleScript(tt.chord); got != tt.want {
			t.Errorf("appleScript(%+v) = %q, want %q", tt.chord, got, tt.want)
		}
	}
}

func TestEscapeAppleScript(t *testing.T) {
	assert.Equal(t, `a\\b\"c\nd`, escapeAppleScript("a\\b\"c\nd"))
}

func TestOracleFunc(t *testing.T) {
	var o Oracle = OracleFunc(func() bool { return true })
	assert.True(t, o.Trusted())
}
