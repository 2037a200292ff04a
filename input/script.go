package input

import (
	"fmt"
	"strings"
)

// appleScript renders a System Events keystroke for c.
func appleScript(c Chord) string {
	key := escapeAppleScript(c.Key)
	if c.Command {
		return fmt.Sprintf(`tell application "System Events" to keystroke "%s" using command down`, key)
	}
	return fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, key)
}

// escapeAppleScript escapes characters that are special inside an
// AppleScript double-quoted string literal.
func escapeAppleScript(s string) string {
	// Backslash must be first to avoid double-escaping.
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
