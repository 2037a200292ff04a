//go:build !darwin

package clipboard

import (
	"errors"

	"pastekit/log"
)

// Open returns the platform store and a short name for diagnostics.
//
// A resident process keeps serving the selection itself, so the native
// backend (text and images) is preferred. A short-lived one prefers the
// text backend, whose helper tools keep holding the selection after exit.
func Open(resident bool) (Store, string, error) {
	if !resident {
		t, terr := NewText()
		if terr == nil {
			return t, "text", nil
		}
		n, nerr := NewNative()
		if nerr != nil {
			return nil, "", errors.Join(terr, nerr)
		}
		log.Warnf("clipboard tools unavailable, contents are served until exit: %v", terr)
		return n, "native", nil
	}

	n, nerr := NewNative()
	if nerr == nil {
		return n, "native", nil
	}
	log.Warnf("native clipboard unavailable, falling back to text: %v", nerr)

	t, terr := NewText()
	if terr != nil {
		return nil, "", errors.Join(nerr, terr)
	}
	return t, "text", nil
}
