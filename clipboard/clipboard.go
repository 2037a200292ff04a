// Package clipboard reads and writes typed entries on the system clipboard.
//
// Every backend exposes the same Store interface: a flat, ordered list of
// (type tag, bytes) representations. Restoring a Snapshot recreates the
// captured state as a single multi-representation item.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrUnsupportedType = errors.New("clipboard: unsupported type")

// Representation is one typed payload exposed by a clipboard item.
type Representation struct {
	Type string
	Data []byte
}

// Snapshot holds every representation of every item, in the order the store
// reported them. Duplicate type tags from different items are kept.
type Snapshot []Representation

func (s Snapshot) Empty() bool { return len(s) == 0 }

func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Type != o[i].Type || !bytes.Equal(s[i].Data, o[i].Data) {
			return false
		}
	}
	return true
}

// Clone deep-copies the snapshot so later store writes can't alias it.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for i, r := range s {
		out[i] = Representation{Type: r.Type, Data: bytes.Clone(r.Data)}
	}
	return out
}

// Text returns the first plain-text representation, if any.
func (s Snapshot) Text() (string, bool) {
	for _, r := range s {
		if r.Type == TypeText {
			return string(r.Data), true
		}
	}
	return "", false
}

type Store interface {
	// ReadAll captures every item and representation currently held.
	ReadAll() (Snapshot, error)
	Clear() error
	// WriteText replaces the clipboard with text as the sole entry. transient
	// asks clipboard-history tools to skip recording it.
	WriteText(text string, transient bool) error
	// WriteRaw adds one representation to the current item.
	WriteRaw(typ string, data []byte) error
}

// Restore clears the store and writes every representation back. All
// representations are attempted; the first error is returned.
func Restore(st Store, snap Snapshot) error {
	if err := st.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	var firstErr error
	for _, r := range snap {
		if err := st.WriteRaw(r.Type, r.Data); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("write %s: %w", r.Type, err)
		}
	}
	return firstErr
}
