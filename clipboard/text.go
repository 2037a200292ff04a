package clipboard

import (
	"fmt"

	cb "github.com/atotto/clipboard"
)

// Text is a plain-text-only Store backed by the platform clipboard tools
// (pbcopy, xclip/xsel, wl-copy). Used when no native backend is available.
type Text struct{}

func NewText() (*Text, error) {
	if cb.Unsupported {
		return nil, fmt.Errorf("no clipboard utilities available (install xclip, xsel or wl-clipboard)")
	}
	return &Text{}, nil
}

func (t *Text) ReadAll() (Snapshot, error) {
	s, err := cb.ReadAll()
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return Snapshot{{Type: TypeText, Data: []byte(s)}}, nil
}

func (t *Text) Clear() error {
	return cb.WriteAll("")
}

func (t *Text) WriteText(text string, _ bool) error {
	return cb.WriteAll(text)
}

func (t *Text) WriteRaw(typ string, data []byte) error {
	if typ != TypeText {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}
	return cb.WriteAll(string(data))
}
