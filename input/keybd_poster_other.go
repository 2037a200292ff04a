//go:build !darwin && !linux

package input

import "fmt"

type keybdPoster struct{}

// NewPoster injects raw key events through keybd_event.
func NewPoster() Poster {
	return keybdPoster{}
}

func (keybdPoster) Post(events []Event) error {
	plan, err := strokes(events)
	if err != nil {
		return err
	}
	if err := initKeyBonding(); err != nil {
		return fmt.Errorf("%w: keybd_event init: %v", ErrEventConstruction, err)
	}

	kbMu.Lock()
	defer kbMu.Unlock()
	for _, s := range plan {
		kb.Clear()
		kb.SetKeys(s.code)
		kb.HasCTRL(s.ctrl)
		if s.down {
			err = kb.Press()
		} else {
			err = kb.Release()
		}
		if err != nil {
			return err
		}
	}
	return nil
}
