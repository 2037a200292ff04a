//go:build !darwin

package input

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
	kbMu   sync.Mutex
)

func initKeyBonding() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
		// The Linux backend registers its own uinput device, which needs
		// time to be picked up before the first key lands.
		if kbErr == nil && runtime.GOOS == "linux" {
			time.Sleep(2 * time.Second)
		}
	})
	return kbErr
}

type keyBonding struct{}

// NewScripter types whole chords through keybd_event, with Command mapped to
// Ctrl.
func NewScripter() Scripter {
	return keyBonding{}
}

func (keyBonding) Keystroke(c Chord) error {
	code, ok := bondingKeys[c.Key]
	if !ok {
		return fmt.Errorf("keybd_event: no key code for %q", c.Key)
	}
	if err := initKeyBonding(); err != nil {
		return fmt.Errorf("keybd_event init: %w", err)
	}

	kbMu.Lock()
	defer kbMu.Unlock()
	kb.Clear()
	kb.SetKeys(code)
	kb.HasCTRL(c.Command)
	return kb.Launching()
}

var bondingKeys = map[string]int{
	"v":      keybd_event.VK_V,
	"return": keybd_event.VK_ENTER,
}

var bondingCodes = map[Key]int{
	KeyV:      keybd_event.VK_V,
	KeyReturn: keybd_event.VK_ENTER,
}

// stroke is one key transition as keybd_event expresses it: a key code plus
// whether Ctrl is held around it.
type stroke struct {
	code int
	ctrl bool
	down bool
}

// strokes folds the modifier events of a raw sequence into the ctrl flag of
// the keys they surround. keybd_event presses and releases the modifier
// together with each key.
func strokes(events []Event) ([]stroke, error) {
	var out []stroke
	ctrl := false
	for _, ev := range events {
		if ev.Key == KeyCommand {
			ctrl = ev.Down
			continue
		}
		code, ok := bondingCodes[ev.Key]
		if !ok {
			return nil, fmt.Errorf("%w: no keybd_event code for key %#x", ErrEventConstruction, uint16(ev.Key))
		}
		out = append(out, stroke{code: code, ctrl: ctrl || ev.Flags&FlagCommand != 0, down: ev.Down})
	}
	return out, nil
}
