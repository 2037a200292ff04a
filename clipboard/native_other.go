//go:build !darwin

package clipboard

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	xclip "golang.design/x/clipboard"
)

var (
	nativeOnce sync.Once
	nativeErr  error
)

func initNative() error {
	nativeOnce.Do(func() {
		nativeErr = xclip.Init()
	})
	return nativeErr
}

// Native talks to the X11/Windows clipboard through golang.design/x/clipboard.
// It knows text and PNG images only, and the selection holds one format at a
// time, so the last representation written wins.
//
// On X11 the written data is served from this process until another client
// takes ownership; call Persist before exiting.
type Native struct {
	mu    sync.Mutex
	owned <-chan struct{}
}

func NewNative() (*Native, error) {
	if err := initNative(); err != nil {
		return nil, fmt.Errorf("native clipboard init: %w", err)
	}
	return &Native{}, nil
}

func (n *Native) write(f xclip.Format, data []byte) {
	owned := xclip.Write(f, data)
	n.mu.Lock()
	n.owned = owned
	n.mu.Unlock()
}

// Owned is closed once another client takes the selection over from the
// last write. It is nil before the first write.
func (n *Native) Owned() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.owned
}

func (n *Native) ReadAll() (Snapshot, error) {
	var out Snapshot
	if b := xclip.Read(xclip.FmtText); len(b) > 0 {
		out = append(out, Representation{Type: TypeText, Data: b})
	}
	if b := xclip.Read(xclip.FmtImage); len(b) > 0 {
		out = append(out, Representation{Type: TypePNG, Data: b})
	}
	return out, nil
}

func (n *Native) Clear() error {
	n.write(xclip.FmtText, []byte{})
	return nil
}

// WriteText ignores the transient hint; X11 has no portable marker for it.
func (n *Native) WriteText(text string, _ bool) error {
	n.write(xclip.FmtText, []byte(text))
	return nil
}

func (n *Native) WriteRaw(typ string, data []byte) error {
	switch typ {
	case TypeText:
		n.write(xclip.FmtText, data)
	case TypePNG:
		n.write(xclip.FmtImage, data)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}
	return nil
}

// Persist hands text contents to the forking clipboard tools so they outlive
// the process. Anything else (images, or no tools installed) is served until
// another client takes ownership or ctx ends.
func (n *Native) Persist(ctx context.Context) error {
	owned := n.Owned()
	if runtime.GOOS == "windows" || owned == nil {
		return nil
	}
	snap, err := n.ReadAll()
	if err != nil || snap.Empty() {
		return err
	}
	if s, ok := snap.Text(); ok && len(snap) == 1 {
		if t, err := NewText(); err == nil {
			return t.WriteText(s, false)
		}
	}
	select {
	case <-owned:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("clipboard still owned by this process: %w", ctx.Err())
	}
}
