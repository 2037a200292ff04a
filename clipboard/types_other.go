//go:build !darwin

package clipboard

// MIME targets used by X11/Wayland selections.
const (
	TypeText = "text/plain;charset=utf-8"
	TypePNG  = "image/png"
)
