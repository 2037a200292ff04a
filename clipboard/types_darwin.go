//go:build darwin

package clipboard

// Uniform type identifiers used by NSPasteboard.
const (
	TypeText = "public.utf8-plain-text"
	TypePNG  = "public.png"
)
