//go:build darwin

package clipboard

// Open returns the platform store and a short name for diagnostics. The
// pasteboard server holds the data, so resident makes no difference here.
func Open(resident bool) (Store, string, error) {
	return NewPasteboard(), "nspasteboard", nil
}
