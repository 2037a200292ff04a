//go:build !darwin && !linux

package input

// NewOracle always reports trusted; there is no permission gate here.
func NewOracle() Oracle {
	return OracleFunc(func() bool { return true })
}

// Verify has no way to read injected events back on this platform.
func Verify() (string, error) {
	return "", ErrUnsupported
}
