//go:build linux

package input

import "golang.org/x/sys/unix"

type uinputOracle struct{}

// NewOracle reports whether /dev/uinput is writable by this process.
func NewOracle() Oracle {
	return uinputOracle{}
}

func (uinputOracle) Trusted() bool {
	path, err := uinputPath()
	if err != nil {
		return false
	}
	return unix.Access(path, unix.W_OK) == nil
}
