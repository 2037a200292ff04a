//go:build !darwin && !linux

package input

// Windows virtual key codes.
const (
	KeyCommand Key = 0x11 // VK_CONTROL
	KeyV       Key = 0x56
	KeyReturn  Key = 0x0D
)

const FlagCommand Flags = 1 << 0
