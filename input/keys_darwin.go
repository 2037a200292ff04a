//go:build darwin

package input

// Carbon virtual key codes (HIToolbox/Events.h).
const (
	KeyCommand Key = 0x37
	KeyV       Key = 0x09
	KeyReturn  Key = 0x24
)

// kCGEventFlagMaskCommand
const FlagCommand Flags = 0x00100000
