//go:build linux

package input

// Kernel key codes from linux/input-event-codes.h. Paste on Linux desktops is
// Ctrl+V, so the paste modifier is KEY_LEFTCTRL.
const (
	KeyCommand Key = 29
	KeyV       Key = 47
	KeyReturn  Key = 28
)

// uinput has no per-event modifier mask; the flag only tags the event.
const FlagCommand Flags = 1 << 0
