//go:build darwin

package input

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>

static int pk_is_trusted(void) {
    return AXIsProcessTrusted() ? 1 : 0;
}

// pk_post builds every event from one HID-state source, then posts them in
// order at the HID event tap. Returns 0 if any event could not be built.
static int pk_post(const unsigned short *keys, const int *down, const unsigned long long *flags, int n) {
    CGEventSourceRef source = CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
    if (source == NULL) {
        return 0;
    }
    CGEventRef *events = calloc(n, sizeof(CGEventRef));
    int ok = 1;
    for (int i = 0; i < n; i++) {
        events[i] = CGEventCreateKeyboardEvent(source, (CGKeyCode)keys[i], down[i] ? true : false);
        if (events[i] == NULL) {
            ok = 0;
            break;
        }
        if (flags[i] != 0) {
            CGEventSetFlags(events[i], (CGEventFlags)flags[i]);
        }
    }
    if (ok) {
        for (int i = 0; i < n; i++) {
            CGEventPost(kCGHIDEventTap, events[i]);
        }
    }
    for (int i = 0; i < n; i++) {
        if (events[i] != NULL) {
            CFRelease(events[i]);
        }
    }
    free(events);
    CFRelease(source);
    return ok;
}
*/
import "C"

import "fmt"

type cgPoster struct{}

func NewPoster() Poster {
	return cgPoster{}
}

func (cgPoster) Post(events []Event) error {
	if len(events) == 0 {
		return nil
	}
	keys := make([]C.ushort, len(events))
	down := make([]C.int, len(events))
	flags := make([]C.ulonglong, len(events))
	for i, ev := range events {
		keys[i] = C.ushort(ev.Key)
		if ev.Down {
			down[i] = 1
		}
		flags[i] = C.ulonglong(ev.Flags)
	}
	if C.pk_post(&keys[0], &down[0], &flags[0], C.int(len(events))) == 0 {
		return fmt.Errorf("%w: CGEventSource or CGEvent allocation failed", ErrEventConstruction)
	}
	return nil
}

type axOracle struct{}

// NewOracle reports Accessibility trust (AXIsProcessTrusted).
func NewOracle() Oracle {
	return axOracle{}
}

func (axOracle) Trusted() bool {
	return C.pk_is_trusted() != 0
}

// Verify reports whether the Accessibility grant needed by the poster is in
// place. Posting is not attempted.
func Verify() (string, error) {
	if !NewOracle().Trusted() {
		return "", fmt.Errorf("accessibility permission not granted (System Settings > Privacy & Security > Accessibility)")
	}
	return "accessibility permission granted, CGEvent paste available", nil
}
