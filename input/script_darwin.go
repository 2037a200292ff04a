//go:build darwin

package input

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const scriptTimeout = 5 * time.Second

type osascript struct{}

// NewScripter drives System Events through osascript.
func NewScripter() Scripter {
	return osascript{}
}

func (osascript) Keystroke(c Chord) error {
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", "-e", appleScript(c))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
