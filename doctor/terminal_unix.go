//go:build !windows

package doctor

import (
	"os"
	"os/exec"
)

// resetTerminal undoes raw mode left behind by a keystroke landing in the
// terminal. stty acts on its stdin, so hand it ours.
func resetTerminal() {
	cmd := exec.Command("stty", "sane")
	cmd.Stdin = os.Stdin
	cmd.Run()
}
