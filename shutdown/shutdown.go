// Package shutdown makes sure queued clipboard restores still run when the
// process is asked to stop.
package shutdown

import (
	"os"
	"os/signal"

	"pastekit/log"
)

// Flusher runs every pending task now and reports how many ran.
type Flusher interface {
	Flush() int
}

// Notify relays the platform's stop signals to ch.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, signals...)
}

func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}

// Drain flushes q in response to sig.
func Drain(q Flusher, sig os.Signal) int {
	n := q.Flush()
	log.Warnf("%v received, ran %d pending tasks early", sig, n)
	return n
}
