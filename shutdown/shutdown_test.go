package shutdown

import (
	"os"
	"testing"
)

type countingFlusher struct{ calls, pending int }

func (c *countingFlusher) Flush() int {
	c.calls++
	n := c.pending
	c.pending = 0
	return n
}

func TestDrain(t *testing.T) {
	f := &countingFlusher{pending: 3}
	if got := Drain(f, os.Interrupt); got != 3 {
		t.Errorf("Drain = %d, want 3", got)
	}
	if got := Drain(f, os.Interrupt); got != 0 {
		t.Errorf("second Drain = %d, want 0", got)
	}
	if f.calls != 2 {
		t.Errorf("Flush called %d times, want 2", f.calls)
	}
}

func TestNotifyStop(t *testing.T) {
	ch := make(chan os.Signal, 1)
	Notify(ch)
	Stop(ch)
	select {
	case s := <-ch:
		t.Errorf("unexpected signal %v", s)
	default:
	}
}
