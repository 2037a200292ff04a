package loop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	names []string
	fired chan string
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan string, 16)}
}

func (r *recorder) task(name string) func() {
	return func() {
		r.mu.Lock()
		r.names = append(r.names, name)
		r.mu.Unlock()
		r.fired <- name
	}
}

func (r *recorder) wait(t *testing.T, n int) []string {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.fired:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d tasks", i, n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func TestQueueRunsInFireTimeOrder(t *testing.T) {
	q := New()
	defer q.Close()
	r := newRecorder()

	q.After(60*time.Millisecond, "late", r.task("late"))
	q.After(10*time.Millisecond, "early", r.task("early"))
	q.After(30*time.Millisecond, "middle", r.task("middle"))

	assert.Equal(t, []string{"early", "middle", "late"}, r.wait(t, 3))
}

func TestQueueFIFOForEqualDelays(t *testing.T) {
	q := New()
	defer q.Close()
	r := newRecorder()

	// Hold the loop so all three tasks land with the same fire time window.
	q.execMu.Lock()
	for _, name := range []string{"a", "b", "c"} {
		q.Async(name, r.task(name))
	}
	q.execMu.Unlock()

	assert.Equal(t, []string{"a", "b", "c"}, r.wait(t, 3))
}

func TestQueueRespectsDelay(t *testing.T) {
	q := New()
	defer q.Close()

	start := time.Now()
	fired := make(chan time.Duration, 1)
	q.After(50*time.Millisecond, "timed", func() { fired <- time.Since(start) })

	select {
	case elapsed := <-fired:
		assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("task never fired")
	}
}

func TestQueueRecoversPanics(t *testing.T) {
	q := New()
	defer q.Close()
	r := newRecorder()

	q.Async("boom", func() { panic("boom") })
	q.Async("after", r.task("after"))

	assert.Equal(t, []string{"after"}, r.wait(t, 1))
}

func TestFlushRunsPendingTasks(t *testing.T) {
	q := New()
	defer q.Close()
	r := newRecorder()

	q.After(time.Hour, "second", r.task("second"))
	q.After(time.Minute, "first", r.task("first"))
	require.Equal(t, 2, q.Len())

	assert.Equal(t, 2, q.Flush())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, []string{"first", "second"}, r.wait(t, 2))
}

func TestAfterCloseIsDropped(t *testing.T) {
	q := New()
	q.Close()
	q.Close()

	q.Async("dropped", func() { t.Error("task ran after Close") })
	assert.Equal(t, 0, q.Len())
}
