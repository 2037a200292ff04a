// Package loop runs deferred callbacks on a single goroutine in fire-time
// order, the way a UI main queue would. Tasks due at the same instant run in
// the order they were scheduled.
package loop

import (
	"container/heap"
	"sync"
	"time"

	"pastekit/log"
)

type task struct {
	at   time.Time
	seq  uint64
	name string
	fn   func()
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

type Queue struct {
	mu     sync.Mutex
	tasks  taskHeap
	seq    uint64
	closed bool

	// execMu is held while a task runs so Flush never overlaps the loop.
	execMu sync.Mutex

	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New starts the queue goroutine.
func New() *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// After schedules fn to run d from now. Negative delays run as soon as possible.
func (q *Queue) After(d time.Duration, name string, fn func()) {
	if d < 0 {
		d = 0
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		log.Warnf("loop: dropped %s, queue closed", name)
		return
	}
	q.seq++
	heap.Push(&q.tasks, &task{at: time.Now().Add(d), seq: q.seq, name: name, fn: fn})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) Async(name string, fn func()) {
	q.After(0, name, fn)
}

// Len reports how many tasks are waiting to fire.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Flush runs every pending task immediately, in fire-time order, on the
// calling goroutine. Tasks scheduled by flushed tasks are run too.
func (q *Queue) Flush() int {
	q.execMu.Lock()
	defer q.execMu.Unlock()

	n := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return n
		}
		t := heap.Pop(&q.tasks).(*task)
		q.mu.Unlock()
		exec(t)
		n++
	}
}

// Close stops the goroutine. Pending tasks are dropped; call Flush first to
// run them.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.quit)
	})
	<-q.done
}

// popDue removes the head task if it is due. Otherwise it returns how long
// until the head fires, or -1 when the queue is empty.
func (q *Queue) popDue(now time.Time) (*task, time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, -1
	}
	if wait := q.tasks[0].at.Sub(now); wait > 0 {
		return nil, wait
	}
	return heap.Pop(&q.tasks).(*task), 0
}

func (q *Queue) run() {
	defer close(q.done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		q.execMu.Lock()
		t, wait := q.popDue(time.Now())
		if t != nil {
			exec(t)
			q.execMu.Unlock()
			continue
		}
		q.execMu.Unlock()

		var fire <-chan time.Time
		if wait > 0 {
			timer.Reset(wait)
			fire = timer.C
		}
		select {
		case <-q.wake:
		case <-fire:
		case <-q.quit:
			timer.Stop()
			return
		}
		timer.Stop()
	}
}

func exec(t *task) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("loop: task %s panicked: %v", t.name, r)
		}
	}()
	t.fn()
}
