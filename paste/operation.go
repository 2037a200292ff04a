package paste

import (
	"context"
	"sync"
	"time"
)

type Kind int

const (
	KindPaste Kind = iota
	KindEnter
)

func (k Kind) String() string {
	if k == KindEnter {
		return "enter"
	}
	return "paste"
}

// RestoreOutcome describes what the restore continuation did.
type RestoreOutcome int

const (
	RestoreDisabled RestoreOutcome = iota
	RestorePending
	RestoreApplied
	// RestoreSkippedEmpty: the clipboard was empty at snapshot time, so the
	// pasted text stays.
	RestoreSkippedEmpty
	// RestoreSuperseded: a later paste took over this snapshot.
	RestoreSuperseded
	RestoreFailed
)

func (r RestoreOutcome) String() string {
	switch r {
	case RestoreDisabled:
		return "disabled"
	case RestorePending:
		return "pending"
	case RestoreApplied:
		return "restored"
	case RestoreSkippedEmpty:
		return "skipped_empty"
	case RestoreSuperseded:
		return "superseded"
	case RestoreFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Operation observes one in-flight paste or Enter press. Ignoring it is
// fine; failures are logged either way.
type Operation struct {
	ID       uint64
	Kind     Kind
	Strategy Strategy

	start      time.Time
	dispatched chan struct{}
	done       chan struct{}

	mu          sync.Mutex
	outstanding int
	err         error
	restore     RestoreOutcome
}

func newOperation(id uint64, kind Kind, strategy Strategy, withRestore bool) *Operation {
	op := &Operation{
		ID:          id,
		Kind:        kind,
		Strategy:    strategy,
		start:       time.Now(),
		dispatched:  make(chan struct{}),
		done:        make(chan struct{}),
		outstanding: 1,
	}
	if withRestore {
		op.outstanding++
		op.restore = RestorePending
	}
	return op
}

// Dispatched is closed once the keystroke step has run (or been skipped).
func (op *Operation) Dispatched() <-chan struct{} { return op.dispatched }

// Done is closed once every continuation of the operation has run.
func (op *Operation) Done() <-chan struct{} { return op.done }

// Err is the dispatch failure, if any. Only meaningful after Dispatched.
func (op *Operation) Err() error {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.err
}

func (op *Operation) Restore() RestoreOutcome {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.restore
}

// Wait blocks until Done or ctx ends.
func (op *Operation) Wait(ctx context.Context) error {
	select {
	case <-op.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (op *Operation) finishDispatch(err error) {
	op.mu.Lock()
	op.err = err
	op.mu.Unlock()
	close(op.dispatched)
	op.release()
}

func (op *Operation) finishRestore(outcome RestoreOutcome) {
	op.mu.Lock()
	op.restore = outcome
	op.mu.Unlock()
	op.release()
}

func (op *Operation) release() {
	op.mu.Lock()
	op.outstanding--
	last := op.outstanding == 0
	op.mu.Unlock()
	if last {
		close(op.done)
	}
}
