// Package paste delivers text to the focused application through the
// clipboard, optionally putting the user's previous clipboard back afterwards.
//
// A paste runs in four steps. The current clipboard is snapshotted and the
// text staged synchronously on the caller's goroutine. Two continuations are
// then scheduled from the call time: the paste keystroke after DispatchDelay,
// and the clipboard restore after Config.EffectiveRestoreDelay. They are
// independent, so a failed keystroke never prevents the restore.
package paste

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"pastekit/clipboard"
	"pastekit/input"
	"pastekit/log"
)

var (
	ErrPermissionDenied  = errors.New("paste: input synthesis not authorized")
	ErrEventConstruction = input.ErrEventConstruction
	ErrScriptExecution   = errors.New("paste: script execution failed")
)

// Scheduler runs fn once, d after the call, on the main queue.
type Scheduler interface {
	After(d time.Duration, name string, fn func())
}

type Deps struct {
	Store     clipboard.Store
	Poster    input.Poster
	Scripter  input.Scripter
	Oracle    input.Oracle
	Scheduler Scheduler
	Config    ConfigSource
}

type Sequencer struct {
	store     clipboard.Store
	poster    input.Poster
	scripter  input.Scripter
	oracle    input.Oracle
	sched     Scheduler
	config    ConfigSource
	lastID    atomic.Uint64
	dispatchD time.Duration

	mu sync.Mutex
	// pending is the one restore that will still write back, if any.
	pending *pendingRestore
	// lastDispatch is when the newest paste keystroke is due.
	lastDispatch time.Time
}

type pendingRestore struct {
	snap       clipboard.Snapshot
	superseded bool
}

func New(d Deps) *Sequencer {
	return &Sequencer{
		store:     d.Store,
		poster:    d.Poster,
		scripter:  d.Scripter,
		oracle:    d.Oracle,
		sched:     d.Scheduler,
		config:    d.Config,
		dispatchD: DispatchDelay,
	}
}

// PasteAtCursor resolves the configuration once and pastes text.
func (s *Sequencer) PasteAtCursor(text string) *Operation {
	return s.Paste(Request{Text: text, Config: s.config.Resolve()})
}

func (s *Sequencer) Paste(req Request) *Operation {
	cfg := req.Config
	strategy := cfg.Strategy()
	op := newOperation(s.lastID.Add(1), KindPaste, strategy, cfg.RestoreClipboard)

	s.mu.Lock()
	var slot *pendingRestore
	if cfg.RestoreClipboard {
		slot = &pendingRestore{snap: s.capture(op.ID)}
	}
	if err := s.store.WriteText(req.Text, cfg.RestoreClipboard); err != nil {
		log.ClipboardError(op.ID, "stage", err)
	}
	if slot != nil {
		s.pending = slot
	}
	s.mu.Unlock()

	log.PasteStart(op.ID, strategy.String(), len([]rune(req.Text)), cfg.RestoreClipboard, cfg.EffectiveRestoreDelay(), len(slotSnap(slot)))

	s.sched.After(s.dispatchD, "paste-dispatch", func() { s.dispatch(op) })
	// Read the clock after scheduling so lastDispatch is never earlier than
	// the fire time the scheduler computed.
	s.mu.Lock()
	if due := time.Now().Add(s.dispatchD); due.After(s.lastDispatch) {
		s.lastDispatch = due
	}
	s.mu.Unlock()
	if slot != nil {
		s.sched.After(cfg.EffectiveRestoreDelay(), "clipboard-restore", func() { s.restore(op, slot) })
	}
	return op
}

// PressEnter posts a single Return keystroke, no clipboard involved. It is
// queued no earlier than the newest pending paste keystroke so Enter lands
// after the pasted text.
func (s *Sequencer) PressEnter() *Operation {
	op := newOperation(s.lastID.Add(1), KindEnter, StrategyNone, false)

	s.mu.Lock()
	delay := max(time.Until(s.lastDispatch), 0)
	s.mu.Unlock()

	s.sched.After(delay, "press-enter", func() {
		var err error
		if !s.oracle.Trusted() {
			err = fmt.Errorf("enter: %w", ErrPermissionDenied)
		} else if perr := s.poster.Post(input.ReturnKey()); perr != nil {
			err = postError(perr)
		}
		if err != nil {
			log.PasteFailure(op.ID, "enter", "dispatch", err)
		} else {
			log.PasteDispatch(op.ID, "enter", time.Since(op.start))
		}
		op.finishDispatch(err)
	})
	return op
}

// capture returns the snapshot this paste should restore. If an earlier
// restore is still pending, the clipboard currently holds that paste's
// staged text, so its snapshot is inherited and the earlier restore is
// retired. Must hold s.mu.
func (s *Sequencer) capture(id uint64) clipboard.Snapshot {
	if p := s.pending; p != nil {
		p.superseded = true
		s.pending = nil
		return p.snap
	}
	snap, err := s.store.ReadAll()
	if err != nil {
		log.ClipboardError(id, "snapshot", err)
		return nil
	}
	return snap.Clone()
}

func (s *Sequencer) dispatch(op *Operation) {
	err := s.sendPaste(op.Strategy)
	if err != nil {
		log.PasteFailure(op.ID, op.Strategy.String(), "dispatch", err)
	} else {
		log.PasteDispatch(op.ID, op.Strategy.String(), time.Since(op.start))
	}
	op.finishDispatch(err)
}

func (s *Sequencer) sendPaste(strategy Strategy) error {
	if !s.oracle.Trusted() {
		return fmt.Errorf("%s: %w", strategy, ErrPermissionDenied)
	}
	switch strategy {
	case StrategyScripted:
		if err := s.scripter.Keystroke(input.PasteKeystroke); err != nil {
			return fmt.Errorf("%w: %v", ErrScriptExecution, err)
		}
		return nil
	default:
		if err := s.poster.Post(input.PasteChord()); err != nil {
			return postError(err)
		}
		return nil
	}
}

func postError(err error) error {
	if errors.Is(err, ErrEventConstruction) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrEventConstruction, err)
}

func (s *Sequencer) restore(op *Operation, slot *pendingRestore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := RestoreApplied
	switch {
	case slot.superseded:
		outcome = RestoreSuperseded
	case slot.snap.Empty():
		outcome = RestoreSkippedEmpty
	default:
		if err := clipboard.Restore(s.store, slot.snap); err != nil {
			log.ClipboardError(op.ID, "restore", err)
			outcome = RestoreFailed
		}
	}
	if s.pending == slot {
		s.pending = nil
	}

	log.ClipboardRestore(op.ID, len(slot.snap), outcome.String(), time.Since(op.start))
	op.finishRestore(outcome)
}

func slotSnap(p *pendingRestore) clipboard.Snapshot {
	if p == nil {
		return nil
	}
	return p.snap
}
