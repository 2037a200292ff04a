package doctor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"pastekit/clipboard"
	"pastekit/input"
	"pastekit/loop"
	"pastekit/paste"
	"pastekit/shutdown"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Env is what the checks run against. main wires the real platform pieces.
type Env struct {
	Store     clipboard.Store
	StoreName string
	Poster    input.Poster
	Scripter  input.Scripter
	Oracle    input.Oracle
	Config    paste.Config
	// Verify reports on the low-level keystroke backend; nil skips the check.
	Verify func() (string, error)
}

type runner struct {
	env         Env
	out         io.Writer
	in          *bufio.Reader
	interactive bool
}

// Run executes the diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(env Env) int {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		resetTerminal()
	}
	setupInterruptHandler(env.Store)
	r := &runner{env: env, out: os.Stdout, in: bufio.NewReader(os.Stdin), interactive: interactive}
	if r.run() {
		return 0
	}
	return 1
}

// setupInterruptHandler puts the user's clipboard back if the checks are
// interrupted halfway.
func setupInterruptHandler(st clipboard.Store) {
	saved, err := st.ReadAll()
	if err != nil {
		saved = nil
	}
	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		if !saved.Empty() {
			clipboard.Restore(st, saved)
		}
		fmt.Println("\nInterrupted")
		os.Exit(1)
	}()
}

func (r *runner) run() bool {
	fmt.Fprintln(r.out, "pastekit doctor - system diagnostics")
	fmt.Fprintln(r.out, "====================================")
	fmt.Fprintf(r.out, "clipboard store: %s\n", r.env.StoreName)
	fmt.Fprintf(r.out, "paste strategy:  %s (restore=%t, delay=%s)\n",
		r.env.Config.Strategy(), r.env.Config.RestoreClipboard, r.env.Config.EffectiveRestoreDelay())

	allPass := r.checkPermission()
	if !r.checkKeystrokeBackend() {
		allPass = false
	}
	if !r.checkClipboardRoundTrip() {
		allPass = false
	}
	if !r.checkPreservation() {
		allPass = false
	}
	if allPass && r.interactive && r.env.Oracle.Trusted() {
		if !r.checkPaste() {
			allPass = false
		}
	}

	fmt.Fprintln(r.out)
	if allPass {
		fmt.Fprintln(r.out, "All checks passed!")
	} else {
		fmt.Fprintln(r.out, "Some checks failed. See details above.")
	}
	return allPass
}

func (r *runner) pass(format string, args ...any) bool {
	fmt.Fprintf(r.out, "  %s %s\n", passStyle.Render("PASS:"), fmt.Sprintf(format, args...))
	return true
}

func (r *runner) fail(format string, args ...any) bool {
	fmt.Fprintf(r.out, "  %s %s\n", failStyle.Render("FAIL:"), fmt.Sprintf(format, args...))
	return false
}

func (r *runner) warn(format string, args ...any) {
	fmt.Fprintf(r.out, "  %s\n", warnStyle.Render(fmt.Sprintf(format, args...)))
}

func (r *runner) step(n int, title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "[%d/5] %s\n", n, title)
}

func (r *runner) checkPermission() bool {
	r.step(1, "Input permission")
	if r.env.Oracle.Trusted() {
		return r.pass("this process may synthesize keystrokes")
	}
	r.warn(permissionHint)
	return r.fail("input synthesis not authorized; pastes will stage text but send no keystroke")
}

func (r *runner) checkKeystrokeBackend() bool {
	r.step(2, "Keystroke backend")
	if r.env.Verify == nil {
		r.warn("no verifier for this platform, skipped")
		return true
	}
	msg, err := r.env.Verify()
	if errors.Is(err, input.ErrUnsupported) {
		r.warn("raw key injection not available on this platform, skipped")
		return true
	}
	if err != nil {
		return r.fail("%v", err)
	}
	return r.pass("%s", msg)
}

// withTimeout runs fn off the calling goroutine; clipboard tools can hang
// when the display server is unreachable.
func withTimeout(d time.Duration, fn func() error) error {
	ch := make(chan error, 1)
	go func() { ch <- fn() }()
	select {
	case err := <-ch:
		return err
	case <-time.After(d):
		return fmt.Errorf("timed out after %s (clipboard not accessible?)", d)
	}
}

func (r *runner) checkClipboardRoundTrip() bool {
	r.step(3, "Clipboard write/read")
	st := r.env.Store

	var saved clipboard.Snapshot
	testStr := fmt.Sprintf("pastekit-doctor-%d", time.Now().UnixNano())
	var got string
	err := withTimeout(3*time.Second, func() error {
		var err error
		if saved, err = st.ReadAll(); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if err := st.WriteText(testStr, true); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		snap, err := st.ReadAll()
		if err != nil {
			return fmt.Errorf("read back: %w", err)
		}
		got, _ = snap.Text()
		return nil
	})
	if err != nil {
		return r.fail("clipboard %v", err)
	}
	if !saved.Empty() {
		if err := clipboard.Restore(st, saved); err != nil {
			r.warn("could not put your clipboard back: %v", err)
		}
	}
	if got != testStr {
		return r.fail("clipboard mismatch: wrote %q, got %q", testStr, got)
	}
	return r.pass("clipboard write/read verified")
}

// nopPoster swallows keystrokes so the preservation check never types into
// the terminal.
type nopPoster struct{}

func (nopPoster) Post([]input.Event) error { return nil }

func (r *runner) checkPreservation() bool {
	r.step(4, "Clipboard preservation")
	st := r.env.Store

	saved, err := st.ReadAll()
	if err != nil {
		return r.fail("could not read clipboard: %v", err)
	}
	sentinel := "pastekit-preserve-check"
	if err := st.WriteText(sentinel, false); err != nil {
		return r.fail("could not set sentinel: %v", err)
	}
	defer func() {
		if !saved.Empty() {
			clipboard.Restore(st, saved)
		}
	}()

	q := loop.New()
	defer q.Close()
	seq := paste.New(paste.Deps{
		Store:     st,
		Poster:    nopPoster{},
		Scripter:  r.env.Scripter,
		Oracle:    input.OracleFunc(func() bool { return true }),
		Scheduler: q,
	})
	cfg := paste.Config{RestoreClipboard: true}
	op := seq.Paste(paste.Request{Text: "pastekit-temp-replacement", Config: cfg})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.EffectiveRestoreDelay()+2*time.Second)
	defer cancel()
	if err := op.Wait(ctx); err != nil {
		return r.fail("restore never ran: %v", err)
	}
	if op.Restore() != paste.RestoreApplied {
		return r.fail("restore outcome %s", op.Restore())
	}

	snap, err := st.ReadAll()
	if err != nil {
		return r.fail("could not read clipboard after restore: %v", err)
	}
	if restored, _ := snap.Text(); restored != sentinel {
		return r.fail("clipboard not preserved (got %q, want %q)", restored, sentinel)
	}
	return r.pass("clipboard preservation verified")
}

func (r *runner) checkPaste() bool {
	r.step(5, "Paste into focused window")

	fmt.Fprintln(r.out, "Focus on a text editor window...")
	for i := 5; i > 0; i-- {
		fmt.Fprintf(r.out, "  %d...\n", i)
		time.Sleep(1 * time.Second)
	}

	q := loop.New()
	defer q.Close()
	seq := paste.New(paste.Deps{
		Store:     r.env.Store,
		Poster:    r.env.Poster,
		Scripter:  r.env.Scripter,
		Oracle:    r.env.Oracle,
		Scheduler: q,
	})
	testStr := "pastekit-doctor-test"
	op := seq.Paste(paste.Request{Text: testStr, Config: r.env.Config})

	ctx, cancel := context.WithTimeout(context.Background(), r.env.Config.EffectiveRestoreDelay()+5*time.Second)
	defer cancel()
	if err := op.Wait(ctx); err != nil {
		return r.fail("paste did not finish: %v", err)
	}
	if err := op.Err(); err != nil {
		return r.fail("paste failed: %v", err)
	}

	resetTerminal()
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Did the text %q appear? [y/n]: ", testStr)
	confirm, _ := r.in.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))
	if confirm != "y" && confirm != "yes" {
		return r.fail("paste not confirmed")
	}
	return r.pass("paste verified by user")
}
