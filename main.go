package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pastekit/clipboard"
	"pastekit/doctor"
	"pastekit/input"
	"pastekit/log"
	"pastekit/loop"
	"pastekit/paste"
	"pastekit/settings"
	"pastekit/shutdown"
)

var version = "dev"

const (
	// waitSlack bounds how long a command waits past the restore delay.
	waitSlack = 5 * time.Second
	// persistTimeout bounds how long exit waits for the clipboard to be
	// handed over to another owner.
	persistTimeout = 3 * time.Second
)

// Platform hooks, replaced in tests.
var (
	openClipboard = clipboard.Open
	newInput      = func() (input.Poster, input.Scripter, input.Oracle) {
		return input.NewPoster(), input.NewScripter(), input.NewOracle()
	}
)

type options struct {
	logPath    string
	configPath string
	dryRun     bool
}

// app is everything one command invocation needs.
type app struct {
	settings  *settings.Store
	store     clipboard.Store
	storeName string
	queue     *loop.Queue
	seq       *paste.Sequencer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "pastekit",
		Short:         "Paste text into the focused application, keeping your clipboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(opts.logPath)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			log.Close()
		},
	}
	root.PersistentFlags().StringVar(&opts.logPath, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: config.toml in the user config dir)")
	root.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "use an in-memory clipboard and send no keystrokes")

	root.AddCommand(newPasteCmd(opts))
	root.AddCommand(newEnterCmd(opts))
	root.AddCommand(newListenCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newDoctorCmd(opts))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("pastekit %s\n", version)
		},
	})
	return root
}

func setupLogging(flagPath string) error {
	logPath, err := log.ResolveDir(flagPath)
	if err != nil {
		return fmt.Errorf("failed to resolve log directory: %w", err)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return nil
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open diagnostics log: %v\n", err)
	}
	return nil
}

// newApp wires one invocation. resident says whether the process outlives
// the operations it starts, which decides the clipboard backend.
func newApp(opts *options, resident bool) (*app, error) {
	st, err := settings.New(opts.configPath)
	if err != nil {
		return nil, err
	}

	a := &app{settings: st, queue: loop.New()}
	poster, scripter, oracle := newInput()
	if opts.dryRun {
		a.store, a.storeName = clipboard.NewMemory(), "memory"
		poster, scripter = dryPoster{}, dryScripter{}
		oracle = input.OracleFunc(func() bool { return true })
	} else {
		a.store, a.storeName, err = openClipboard(resident)
		if err != nil {
			a.queue.Close()
			return nil, fmt.Errorf("no usable clipboard: %w", err)
		}
	}

	a.seq = paste.New(paste.Deps{
		Store:     a.store,
		Poster:    poster,
		Scripter:  scripter,
		Oracle:    oracle,
		Scheduler: a.queue,
		Config:    st,
	})
	log.SessionStart(version, a.storeName)
	return a, nil
}

// wait blocks until every op is done. An interrupt flushes the queue so
// pending restores still run before exit.
func (a *app) wait(ops ...*paste.Operation) error {
	sig := make(chan os.Signal, 1)
	shutdown.Notify(sig)
	defer shutdown.Stop(sig)

	deadline := a.settings.Resolve().EffectiveRestoreDelay() + paste.DispatchDelay + waitSlack
	ctx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()

	for _, op := range ops {
		select {
		case <-op.Done():
		case s := <-sig:
			shutdown.Drain(a.queue, s)
			return errors.New("interrupted")
		case <-ctx.Done():
			return fmt.Errorf("operation %d did not finish: %w", op.ID, ctx.Err())
		}
	}
	return nil
}

func finished(op *paste.Operation) bool {
	select {
	case <-op.Done():
		return true
	default:
		return false
	}
}

// close stops the queue and makes sure whatever the clipboard now holds,
// staged text or restored contents, survives exit.
func (a *app) close() {
	a.queue.Close()
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := clipboard.Persist(ctx, a.store); err != nil {
		log.Warnf("clipboard may be lost on exit: %v", err)
	}
}

func newPasteCmd(opts *options) *cobra.Command {
	var pressEnter bool
	cmd := &cobra.Command{
		Use:   "paste [text...]",
		Short: "Paste text at the cursor of the focused application",
		Long:  "Stages text on the clipboard and sends the paste keystroke. Reads stdin when no text is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = strings.TrimSuffix(string(data), "\n")
			}

			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			ops := []*paste.Operation{a.seq.PasteAtCursor(text)}
			if pressEnter {
				ops = append(ops, a.seq.PressEnter())
			}
			if err := a.wait(ops...); err != nil {
				return err
			}
			for _, op := range ops {
				if err := op.Err(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %v\n", op.Kind, err)
				}
			}
			if opts.dryRun {
				snap, _ := a.store.ReadAll()
				staged, _ := snap.Text()
				fmt.Fprintf(cmd.OutOrStdout(), "dry run: clipboard now %q, restore %s\n", staged, ops[0].Restore())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pressEnter, "enter", false, "press Return after the paste")
	return cmd
}

func newEnterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "enter",
		Short: "Press Return in the focused application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			op := a.seq.PressEnter()
			if err := a.wait(op); err != nil {
				return err
			}
			if err := op.Err(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}
			return nil
		},
	}
}

// newListenCmd pastes each stdin line as it arrives. Settings are watched,
// so edits to the config file apply to the next line.
func newListenCmd(opts *options) *cobra.Command {
	var pressEnter bool
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Paste every line read from stdin until EOF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			if a.settings.Watch() {
				log.Info("watching " + a.settings.ConfigFile())
			}
			a.settings.OnChange(func(cfg paste.Config) {
				fmt.Fprintf(cmd.ErrOrStderr(), "settings changed: strategy=%s restore=%t delay=%s\n",
					cfg.Strategy(), cfg.RestoreClipboard, cfg.EffectiveRestoreDelay())
			})

			sig := make(chan os.Signal, 1)
			shutdown.Notify(sig)
			defer shutdown.Stop(sig)
			lines := make(chan string)
			go func() {
				defer close(lines)
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					lines <- sc.Text()
				}
			}()

			var pending []*paste.Operation
			for {
				select {
				case line, ok := <-lines:
					if !ok {
						return a.wait(pending...)
					}
					pending = slices.DeleteFunc(pending, finished)
					pending = append(pending, a.seq.PasteAtCursor(line))
					if pressEnter {
						pending = append(pending, a.seq.PressEnter())
					}
				case s := <-sig:
					shutdown.Drain(a.queue, s)
					return nil
				}
			}
		},
	}
	cmd.Flags().BoolVar(&pressEnter, "enter", false, "press Return after each line")
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved paste configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := settings.New(opts.configPath)
			if err != nil {
				return err
			}
			cfg := st.Resolve()
			file := st.ConfigFile()
			if file == "" {
				file = "(none, defaults and environment only)"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "config file:        %s\n", file)
			fmt.Fprintf(w, "%-27s %t\n", settings.KeyRestoreClipboard, cfg.RestoreClipboard)
			fmt.Fprintf(w, "%-27s %t\n", settings.KeyScriptedPaste, cfg.Scripted)
			fmt.Fprintf(w, "%-27s %s (effective %s)\n", settings.KeyRestoreDelay, cfg.RestoreDelay, cfg.EffectiveRestoreDelay())
			fmt.Fprintf(w, "strategy:           %s\n", cfg.Strategy())
			return nil
		},
	}
}

func newDoctorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run system diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			st, err := settings.New(opts.configPath)
			if err != nil {
				return err
			}
			env := doctor.Env{Config: st.Resolve(), Verify: input.Verify}
			env.Poster, env.Scripter, env.Oracle = newInput()
			if opts.dryRun {
				env.Store, env.StoreName = clipboard.NewMemory(), "memory"
			} else if env.Store, env.StoreName, err = openClipboard(false); err != nil {
				return fmt.Errorf("no usable clipboard: %w", err)
			}
			code := doctor.Run(env)
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			err = clipboard.Persist(ctx, env.Store)
			cancel()
			if err != nil {
				log.Warnf("clipboard may be lost on exit: %v", err)
			}
			if code != 0 {
				log.Close()
				os.Exit(code)
			}
			return nil
		},
	}
}

type dryPoster struct{}

func (dryPoster) Post(events []input.Event) error {
	log.Info(fmt.Sprintf("dry_run_post: events=%d", len(events)))
	return nil
}

type dryScripter struct{}

func (dryScripter) Keystroke(c input.Chord) error {
	log.Info(fmt.Sprintf("dry_run_keystroke: key=%s command=%t", c.Key, c.Command))
	return nil
}
