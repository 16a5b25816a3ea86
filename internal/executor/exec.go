package executor

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/scienceol/xyzen/inhibit/internal/ui"
)

// ExitLaunchFailure is returned when the command could not be started.
const ExitLaunchFailure = 1

var errEmptyCommand = errors.New("no command given")

var relayedSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

// Outcome is the result of running one command.
type Outcome struct {
	ExitCode  int
	LaunchErr error
	JoinErr   error
}

// Launched reports whether the command was started at all.
func (o Outcome) Launched() bool {
	return o.LaunchErr == nil
}

// Runner launches a command and waits for it.
type Runner struct {
	launcher Launcher
	out      *ui.Printer
	logger   *slog.Logger
}

// New creates a Runner. A nil launcher means OSLauncher.
func New(launcher Launcher, out *ui.Printer, logger *slog.Logger) *Runner {
	if launcher == nil {
		launcher = OSLauncher{}
	}
	return &Runner{launcher: launcher, out: out, logger: logger}
}

// CommandString joins argv with single spaces for display.
func CommandString(argv []string) string {
	return strings.Join(argv, " ")
}

// Run starts argv and blocks until it exits. There is no timeout: the
// caller's lifetime is bound to the child's.
func (r *Runner) Run(argv []string) Outcome {
	display := CommandString(argv)
	if len(argv) == 0 {
		r.out.Error("Failed to start '%s': %v", display, errEmptyCommand)
		return Outcome{ExitCode: ExitLaunchFailure, LaunchErr: errEmptyCommand}
	}

	// Listen before starting so a signal sent right after launch cannot take
	// this process down while the child keeps running.
	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, relayedSignals...)
	defer signal.Stop(sigCh)

	r.out.Debug("Starting process '%s'", display)
	proc, err := r.launcher.Start(argv)
	if err != nil {
		if res := resultCode(err); res != "" {
			r.out.Error("Failed to start '%s': %v (res=%s)", display, err, res)
		} else {
			r.out.Error("Failed to start '%s': %v", display, err)
		}
		return Outcome{ExitCode: ExitLaunchFailure, LaunchErr: err}
	}
	r.out.Debug("Started process '%s'", display)
	r.logger.Debug("process_started", "pid", proc.Pid(), "argv", argv)

	done := make(chan struct{})
	go r.relay(sigCh, done, proc)

	code, err := proc.Wait()
	close(done)

	outcome := Outcome{ExitCode: code}
	if err != nil {
		r.out.Error("Failed to join '%s': %v", display, err)
		outcome.JoinErr = err
	}
	r.logger.Debug("process_exited", "pid", proc.Pid(), "exit_code", code)
	return outcome
}

// relay passes every signal received while the child runs on to the child.
// This process keeps waiting and forwards whatever code the child exits with.
func (r *Runner) relay(sigCh <-chan os.Signal, done <-chan struct{}, proc Process) {
	for {
		select {
		case <-done:
			return
		case sig := <-sigCh:
			if err := proc.Signal(sig); err != nil {
				r.logger.Warn("signal_relay_failed", "signal", sig.String(), "error", err)
				continue
			}
			r.logger.Debug("signal_relayed", "signal", sig.String(), "pid", proc.Pid())
		}
	}
}

// resultCode names the OS error behind a launch failure, e.g. "ENOENT".
// It returns "" when there is none.
func resultCode(err error) string {
	if errors.Is(err, exec.ErrNotFound) {
		return errnoName(syscall.ENOENT)
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errnoName(errno)
	}
	return ""
}
