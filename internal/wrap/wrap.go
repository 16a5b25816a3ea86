// Package wrap runs a command under an idle inhibition and forwards its
// exit code.
package wrap

import (
	"context"
	"log/slog"

	"github.com/scienceol/xyzen/inhibit/internal/config"
	"github.com/scienceol/xyzen/inhibit/internal/executor"
	"github.com/scienceol/xyzen/inhibit/internal/power"
	"github.com/scienceol/xyzen/inhibit/internal/ui"
)

// ExitNoCommand is returned when there is nothing to run.
const ExitNoCommand = 0

// Bus is the session connection used for inhibition. It must stay open
// until the command has exited.
type Bus interface {
	power.Caller
	Close() error
}

// Deps are the external capabilities a Wrapper needs.
type Deps struct {
	// Connect opens the session bus. It is only called when there is a
	// command to run.
	Connect    func(cfg *config.Config) Bus
	Launcher   executor.Launcher
	Inhibitors []power.Inhibitor
	Out        *ui.Printer
	Logger     *slog.Logger
}

type Wrapper struct {
	cfg  *config.Config
	deps Deps
}

func New(cfg *config.Config, deps Deps) *Wrapper {
	return &Wrapper{cfg: cfg, deps: deps}
}

// Run inhibits idle, runs argv to completion and returns the exit code this
// process should exit with.
func (w *Wrapper) Run(ctx context.Context, argv []string) int {
	if len(argv) == 0 {
		return ExitNoCommand
	}

	bus := w.deps.Connect(w.cfg)
	defer func() {
		if err := bus.Close(); err != nil {
			w.deps.Logger.Debug("session_bus_close_failed", "error", err)
		}
	}()

	req := power.NewRequest(w.cfg.Reason, argv[0])
	power.NewRequester(bus, w.deps.Inhibitors, w.deps.Out, w.deps.Logger).InhibitAll(ctx, req)

	outcome := executor.New(w.deps.Launcher, w.deps.Out, w.deps.Logger).Run(argv)
	if !outcome.Launched() {
		return outcome.ExitCode
	}
	return Forward(w.deps.Out, argv, outcome)
}

// Forward reports how the command ended and returns its exit code.
func Forward(out *ui.Printer, argv []string, outcome executor.Outcome) int {
	display := executor.CommandString(argv)
	if outcome.ExitCode != 0 {
		out.Error("Process '%s' exited with code %d.", display, outcome.ExitCode)
	} else {
		out.Success("Process '%s' exited with code %d.", display, outcome.ExitCode)
	}
	return outcome.ExitCode
}
