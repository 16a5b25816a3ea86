package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scienceol/xyzen/inhibit/internal/config"
	"github.com/scienceol/xyzen/inhibit/internal/executor"
	"github.com/scienceol/xyzen/inhibit/internal/power"
	"github.com/scienceol/xyzen/inhibit/internal/wrap"
	"github.com/spf13/cobra"
)

// environment lets tests replace the parts of the outside world the command
// touches.
type environment struct {
	getenv   func(string) string
	stderr   io.Writer
	connect  func(cfg *config.Config) wrap.Bus
	launcher executor.Launcher
}

func osEnvironment() environment {
	return environment{
		getenv:   os.Getenv,
		stderr:   os.Stderr,
		launcher: executor.OSLauncher{},
	}
}

func newRootCmd(env environment, exitCode *int) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "xyzen-inhibit <command> [args...]",
		Short: "Keep the desktop awake while a command runs",
		Long: `xyzen-inhibit asks the desktop session not to blank the screen, start the
screensaver or go idle while the given command runs, then exits with the
command's own exit code.

Inhibition is requested through org.freedesktop.portal.Inhibit,
org.freedesktop.ScreenSaver and org.freedesktop.PowerManagement.Inhibit on the
session bus. Each is tried once; failures are reported and ignored.

Set INHIBIT_DEBUG to any non-empty value to trace every step.`,
		Example: `  xyzen-inhibit steam -applaunch 570
  xyzen-inhibit -- ./game --fullscreen`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.TimeoutSet = cmd.Flags().Changed("call-timeout")
			code, err := run(cmd.Context(), env, flags, args)
			if err != nil {
				return err
			}
			*exitCode = code
			return nil
		},
	}

	f := cmd.Flags()
	// Everything from the first positional argument on belongs to the command.
	f.SetInterspersed(false)
	f.StringVar(&flags.ConfigPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/xyzen-inhibit/config.yaml)")
	f.StringVar(&flags.Reason, "reason", "", fmt.Sprintf("Reason shown by the desktop (default %q)", config.DefaultReason))
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "Trace each step on stderr (same as INHIBIT_DEBUG=1)")
	f.StringVar(&flags.LogLevel, "log-level", "", `Structured log level: "debug", "info", "warn", "error"`)
	f.StringVar(&flags.LogFormat, "log-format", "", `Structured log format: "text" or "json"`)
	f.DurationVar(&flags.CallTimeout, "call-timeout", config.DefaultCallTimeout, "Timeout for each D-Bus call (0 = none)")

	cmd.SetOut(env.stderr)
	cmd.SetErr(env.stderr)
	return cmd
}

// Execute runs the root command with os.Args and returns the process exit code.
func Execute() int {
	return execute(osEnvironment(), os.Args[1:])
}

func execute(env environment, args []string) int {
	exitCode := 0
	root := newRootCmd(env, &exitCode)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	return exitCode
}

// defaultConnect opens the real session bus.
func defaultConnect(env environment) func(cfg *config.Config) wrap.Bus {
	if env.connect != nil {
		return env.connect
	}
	return func(cfg *config.Config) wrap.Bus {
		return power.ConnectSessionBus(cfg.CallTimeout, loggerFor(cfg, env))
	}
}
