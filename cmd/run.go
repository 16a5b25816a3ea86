package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scienceol/xyzen/inhibit/internal/config"
	"github.com/scienceol/xyzen/inhibit/internal/logging"
	"github.com/scienceol/xyzen/inhibit/internal/ui"
	"github.com/scienceol/xyzen/inhibit/internal/wrap"
)

func run(ctx context.Context, env environment, flags config.Flags, args []string) (int, error) {
	// Bail if no command is given.
	if len(args) == 0 {
		return wrap.ExitNoCommand, nil
	}

	// Warnings are shown whatever the verbosity, so the printer can be built
	// before the config is known.
	cfg, err := config.Load(flags, env.getenv, ui.New(env.stderr, false).Warn)
	if err != nil {
		return 0, fmt.Errorf("configuration error: %w", err)
	}

	logger := loggerFor(cfg, env)
	logger.Debug("starting", "version", version, "argv", args, "reason", cfg.Reason)

	w := wrap.New(cfg, wrap.Deps{
		Connect:  defaultConnect(env),
		Launcher: env.launcher,
		Out:      ui.New(env.stderr, cfg.Verbose),
		Logger:   logger,
	})
	return w.Run(ctx, args), nil
}

func loggerFor(cfg *config.Config, env environment) *slog.Logger {
	return logging.NewLoggerWithWriter(env.stderr, cfg.LogFormat, cfg.LogLevel)
}
