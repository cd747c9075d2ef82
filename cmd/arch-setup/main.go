// Command arch-setup runs the post-install step sequence for a fresh
// Arch Linux machine. Invoke it with no arguments to run (or resume)
// the full sequence; progress survives interruptions via the marker
// file, so a failed run picks up where it left off.
//
// Usage:
//
//	arch-setup [-config setup.yaml] [-state DIR]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	setup "github.com/aorozco-g/arch-setup"
	"github.com/aorozco-g/arch-setup/hook"
	"github.com/aorozco-g/arch-setup/hook/audit"
	"github.com/aorozco-g/arch-setup/hook/report"
	"github.com/aorozco-g/arch-setup/marker"
	"github.com/aorozco-g/arch-setup/marker/file"
	"github.com/aorozco-g/arch-setup/marker/sqlite"
	"github.com/aorozco-g/arch-setup/middleware"
	"github.com/aorozco-g/arch-setup/prompt"
	"github.com/aorozco-g/arch-setup/runner"
	"github.com/aorozco-g/arch-setup/system"
	"github.com/aorozco-g/arch-setup/tasks"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults used when empty)")
	stateDir := flag.String("state", "", "override the state directory")
	flag.Parse()

	if err := run(*configPath, *stateDir); err != nil {
		fmt.Fprintln(os.Stderr, "arch-setup:", err)
		os.Exit(1)
	}
}

func run(configPath, stateDir string) error {
	cfg := setup.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = setup.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, historian, err := openStores(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	reporter := report.New()
	hooks := hook.NewRegistry(logger)
	hooks.Register(reporter)
	if historian != nil {
		hooks.Register(audit.New(historian))
	}

	var prompter prompt.Prompter
	if !cfg.NonInteractive {
		prompter = prompt.NewTerminal(os.Stdin, os.Stdout)
	}

	seq, err := tasks.Sequence(cfg, tasks.Deps{
		Exec:   system.NewShell(system.WithLogger(logger)),
		Prompt: prompter,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	r, err := runner.New(seq, store,
		runner.WithLogger(logger),
		runner.WithEmitter(hooks),
		runner.WithMiddleware(
			middleware.Logging(logger),
			middleware.Recover(logger),
			middleware.Timeout(logger),
		),
	)
	if err != nil {
		return err
	}

	result, runErr := r.Run(ctx)
	if result != nil {
		reporter.Render(os.Stdout)
	}
	if runErr != nil {
		return runErr
	}

	for _, adv := range result.Advisories {
		logger.Warn("advisory step failed",
			slog.String("step", adv.Step),
			slog.String("error", adv.Err.Error()),
		)
	}

	maybeReboot(cfg, prompter, logger)
	return nil
}

// openStores picks the marker backend: the one-line file store by
// default, SQLite when a history database is configured (which also
// enables the audit trail).
func openStores(cfg setup.Config, logger *slog.Logger) (marker.Store, marker.Historian, error) {
	if cfg.HistoryDB == "" {
		return file.New(cfg.Marker()), nil, nil
	}
	st, err := sqlite.New(cfg.HistoryDB, sqlite.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return st, st, nil
}

// maybeReboot offers the post-setup reboot. Skipped in non-interactive
// runs; a prompt error just means no reboot.
func maybeReboot(cfg setup.Config, prompter prompt.Prompter, logger *slog.Logger) {
	if cfg.NonInteractive || prompter == nil {
		return
	}
	reboot, err := prompter.Confirm("Setup complete. Reboot now?", false)
	if err != nil || !reboot {
		return
	}
	if err := syscall.Exec("/usr/bin/systemctl", []string{"systemctl", "reboot"}, os.Environ()); err != nil {
		logger.Error("reboot failed", slog.String("error", err.Error()))
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
