// Package system runs shell commands for setup step actions. Steps
// depend on the Exec interface so tests can substitute a fake instead
// of touching the machine.
package system

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/aorozco-g/arch-setup/backoff"
)

// Exec runs a shell command and returns its combined output.
type Exec interface {
	Run(ctx context.Context, command string) (string, error)
}

// Shell executes commands through bash -c on the local machine.
type Shell struct {
	logger *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the structured logger for command execution.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// NewShell creates a local shell executor.
func NewShell(opts ...Option) *Shell {
	s := &Shell{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes command via bash -c and returns trimmed combined output.
// On failure the output is folded into the error so callers see what
// the command printed.
func (s *Shell) Run(ctx context.Context, command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("system: empty command")
	}

	s.logger.Debug("exec", slog.String("command", command))

	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if err != nil {
		if output != "" {
			return output, fmt.Errorf("system: %q: %w: %s", command, err, output)
		}
		return output, fmt.Errorf("system: %q: %w", command, err)
	}
	return output, nil
}

// RunWithRetry executes command up to attempts times, sleeping per the
// backoff strategy between failures. The context cancels both the
// command and the wait. attempts < 1 is treated as 1.
func RunWithRetry(ctx context.Context, e Exec, command string, attempts int, strategy backoff.Strategy) (string, error) {
	if attempts < 1 {
		attempts = 1
	}
	if strategy == nil {
		strategy = backoff.DefaultStrategy()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := e.Run(ctx, command)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		select {
		case <-time.After(strategy.Delay(attempt)):
		case <-ctx.Done():
			return "", fmt.Errorf("system: retry cancelled: %w", ctx.Err())
		}
	}
	return "", fmt.Errorf("system: %d attempts failed: %w", attempts, lastErr)
}
