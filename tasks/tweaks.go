package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	setup "github.com/aorozco-g/arch-setup"
	"github.com/aorozco-g/arch-setup/step"
)

// applyTweaks performs guarded in-place edits of system files. Each
// tweak replaces every match of its pattern; a file with no match is
// left untouched and logged, not failed, since most tweaks are
// idempotent re-runs over an already-edited file.
func applyTweaks(tweaks []setup.FileEdit, logger *slog.Logger) step.Action {
	return func(_ context.Context) error {
		var errs []error
		for _, tw := range tweaks {
			if err := applyTweak(tw, logger); err != nil {
				errs = append(errs, fmt.Errorf("tweak %s: %w", tw.Path, err))
			}
		}
		return errors.Join(errs...)
	}
}

func applyTweak(tw setup.FileEdit, logger *slog.Logger) error {
	re, err := regexp.Compile(tw.Match)
	if err != nil {
		return fmt.Errorf("compile pattern %q: %w", tw.Match, err)
	}

	info, err := os.Stat(tw.Path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	content, err := os.ReadFile(tw.Path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if !re.Match(content) {
		logger.Info("tweak pattern not found, skipping",
			slog.String("path", tw.Path),
			slog.String("pattern", tw.Match),
		)
		return nil
	}

	edited := re.ReplaceAll(content, []byte(tw.Replace))
	if err := os.WriteFile(tw.Path, edited, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	logger.Info("tweak applied", slog.String("path", tw.Path))
	return nil
}
