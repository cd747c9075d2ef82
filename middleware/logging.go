package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aorozco-g/arch-setup/step"
)

// Logging returns middleware that logs step start and completion.
// Advisory failures log at Warn, fatal failures at Error, matching the
// two-tier failure taxonomy.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, st step.Step, next Handler) error {
		logger.Info("step started",
			slog.String("step", st.Name),
			slog.String("criticality", st.Criticality.String()),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			logger.Info("step completed",
				slog.String("step", st.Name),
				slog.Duration("elapsed", elapsed),
			)
		case st.Criticality == step.Advisory:
			logger.Warn("step failed",
				slog.String("step", st.Name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		default:
			logger.Error("step failed",
				slog.String("step", st.Name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		}

		return err
	}
}
