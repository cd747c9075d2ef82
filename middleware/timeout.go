package middleware

import (
	"context"
	"log/slog"

	"github.com/aorozco-g/arch-setup/step"
)

// Timeout returns middleware that enforces a per-step deadline. Only
// steps with a non-zero Timeout are bounded; the runner loop itself
// never imposes one. When the deadline is exceeded the context is
// cancelled and the action should return context.DeadlineExceeded.
func Timeout(logger *slog.Logger) Middleware {
	return func(ctx context.Context, st step.Step, next Handler) error {
		if st.Timeout > 0 {
			logger.Debug("step timeout set",
				slog.String("step", st.Name),
				slog.Duration("timeout", st.Timeout),
			)
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, st.Timeout)
			defer cancel()
		}
		return next(ctx)
	}
}
