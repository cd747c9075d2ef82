package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aorozco-g/arch-setup/step"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace,
// so a panicking advisory step degrades into an ordinary advisory
// failure instead of killing the whole process.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, st step.Step, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("step action panicked",
					slog.String("step", st.Name),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in step %s: %v", st.Name, r)
			}
		}()
		return next(ctx)
	}
}
