// Package middleware provides composable middleware for step execution.
// Middleware wraps step actions synchronously and can modify execution
// (recover from panics, log, enforce a per-step timeout).
package middleware

import (
	"context"

	"github.com/aorozco-g/arch-setup/step"
)

// Handler is the terminal function that executes the step action.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the step being executed, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, st step.Step, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, timeout) executes as:
//
//	logging → recover → timeout → action
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, st step.Step, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, st, prev)
			}
		}
		return h(ctx)
	}
}
