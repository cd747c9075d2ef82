package hook_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aorozco-g/arch-setup/hook"
	"github.com/aorozco-g/arch-setup/id"
	"github.com/aorozco-g/arch-setup/step"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fullHook implements every lifecycle event and records what it saw.
type fullHook struct {
	events []string
	err    error
}

func (h *fullHook) Name() string { return "full" }

func (h *fullHook) OnRunStarted(_ context.Context, _ id.ID, _ string, _ int) error {
	h.events = append(h.events, "run-started")
	return h.err
}

func (h *fullHook) OnStepSkipped(_ context.Context, _ id.ID, st step.Step) error {
	h.events = append(h.events, "skipped:"+st.Name)
	return h.err
}

func (h *fullHook) OnStepStarted(_ context.Context, _ id.ID, st step.Step) error {
	h.events = append(h.events, "started:"+st.Name)
	return h.err
}

func (h *fullHook) OnStepCompleted(_ context.Context, _ id.ID, st step.Step, _ time.Duration) error {
	h.events = append(h.events, "completed:"+st.Name)
	return h.err
}

func (h *fullHook) OnStepFailed(_ context.Context, _ id.ID, st step.Step, _ error) error {
	h.events = append(h.events, "failed:"+st.Name)
	return h.err
}

func (h *fullHook) OnRunCompleted(_ context.Context, _ id.ID, _ time.Duration) error {
	h.events = append(h.events, "run-completed")
	return h.err
}

func (h *fullHook) OnRunAborted(_ context.Context, _ id.ID, st step.Step, _ error) error {
	h.events = append(h.events, "aborted:"+st.Name)
	return h.err
}

// startOnlyHook subscribes only to StepStarted.
type startOnlyHook struct {
	started int
}

func (h *startOnlyHook) Name() string { return "start-only" }

func (h *startOnlyHook) OnStepStarted(_ context.Context, _ id.ID, _ step.Step) error {
	h.started++
	return nil
}

func TestRegistryDispatchesAllEvents(t *testing.T) {
	r := hook.NewRegistry(discard())
	h := &fullHook{}
	r.Register(h)

	ctx := context.Background()
	runID := id.NewRunID()
	st := step.New("update", step.Fatal, nil)

	r.EmitRunStarted(ctx, runID, "", 3)
	r.EmitStepSkipped(ctx, runID, st)
	r.EmitStepStarted(ctx, runID, st)
	r.EmitStepCompleted(ctx, runID, st, time.Second)
	r.EmitStepFailed(ctx, runID, st, errors.New("boom"))
	r.EmitRunCompleted(ctx, runID, time.Minute)
	r.EmitRunAborted(ctx, runID, st, errors.New("boom"))

	want := []string{
		"run-started",
		"skipped:update",
		"started:update",
		"completed:update",
		"failed:update",
		"run-completed",
		"aborted:update",
	}
	if len(h.events) != len(want) {
		t.Fatalf("events = %v, want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, h.events[i], want[i])
		}
	}
}

func TestRegistryOnlyNotifiesSubscribers(t *testing.T) {
	r := hook.NewRegistry(discard())
	h := &startOnlyHook{}
	r.Register(h)

	ctx := context.Background()
	runID := id.NewRunID()
	st := step.New("services", step.Advisory, nil)

	// None of these should reach the hook.
	r.EmitRunStarted(ctx, runID, "", 1)
	r.EmitStepCompleted(ctx, runID, st, 0)
	r.EmitRunCompleted(ctx, runID, 0)

	r.EmitStepStarted(ctx, runID, st)
	r.EmitStepStarted(ctx, runID, st)

	if h.started != 2 {
		t.Errorf("started = %d, want 2", h.started)
	}
}

func TestRegistryHookErrorIsLoggedNotPropagated(t *testing.T) {
	var buf bytes.Buffer
	r := hook.NewRegistry(slog.New(slog.NewTextHandler(&buf, nil)))

	failing := &fullHook{err: errors.New("hook blew up")}
	second := &fullHook{}
	r.Register(failing)
	r.Register(second)

	ctx := context.Background()
	runID := id.NewRunID()
	r.EmitRunStarted(ctx, runID, "", 1)

	if len(second.events) != 1 {
		t.Errorf("second hook events = %v, want one run-started", second.events)
	}
	out := buf.String()
	if !strings.Contains(out, "hook error") || !strings.Contains(out, "hook blew up") {
		t.Errorf("log output missing hook error, got: %s", out)
	}
}

func TestRegistryNotifiesInRegistrationOrder(t *testing.T) {
	r := hook.NewRegistry(discard())

	var order []string
	mk := func(name string) hook.Hook {
		return &namedStartHook{name: name, order: &order}
	}
	r.Register(mk("first"))
	r.Register(mk("second"))
	r.Register(mk("third"))

	r.EmitStepStarted(context.Background(), id.NewRunID(), step.New("update", step.Fatal, nil))

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

type namedStartHook struct {
	name  string
	order *[]string
}

func (h *namedStartHook) Name() string { return h.name }

func (h *namedStartHook) OnStepStarted(_ context.Context, _ id.ID, _ step.Step) error {
	*h.order = append(*h.order, h.name)
	return nil
}

func TestRegistryHooksAccessor(t *testing.T) {
	r := hook.NewRegistry(discard())
	if len(r.Hooks()) != 0 {
		t.Fatalf("new registry should have no hooks")
	}
	r.Register(&startOnlyHook{})
	r.Register(&fullHook{})
	if got := len(r.Hooks()); got != 2 {
		t.Errorf("Hooks() len = %d, want 2", got)
	}
}
