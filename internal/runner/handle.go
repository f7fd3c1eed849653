package runner

import (
	"context"

	"github.com/ytget/intune-dash/internal/model"
)

// Result is the final outcome of a task
type Result struct {
	Task model.SimulatedTask
	Err  error // nil when the task completed, wraps ErrCancelled otherwise
}

// Handle lets the starter of a task follow its progress and wait for the
// outcome without callbacks.
type Handle struct {
	id       string
	label    string
	progress chan int
	done     chan struct{}
	result   Result
}

func newHandle(id, label string) *Handle {
	return &Handle{
		id:       id,
		label:    label,
		progress: make(chan int, model.MaxProgressPercent),
		done:     make(chan struct{}),
	}
}

// ID returns the task ID
func (h *Handle) ID() string {
	return h.id
}

// Label returns the task label
func (h *Handle) Label() string {
	return h.label
}

// Progress yields every reported percent in order. The channel is closed
// before Done is closed, so a reader draining it never misses a step.
func (h *Handle) Progress() <-chan int {
	return h.progress
}

// Done is closed once the task finished and its completion callback returned
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the outcome if the task already finished
func (h *Handle) Result() (Result, bool) {
	select {
	case <-h.done:
		return h.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the task finished or ctx is done. The returned error is
// the task error, or ctx.Err() if the wait itself was abandoned.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.result, h.result.Err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
