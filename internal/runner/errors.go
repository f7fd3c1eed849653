package runner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyLabel is returned when a task is started without a label.
	ErrEmptyLabel = errors.New("task label must not be empty")

	// ErrTaskInProgress is returned by the reject policy when every slot is busy.
	ErrTaskInProgress = errors.New("a task is already in progress")

	// ErrTaskNotFound is returned for unknown or already finished task IDs.
	ErrTaskNotFound = errors.New("task not found")

	// ErrCancelled is the result error of a task stopped before reaching 100%.
	ErrCancelled = errors.New("task cancelled")

	// ErrShutdown is returned by Start after Shutdown and is the cancel cause
	// of tasks interrupted by it.
	ErrShutdown = errors.New("runner is shut down")
)

// OverlapPolicy decides what happens when a task is started while all
// parallel slots are taken.
type OverlapPolicy string

const (
	OverlapReject OverlapPolicy = "reject"
	OverlapQueue  OverlapPolicy = "queue"
)

// ParseOverlapPolicy converts a config value into an OverlapPolicy
func ParseOverlapPolicy(value string) (OverlapPolicy, error) {
	switch OverlapPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case OverlapReject, "":
		return OverlapReject, nil
	case OverlapQueue:
		return OverlapQueue, nil
	}
	return "", fmt.Errorf("unknown overlap policy %q (want %q or %q)", value, OverlapReject, OverlapQueue)
}

// cancelError builds the result error of a cancelled task from its cancel cause
func cancelError(cause error) error {
	if cause == nil || errors.Is(cause, ErrCancelled) {
		return ErrCancelled
	}
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
