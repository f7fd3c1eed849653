package runner

import (
	"context"
	"time"

	"github.com/ytget/intune-dash/internal/model"
)

// TaskRunner defines the interface for the simulated task service.
type TaskRunner interface {
	SetUpdateCallback(func(model.SimulatedTask))

	// Run starts a task and calls onComplete exactly once after it reached 100%
	Run(label string, onComplete func()) (*Handle, error)

	// Start starts a task bound to ctx; cancelling ctx cancels the task
	Start(ctx context.Context, label string, opts ...RunOption) (*Handle, error)

	Cancel(id string) error
	GetTask(id string) (model.SimulatedTask, bool)
	GetAllTasks() []model.SimulatedTask
	ActiveCount() int

	// SetStepInterval changes the pace of tasks started afterwards
	SetStepInterval(d time.Duration)

	Shutdown(ctx context.Context) error
}
