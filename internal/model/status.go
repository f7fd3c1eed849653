package model

// TaskStatus represents the status of a simulated task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusRunning means the task is advancing its progress
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusCompleted means the task reached 100%
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusCancelled means the task was stopped before reaching 100%
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusRunning
}

// IsFinished returns true if the task is in a finished state (completed or cancelled)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled
}
