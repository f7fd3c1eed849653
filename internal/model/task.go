package model

import (
	"fmt"
	"time"
)

// Progress bounds for a simulated task
const (
	MinProgressPercent = 0
	MaxProgressPercent = 100
)

// SimulatedTask represents a single fake long-running console operation
type SimulatedTask struct {
	ID         string
	Label      string
	Status     TaskStatus
	Percent    int       // 0 to 100
	Progress   float64   // 0.0 to 1.0
	LastError  string    // set when the task was cancelled
	StartedAt  time.Time // when the worker picked the task up
	FinishedAt time.Time // when the task completed or was cancelled
}

// SetPercent updates Percent and the derived Progress fraction
func (st *SimulatedTask) SetPercent(percent int) {
	if percent < MinProgressPercent {
		percent = MinProgressPercent
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	st.Percent = percent
	st.Progress = float64(percent) / MaxProgressPercent
}

// Elapsed returns how long the task has been running, or ran in total once finished
func (st SimulatedTask) Elapsed() time.Duration {
	if st.StartedAt.IsZero() {
		return 0
	}
	if st.FinishedAt.IsZero() {
		return time.Since(st.StartedAt)
	}
	return st.FinishedAt.Sub(st.StartedAt)
}

// ProcessingText returns the status line shown while the task runs
func (st SimulatedTask) ProcessingText() string {
	return fmt.Sprintf("Processing %s...", st.Label)
}

// CompletedText returns the status line shown once the task completed
func (st SimulatedTask) CompletedText() string {
	return fmt.Sprintf("%s completed successfully!", st.Label)
}
