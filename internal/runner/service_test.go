package runner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/intune-dash/internal/model"
)

const testTimeout = 5 * time.Second

func waitDone(t *testing.T, h *Handle) Result {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(testTimeout):
		t.Fatalf("Task %s (%s) did not finish within %v", h.ID(), h.Label(), testTimeout)
	}
	result, ok := h.Result()
	if !ok {
		t.Fatal("Expected result to be available after Done")
	}
	return result
}

func waitFirstStep(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Progress():
	case <-time.After(testTimeout):
		t.Fatalf("Task %s reported no progress within %v", h.ID(), testTimeout)
	}
}

func TestNewService(t *testing.T) {
	service := NewService()

	if service.stepInterval != DefaultStepInterval {
		t.Errorf("Expected stepInterval to be %v, got %v", DefaultStepInterval, service.stepInterval)
	}

	if service.maxParallel != DefaultMaxParallel {
		t.Errorf("Expected maxParallel to be %d, got %d", DefaultMaxParallel, service.maxParallel)
	}

	if service.policy != OverlapReject {
		t.Errorf("Expected policy to be %s, got %s", OverlapReject, service.policy)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestNewService_Options(t *testing.T) {
	service := NewService(
		WithStepInterval(time.Millisecond),
		WithMaxParallel(50),
		WithOverlapPolicy(OverlapQueue),
	)

	if service.stepInterval != time.Millisecond {
		t.Errorf("Expected stepInterval 1ms, got %v", service.stepInterval)
	}
	if service.maxParallel != MaxParallelLimit {
		t.Errorf("Expected maxParallel clamped to %d, got %d", MaxParallelLimit, service.maxParallel)
	}
	if service.policy != OverlapQueue {
		t.Errorf("Expected policy %s, got %s", OverlapQueue, service.policy)
	}

	service = NewService(WithMaxParallel(0), WithOverlapPolicy("bogus"), WithStepInterval(-time.Second))
	if service.maxParallel != 1 {
		t.Errorf("Expected maxParallel clamped to 1, got %d", service.maxParallel)
	}
	if service.policy != OverlapReject {
		t.Errorf("Expected unknown policy to be ignored, got %s", service.policy)
	}
	if service.stepInterval != DefaultStepInterval {
		t.Errorf("Expected negative interval to be ignored, got %v", service.stepInterval)
	}
}

func TestRun_AutopilotSyncScenario(t *testing.T) {
	service := NewService(WithStepInterval(time.Millisecond))

	var completions atomic.Int32
	handle, err := service.Run("Autopilot Sync", func() {
		completions.Add(1)
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var progress []int
	for percent := range handle.Progress() {
		progress = append(progress, percent)
	}

	result := waitDone(t, handle)
	if result.Err != nil {
		t.Fatalf("Expected task to complete, got %v", result.Err)
	}

	if len(progress) != model.MaxProgressPercent {
		t.Fatalf("Expected %d progress events, got %d", model.MaxProgressPercent, len(progress))
	}
	for i, percent := range progress {
		if percent != i+1 {
			t.Fatalf("Progress event %d: expected %d, got %d", i, i+1, percent)
		}
	}

	if n := completions.Load(); n != 1 {
		t.Errorf("Expected completion callback to run once, ran %d times", n)
	}

	if result.Task.Status != model.TaskStatusCompleted {
		t.Errorf("Expected status Completed, got %s", result.Task.Status)
	}
	if result.Task.Percent != 100 || result.Task.Progress != 1.0 {
		t.Errorf("Expected final progress 100%%, got %d (%.2f)", result.Task.Percent, result.Task.Progress)
	}
	if result.Task.Label != "Autopilot Sync" {
		t.Errorf("Expected label 'Autopilot Sync', got '%s'", result.Task.Label)
	}
}

func TestRun_UpdateCallbackProgressIsStrictlyIncreasing(t *testing.T) {
	service := NewService(WithStepInterval(time.Millisecond))

	var mu sync.Mutex
	var percents []int
	var statuses []model.TaskStatus
	service.SetUpdateCallback(func(task model.SimulatedTask) {
		mu.Lock()
		defer mu.Unlock()
		statuses = append(statuses, task.Status)
		if task.Status == model.TaskStatusRunning && task.Percent > 0 {
			percents = append(percents, task.Percent)
		}
	})

	handle, err := service.Run("Policy Application", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitDone(t, handle)

	mu.Lock()
	defer mu.Unlock()

	if len(percents) != 100 {
		t.Fatalf("Expected 100 running updates with progress, got %d", len(percents))
	}
	if percents[0] <= 0 {
		t.Errorf("Expected first progress above 0, got %d", percents[0])
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] <= percents[i-1] {
			t.Fatalf("Progress not strictly increasing at %d: %d after %d", i, percents[i], percents[i-1])
		}
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("Expected last progress 100, got %d", percents[len(percents)-1])
	}

	if statuses[0] != model.TaskStatusRunning {
		t.Errorf("Expected first update to be Running, got %s", statuses[0])
	}
	if statuses[len(statuses)-1] != model.TaskStatusCompleted {
		t.Errorf("Expected last update to be Completed, got %s", statuses[len(statuses)-1])
	}
}

func TestRun_NoProgressAfterCompletion(t *testing.T) {
	service := NewService(WithStepInterval(time.Millisecond))

	var mu sync.Mutex
	completed := false
	lateUpdates := 0
	lastPercent := 0

	handle, err := service.Start(context.Background(), "Compliance Check",
		WithProgress(func(percent int) {
			mu.Lock()
			defer mu.Unlock()
			if completed {
				lateUpdates++
			}
			lastPercent = percent
		}),
		WithCompletion(func() {
			mu.Lock()
			defer mu.Unlock()
			if lastPercent != 100 {
				t.Errorf("Completion invoked at %d%%, expected 100%%", lastPercent)
			}
			completed = true
		}),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitDone(t, handle)

	// Give a stray worker a chance to misbehave.
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if !completed {
		t.Error("Expected completion callback to be called")
	}
	if lateUpdates != 0 {
		t.Errorf("Expected no progress after completion, got %d updates", lateUpdates)
	}
}

func TestRun_EmptyLabelIsRejected(t *testing.T) {
	service := NewService(WithStepInterval(time.Millisecond))

	for _, label := range []string{"", "   ", "\t\n"} {
		called := false
		handle, err := service.Run(label, func() { called = true })
		if !errors.Is(err, ErrEmptyLabel) {
			t.Errorf("Run(%q): expected ErrEmptyLabel, got %v", label, err)
		}
		if handle != nil {
			t.Errorf("Run(%q): expected nil handle", label)
		}
		if called {
			t.Errorf("Run(%q): completion must not be called", label)
		}
	}

	if n := len(service.GetAllTasks()); n != 0 {
		t.Errorf("Expected no registered tasks, got %d", n)
	}
}

func TestRun_LabelIsTrimmed(t *testing.T) {
	service := NewService(WithStepInterval(0))

	handle, err := service.Run("  Report Generation  ", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if handle.Label() != "Report Generation" {
		t.Errorf("Expected trimmed label, got '%s'", handle.Label())
	}
	waitDone(t, handle)
}

func TestRun_SequentialRunsCompleteIndependently(t *testing.T) {
	service := NewService(WithStepInterval(time.Millisecond))

	labels := []string{"Autopilot Sync", "Report Generation"}
	ids := make(map[string]bool)

	for _, label := range labels {
		var completions atomic.Int32
		handle, err := service.Run(label, func() { completions.Add(1) })
		if err != nil {
			t.Fatalf("Run(%s): expected no error, got %v", label, err)
		}
		if ids[handle.ID()] {
			t.Errorf("Duplicate task ID %s", handle.ID())
		}
		ids[handle.ID()] = true

		result := waitDone(t, handle)
		if result.Err != nil {
			t.Errorf("Run(%s): expected completion, got %v", label, result.Err)
		}
		if n := completions.Load(); n != 1 {
			t.Errorf("Run(%s): expected one completion, got %d", label, n)
		}
	}

	if n := service.ActiveCount(); n != 0 {
		t.Errorf("Expected no active tasks, got %d", n)
	}
}

func TestRun_StartFromCompletionCallback(t *testing.T) {
	service := NewService(WithStepInterval(0))
	defer service.Shutdown(context.Background())

	type started struct {
		handle *Handle
		err    error
	}
	next := make(chan started, 1)

	first, err := service.Run("Autopilot Sync", func() {
		h, err := service.Run("Policy Application", nil)
		next <- started{handle: h, err: err}
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitDone(t, first)

	got := <-next
	if got.err != nil {
		t.Fatalf("Expected run from completion callback to start, got %v", got.err)
	}
	if result := waitDone(t, got.handle); result.Err != nil {
		t.Errorf("Expected second task to complete, got %v", result.Err)
	}
}

func TestRun_StartRightAfterDone(t *testing.T) {
	service := NewService(WithStepInterval(0))
	defer service.Shutdown(context.Background())

	for i := 0; i < 20; i++ {
		handle, err := service.Run("Compliance Check", nil)
		if err != nil {
			t.Fatalf("Run %d: expected the slot to be free after Done, got %v", i, err)
		}
		<-handle.Done()
	}
}

func TestRun_CancelFreesSlotBeforeDone(t *testing.T) {
	service := NewService(WithStepInterval(time.Hour))
	defer service.Shutdown(context.Background())

	handle, err := service.Run("Report Generation", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := service.Cancel(handle.ID()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	<-handle.Done()

	if n := service.ActiveCount(); n != 0 {
		t.Errorf("Expected no active tasks once Done is closed, got %d", n)
	}
	again, err := service.Run("Report Generation", nil)
	if err != nil {
		t.Fatalf("Expected restart after cancel, got %v", err)
	}
	_ = service.Cancel(again.ID())
	waitDone(t, again)
}

func TestRun_FinishedTasksAreNotRetained(t *testing.T) {
	service := NewService(WithStepInterval(0))

	handle, err := service.Run("Autopilot Sync", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitDone(t, handle)

	if _, exists := service.GetTask(handle.ID()); exists {
		t.Error("Expected finished task to be dropped from the registry")
	}
	if n := len(service.GetAllTasks()); n != 0 {
		t.Errorf("Expected empty registry, got %d tasks", n)
	}
}

func TestStart_RejectsOverlappingTask(t *testing.T) {
	service := NewService(WithStepInterval(20 * time.Millisecond))

	first, err := service.Run("Autopilot Sync", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := service.Run("Apply Policies", nil)
	if !errors.Is(err, ErrTaskInProgress) {
		t.Fatalf("Expected ErrTaskInProgress, got %v", err)
	}
	if second != nil {
		t.Error("Expected nil handle for rejected task")
	}
	if !strings.Contains(err.Error(), "Autopilot Sync") {
		t.Errorf("Expected error to name the running task, got: %v", err)
	}

	task, exists := service.GetTask(first.ID())
	if !exists {
		t.Fatal("Expected first task to be registered")
	}
	if task.Status != model.TaskStatusRunning {
		t.Errorf("Expected first task Running, got %s", task.Status)
	}

	if err := service.Cancel(first.ID()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	waitDone(t, first)
}

func TestStart_QueuePolicyRunsTasksInOrder(t *testing.T) {
	service := NewService(
		WithStepInterval(time.Millisecond),
		WithOverlapPolicy(OverlapQueue),
	)

	var mu sync.Mutex
	var order []string
	record := func(label string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, label)
		}
	}

	first, err := service.Run("Autopilot Sync", record("Autopilot Sync"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := service.Run("Compliance Check", record("Compliance Check"))
	if err != nil {
		t.Fatalf("Expected queued start to succeed, got %v", err)
	}

	task, exists := service.GetTask(second.ID())
	if !exists {
		t.Fatal("Expected queued task to be registered")
	}
	if task.Status != model.TaskStatusPending {
		t.Errorf("Expected queued task Pending, got %s", task.Status)
	}
	if n := service.ActiveCount(); n != 1 {
		t.Errorf("Expected 1 active task, got %d", n)
	}

	waitDone(t, first)
	result := waitDone(t, second)
	if result.Err != nil {
		t.Errorf("Expected queued task to complete, got %v", result.Err)
	}
	if !result.Task.StartedAt.After(first.result.Task.StartedAt) {
		t.Error("Expected queued task to start after the first one")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "Autopilot Sync" || order[1] != "Compliance Check" {
		t.Errorf("Unexpected completion order: %v", order)
	}
}

func TestStart_ParallelSlotsRunIndependently(t *testing.T) {
	service := NewService(WithStepInterval(time.Millisecond), WithMaxParallel(2))

	var completions atomic.Int32
	a, err := service.Run("Autopilot Sync", func() { completions.Add(1) })
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, err := service.Run("Apply Policies", func() { completions.Add(1) })
	if err != nil {
		t.Fatalf("Expected second slot to accept task, got %v", err)
	}

	ra := waitDone(t, a)
	rb := waitDone(t, b)
	if ra.Err != nil || rb.Err != nil {
		t.Errorf("Expected both tasks to complete, got %v / %v", ra.Err, rb.Err)
	}
	if n := completions.Load(); n != 2 {
		t.Errorf("Expected 2 completions, got %d", n)
	}
}

func TestCancel_RunningTaskSkipsCompletion(t *testing.T) {
	service := NewService(WithStepInterval(10 * time.Millisecond))

	called := false
	handle, err := service.Run("Autopilot Sync", func() { called = true })
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	waitFirstStep(t, handle)
	if err := service.Cancel(handle.ID()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	result := waitDone(t, handle)
	if !errors.Is(result.Err, ErrCancelled) {
		t.Errorf("Expected ErrCancelled, got %v", result.Err)
	}
	if result.Task.Status != model.TaskStatusCancelled {
		t.Errorf("Expected status Cancelled, got %s", result.Task.Status)
	}
	if result.Task.Percent >= 100 {
		t.Errorf("Expected cancelled task below 100%%, got %d", result.Task.Percent)
	}
	if result.Task.LastError == "" {
		t.Error("Expected LastError to be set")
	}
	if called {
		t.Error("Completion must not be invoked for a cancelled task")
	}

	if _, err := handle.Wait(context.Background()); !errors.Is(err, ErrCancelled) {
		t.Errorf("Wait: expected ErrCancelled, got %v", err)
	}
}

func TestStart_ContextCancellation(t *testing.T) {
	service := NewService(WithStepInterval(10 * time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	handle, err := service.Start(ctx, "Report Generation")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	waitFirstStep(t, handle)
	cancel()

	result := waitDone(t, handle)
	if !errors.Is(result.Err, ErrCancelled) {
		t.Errorf("Expected ErrCancelled, got %v", result.Err)
	}
	if !errors.Is(result.Err, context.Canceled) {
		t.Errorf("Expected error to wrap context.Canceled, got %v", result.Err)
	}
}

func TestCancel_QueuedTask(t *testing.T) {
	service := NewService(
		WithStepInterval(10*time.Millisecond),
		WithOverlapPolicy(OverlapQueue),
	)

	first, err := service.Run("Autopilot Sync", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	queued, err := service.Run("Apply Policies", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := service.Cancel(queued.ID()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	result := waitDone(t, queued)
	if !errors.Is(result.Err, ErrCancelled) {
		t.Errorf("Expected ErrCancelled, got %v", result.Err)
	}
	if !result.Task.StartedAt.IsZero() {
		t.Error("Expected cancelled queued task never to start")
	}

	if err := service.Cancel(first.ID()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	waitDone(t, first)
}

func TestCancel_UnknownTask(t *testing.T) {
	service := NewService()

	err := service.Cancel("task-missing")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestShutdown(t *testing.T) {
	service := NewService(
		WithStepInterval(10*time.Millisecond),
		WithOverlapPolicy(OverlapQueue),
	)

	running, err := service.Run("Autopilot Sync", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	queued, err := service.Run("Compliance Check", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	if err := service.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	for _, h := range []*Handle{running, queued} {
		result := waitDone(t, h)
		if !errors.Is(result.Err, ErrShutdown) {
			t.Errorf("Task %s: expected error wrapping ErrShutdown, got %v", h.Label(), result.Err)
		}
	}

	if _, err := service.Run("Report Generation", nil); !errors.Is(err, ErrShutdown) {
		t.Errorf("Expected ErrShutdown after shutdown, got %v", err)
	}
}

func TestHandle_WaitHonoursContext(t *testing.T) {
	service := NewService(WithStepInterval(50 * time.Millisecond))

	handle, err := service.Run("Autopilot Sync", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if _, err := handle.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
	if _, ok := handle.Result(); ok {
		t.Error("Expected no result while the task is running")
	}

	if err := service.Cancel(handle.ID()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	waitDone(t, handle)
}

func TestParseOverlapPolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected OverlapPolicy
		wantErr  bool
	}{
		{"", OverlapReject, false},
		{"reject", OverlapReject, false},
		{" Queue ", OverlapQueue, false},
		{"parallel", "", true},
	}

	for _, test := range tests {
		result, err := ParseOverlapPolicy(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseOverlapPolicy(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseOverlapPolicy(%q) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with '%s', got: %s", TaskIDPrefix, id1)
	}

	// Check UUID format (task- + 36 chars for UUID)
	if len(id1) != len(TaskIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(TaskIDPrefix)+36, len(id1), id1)
	}
}
