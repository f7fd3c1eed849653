package runner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ytget/intune-dash/internal/model"
)

// Runner defaults
const (
	DefaultStepInterval = 25 * time.Millisecond
	DefaultMaxParallel  = 1
	MaxParallelLimit    = 10
	TaskIDPrefix        = "task-"
)

// Option configures a Service
type Option func(*Service)

// WithStepInterval sets the delay between two progress steps
func WithStepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.stepInterval = d
		}
	}
}

// WithMaxParallel sets how many tasks may run at the same time
func WithMaxParallel(n int) Option {
	return func(s *Service) {
		s.maxParallel = clampParallel(n)
	}
}

// WithOverlapPolicy sets what Start does when every slot is busy
func WithOverlapPolicy(p OverlapPolicy) Option {
	return func(s *Service) {
		if p == OverlapReject || p == OverlapQueue {
			s.policy = p
		}
	}
}

// RunOption configures a single task
type RunOption func(*entry)

// WithProgress registers a per-task observer called after every step
func WithProgress(fn func(percent int)) RunOption {
	return func(e *entry) {
		e.onProgress = fn
	}
}

// WithCompletion registers the callback invoked once the task reached 100%
func WithCompletion(fn func()) RunOption {
	return func(e *entry) {
		e.onComplete = fn
	}
}

// entry is the registry record of one task
type entry struct {
	seq        uint64
	task       model.SimulatedTask
	handle     *Handle
	ctx        context.Context
	cancel     context.CancelCauseFunc
	stopWatch  func() bool
	running    bool // holds a parallel slot
	finished   bool
	onProgress func(int)
	onComplete func()
}

// Service runs simulated tasks
type Service struct {
	tasks        map[string]*entry
	tasksMutex   sync.RWMutex
	queue        []*entry
	seq          uint64
	maxParallel  int
	activeCount  int
	stepInterval time.Duration
	policy       OverlapPolicy
	closed       bool
	workers      sync.WaitGroup
	onUpdate     func(model.SimulatedTask) // callback for UI updates
}

// NewService creates a new task runner
func NewService(opts ...Option) *Service {
	s := &Service{
		tasks:        make(map[string]*entry),
		maxParallel:  DefaultMaxParallel,
		stepInterval: DefaultStepInterval,
		policy:       OverlapReject,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUpdateCallback sets the callback function for task updates. It is called
// from worker goroutines; UI hosts must marshal to their own thread.
func (s *Service) SetUpdateCallback(callback func(model.SimulatedTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetStepInterval changes the pace of tasks started afterwards
func (s *Service) SetStepInterval(d time.Duration) {
	if d < 0 {
		return
	}
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.stepInterval = d
}

// Run starts a task and invokes onComplete exactly once after progress
// reached 100. onComplete is not invoked if the task gets cancelled.
func (s *Service) Run(label string, onComplete func()) (*Handle, error) {
	return s.Start(context.Background(), label, WithCompletion(onComplete))
}

// Start registers a new task and starts it, or queues it when the overlap
// policy allows. Cancelling ctx cancels the task.
func (s *Service) Start(ctx context.Context, label string, opts ...RunOption) (*Handle, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}

	s.tasksMutex.Lock()

	if s.closed {
		s.tasksMutex.Unlock()
		return nil, ErrShutdown
	}

	if s.activeCount >= s.maxParallel && s.policy == OverlapReject {
		busy := s.activeLabelsLocked()
		s.tasksMutex.Unlock()
		return nil, fmt.Errorf("cannot start %q: %w (%s)", label, ErrTaskInProgress, strings.Join(busy, ", "))
	}

	id := generateTaskID()
	s.seq++
	e := &entry{
		seq: s.seq,
		task: model.SimulatedTask{
			ID:     id,
			Label:  label,
			Status: model.TaskStatusPending,
		},
		handle: newHandle(id, label),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ctx, e.cancel = context.WithCancelCause(ctx)
	e.stopWatch = context.AfterFunc(e.ctx, func() { s.cancelPending(e) })

	s.tasks[id] = e
	started := s.activeCount < s.maxParallel
	if started {
		s.startLocked(e)
	} else {
		s.queue = append(s.queue, e)
	}
	position := len(s.queue)
	snapshot := e.task
	s.tasksMutex.Unlock()

	if started {
		log.Debug("task started", "id", id, "label", label)
	} else {
		log.Debug("task queued", "id", id, "label", label, "position", position)
		s.notifyUpdate(snapshot)
	}

	return e.handle, nil
}

// Cancel stops a pending or running task
func (s *Service) Cancel(id string) error {
	s.tasksMutex.RLock()
	e, exists := s.tasks[id]
	s.tasksMutex.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	e.cancel(ErrCancelled)
	return nil
}

// GetTask returns a snapshot of a pending or running task
func (s *Service) GetTask(id string) (model.SimulatedTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	e, exists := s.tasks[id]
	if !exists {
		return model.SimulatedTask{}, false
	}
	return e.task, true
}

// GetAllTasks returns snapshots of all pending and running tasks in start order
func (s *Service) GetAllTasks() []model.SimulatedTask {
	s.tasksMutex.RLock()
	entries := make([]*entry, 0, len(s.tasks))
	for _, e := range s.tasks {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	tasks := make([]model.SimulatedTask, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, e.task)
	}
	s.tasksMutex.RUnlock()
	return tasks
}

// ActiveCount returns the number of running tasks
func (s *Service) ActiveCount() int {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.activeCount
}

// Shutdown cancels every task and waits for the workers to exit
func (s *Service) Shutdown(ctx context.Context) error {
	s.tasksMutex.Lock()
	s.closed = true
	pending := s.queue
	s.queue = nil
	running := make([]*entry, 0, len(s.tasks))
	for _, e := range s.tasks {
		if e.task.Status.IsActive() {
			running = append(running, e)
		}
	}
	s.tasksMutex.Unlock()

	for _, e := range pending {
		s.finish(e, cancelError(ErrShutdown))
	}
	for _, e := range running {
		e.cancel(ErrShutdown)
	}

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Debug("runner shut down", "cancelled", len(pending)+len(running))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for task workers: %w", ctx.Err())
	}
}

// startLocked claims a slot for e and spawns its worker. Caller holds tasksMutex.
func (s *Service) startLocked(e *entry) {
	interval := s.claimLocked(e)
	go s.execute(e, interval)
}

// claimLocked moves e to Running and accounts for its worker without
// spawning it. Caller holds tasksMutex.
func (s *Service) claimLocked(e *entry) time.Duration {
	s.activeCount++
	e.running = true
	e.task.Status = model.TaskStatusRunning
	e.task.StartedAt = time.Now()
	s.workers.Add(1)
	return s.stepInterval
}

// execute advances the task one percent per interval until 100 or cancellation
func (s *Service) execute(e *entry, interval time.Duration) {
	defer s.workers.Done()

	s.tasksMutex.RLock()
	snapshot := e.task
	s.tasksMutex.RUnlock()
	s.notifyUpdate(snapshot)

	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for percent := model.MinProgressPercent + 1; percent <= model.MaxProgressPercent; percent++ {
		if err := limiter.Wait(e.ctx); err != nil {
			cause := context.Cause(e.ctx)
			if cause == nil {
				cause = err
			}
			log.Debug("task cancelled", "id", e.task.ID, "percent", percent-1, "cause", cause)
			s.finish(e, cancelError(cause))
			return
		}

		s.tasksMutex.Lock()
		e.task.SetPercent(percent)
		snapshot := e.task
		s.tasksMutex.Unlock()

		s.report(e, snapshot)
	}

	log.Debug("task completed", "id", e.task.ID, "label", e.task.Label)
	s.finish(e, nil)
}

// report publishes one progress step to every observer
func (s *Service) report(e *entry, snapshot model.SimulatedTask) {
	s.notifyUpdate(snapshot)
	if e.onProgress != nil {
		e.onProgress(snapshot.Percent)
	}
	e.handle.progress <- snapshot.Percent
}

// finish moves e to its terminal state exactly once, drops it from the
// registry, frees its slot and signals completion. The slot is released
// before any completion signal so a follow-up start never sees it busy.
func (s *Service) finish(e *entry, err error) {
	s.tasksMutex.Lock()
	if e.finished {
		s.tasksMutex.Unlock()
		return
	}
	e.finished = true
	if err == nil {
		e.task.Status = model.TaskStatusCompleted
		e.task.SetPercent(model.MaxProgressPercent)
	} else {
		e.task.Status = model.TaskStatusCancelled
		e.task.LastError = err.Error()
	}
	e.task.FinishedAt = time.Now()
	delete(s.tasks, e.task.ID)
	next, interval := s.releaseLocked(e)
	snapshot := e.task
	s.tasksMutex.Unlock()

	e.stopWatch()
	close(e.handle.progress)
	s.notifyUpdate(snapshot)

	if next != nil {
		log.Debug("queued task started", "id", next.task.ID, "label", next.task.Label)
		go s.execute(next, interval)
	}

	e.handle.result = Result{Task: snapshot, Err: err}
	if err == nil && e.onComplete != nil {
		e.onComplete()
	}
	close(e.handle.done)
	e.cancel(nil)
}

// cancelPending finalizes a queued task whose context was cancelled
func (s *Service) cancelPending(e *entry) {
	s.tasksMutex.Lock()
	if e.finished || e.task.Status != model.TaskStatusPending {
		s.tasksMutex.Unlock()
		return
	}
	for i, queued := range s.queue {
		if queued == e {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	s.tasksMutex.Unlock()

	log.Debug("queued task cancelled", "id", e.task.ID)
	s.finish(e, cancelError(context.Cause(e.ctx)))
}

// releaseLocked frees the slot held by e and claims it for the next queued
// task, which the caller must spawn. Caller holds tasksMutex.
func (s *Service) releaseLocked(e *entry) (*entry, time.Duration) {
	if !e.running {
		return nil, 0
	}
	e.running = false
	s.activeCount--

	if s.closed || len(s.queue) == 0 || s.activeCount >= s.maxParallel {
		return nil, 0
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	return next, s.claimLocked(next)
}

// activeLabelsLocked lists running task labels. Caller holds tasksMutex.
func (s *Service) activeLabelsLocked() []string {
	labels := make([]string, 0, s.activeCount)
	for _, e := range s.tasks {
		if e.task.Status.IsActive() {
			labels = append(labels, e.task.Label)
		}
	}
	sort.Strings(labels)
	return labels
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task model.SimulatedTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}

func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxParallelLimit {
		return MaxParallelLimit
	}
	return n
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}
