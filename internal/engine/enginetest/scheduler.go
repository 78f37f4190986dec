// Package enginetest provides a deterministic scheduler for engine tests.
package enginetest

import (
	"sync"
	"time"

	"github.com/abhisek/mindreset/internal/engine"
)

// ManualScheduler records scheduled functions and runs them only when told.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*Task
}

var _ engine.Scheduler = (*ManualScheduler)(nil)

// Task is a scheduled function held by a ManualScheduler.
type Task struct {
	Delay time.Duration

	mu        sync.Mutex
	fn        func()
	fired     bool
	cancelled bool
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) engine.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Task{Delay: d, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Cancel marks the task cancelled so Advance skips it.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Cancelled reports whether Cancel succeeded on this task.
func (t *Task) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Fire runs the function even if the task was cancelled, like a timer that
// expired at the same moment it was stopped.
func (t *Task) Fire() {
	t.mu.Lock()
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// Pending returns the tasks that have neither fired nor been cancelled.
func (s *ManualScheduler) Pending() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Task
	for _, t := range s.tasks {
		t.mu.Lock()
		if !t.fired && !t.cancelled {
			out = append(out, t)
		}
		t.mu.Unlock()
	}
	return out
}

// Last returns the most recently scheduled task, or nil.
func (s *ManualScheduler) Last() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return nil
	}
	return s.tasks[len(s.tasks)-1]
}

// Advance fires every pending task in scheduling order and returns how many
// ran.
func (s *ManualScheduler) Advance() int {
	pending := s.Pending()
	for _, t := range pending {
		t.Fire()
	}
	return len(pending)
}
