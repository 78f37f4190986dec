package engine

import "time"

// Task is a handle to a scheduled function.
type Task interface {
	// Cancel stops the task. It reports false if the task already ran or was
	// already cancelled.
	Cancel() bool
}

// Scheduler runs fn once after d has elapsed, on its own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return timerTask{time.AfterFunc(d, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool { return t.t.Stop() }
