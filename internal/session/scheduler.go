package session

import "time"

// Task is a deferred callback that can be cancelled before it fires.
type Task interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(delay time.Duration, callback func()) Task
}

// TimerScheduler runs callbacks on time.AfterFunc goroutines.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(delay time.Duration, callback func()) Task {
	return time.AfterFunc(delay, callback)
}
