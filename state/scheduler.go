package state

import "sync"

// Scheduler decides where a callback runs.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(func())

// Schedule dispatches fn using f.
func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// DirectScheduler runs callbacks immediately in the caller goroutine.
var DirectScheduler Scheduler = SchedulerFunc(func(fn func()) { fn() })

// AsyncScheduler runs each callback in a new goroutine.
type AsyncScheduler struct{}

// Schedule runs fn asynchronously.
func (AsyncScheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	go fn()
}

// Queue collects callbacks until the owner flushes them, typically once per
// UI loop iteration.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends fn.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the callbacks pending at call time and returns how many ran.
// Callbacks scheduled while flushing wait for the next flush.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Drain flushes until the queue stays empty or maxRounds flushes ran.
// It returns the total number of callbacks run.
func (q *Queue) Drain(maxRounds int) int {
	total := 0
	for round := 0; round < maxRounds; round++ {
		n := q.Flush()
		if n == 0 {
			break
		}
		total += n
	}
	return total
}
