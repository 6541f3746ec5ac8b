package runtime

import (
	"go.uber.org/atomic"

	"github.com/odvcencio/unstable-ui/state"
)

// wake posts one message at a time into the loop: repeated requests before
// the loop handles the message collapse into one post.
type wake struct {
	msg     Message
	post    func(Message) bool
	pending atomic.Bool
}

func (w *wake) request() {
	if w.post == nil {
		return
	}
	if w.pending.CompareAndSwap(false, true) && !w.post(w.msg) {
		w.pending.Store(false)
	}
}

func (w *wake) resetPending() {
	w.pending.Store(false)
}

// QueueScheduler queues callbacks on a state.Queue and wakes the app loop
// to flush them, so work finished in other goroutines runs on the loop.
type QueueScheduler struct {
	queue *state.Queue
	wake  wake
}

// NewQueueScheduler wires queue to post.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{
		queue: queue,
		wake:  wake{msg: QueueFlushMsg{}, post: post},
	}
}

// Schedule queues fn and posts a QueueFlushMsg if none is pending.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.wake.request()
}

func (s *QueueScheduler) resetPending() {
	if s != nil {
		s.wake.resetPending()
	}
}

// Invalidator requests render passes, coalescing repeated requests.
type Invalidator struct {
	wake wake
}

// NewInvalidator creates an invalidator wired to post.
func NewInvalidator(post func(Message) bool) *Invalidator {
	return &Invalidator{wake: wake{msg: InvalidateMsg{}, post: post}}
}

// Invalidate posts an InvalidateMsg if none is pending.
func (i *Invalidator) Invalidate() {
	if i != nil {
		i.wake.request()
	}
}

// Schedule runs fn inline and requests a render pass.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

func (i *Invalidator) resetPending() {
	if i != nil {
		i.wake.resetPending()
	}
}
