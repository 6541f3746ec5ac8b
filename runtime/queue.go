package runtime

// QueueFlushPolicy decides which messages flush the app state queue, where
// plugin completions and widget subscriptions wait for the loop.
// A QueueFlushMsg always flushes.
type QueueFlushPolicy int

const (
	// FlushOnMessageAndTick flushes after every message.
	FlushOnMessageAndTick QueueFlushPolicy = iota
	// FlushOnMessage flushes after every message except ticks.
	FlushOnMessage
	// FlushOnTick flushes only on ticks.
	FlushOnTick
	// FlushManual flushes only on QueueFlushMsg.
	FlushManual
)

func shouldFlushQueue(policy QueueFlushPolicy, msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	_, isTick := msg.(TickMsg)
	switch policy {
	case FlushManual:
		return false
	case FlushOnMessage:
		return !isTick
	case FlushOnTick:
		return isTick
	default:
		return true
	}
}
