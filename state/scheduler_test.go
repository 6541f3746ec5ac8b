package state

import "testing"

func TestQueue_FlushOrder(t *testing.T) {
	queue := NewQueue()
	calls := make([]int, 0, 2)

	queue.Schedule(func() { calls = append(calls, 1) })
	queue.Schedule(func() { calls = append(calls, 2) })
	if queue.Len() != 2 {
		t.Fatalf("expected 2 pending, got %d", queue.Len())
	}

	if flushed := queue.Flush(); flushed != 2 {
		t.Fatalf("expected 2 callbacks flushed, got %d", flushed)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("unexpected callback order: %v", calls)
	}
	if flushed := queue.Flush(); flushed != 0 {
		t.Fatalf("expected empty flush, got %d", flushed)
	}
}

func TestQueue_FlushDefersNestedSchedules(t *testing.T) {
	queue := NewQueue()
	ran := 0
	queue.Schedule(func() {
		ran++
		queue.Schedule(func() { ran++ })
	})

	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback in first flush, got %d", flushed)
	}
	if queue.Len() != 1 {
		t.Fatalf("expected nested callback to wait, got %d pending", queue.Len())
	}
	if total := queue.Drain(4); total != 1 || ran != 2 {
		t.Fatalf("expected drain to run nested callback, got total=%d ran=%d", total, ran)
	}
}

func TestQueue_DrainStopsAtMaxRounds(t *testing.T) {
	queue := NewQueue()
	var again func()
	again = func() { queue.Schedule(again) }
	queue.Schedule(again)

	if total := queue.Drain(3); total != 3 {
		t.Fatalf("expected 3 callbacks over 3 rounds, got %d", total)
	}
	if queue.Len() != 1 {
		t.Fatalf("expected rescheduled callback to remain, got %d", queue.Len())
	}
}

func TestSchedulerFunc_NilSafe(t *testing.T) {
	var f SchedulerFunc
	f.Schedule(func() { t.Fatal("nil scheduler must not run callbacks") })

	ran := false
	DirectScheduler.Schedule(func() { ran = true })
	if !ran {
		t.Fatalf("expected direct scheduler to run inline")
	}
}
