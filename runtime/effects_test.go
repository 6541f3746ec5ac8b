package runtime

import (
	"context"
	"testing"
	"time"
)

func TestAfter_Immediate(t *testing.T) {
	calls := 0
	effect := After(0, ResizeMsg{Width: 1, Height: 1})
	effect.Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected immediate post, got %d", calls)
	}
}

func TestAfter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	After(time.Hour, InvalidateMsg{}).Run(ctx, func(Message) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Fatalf("expected no post after cancel, got %d", calls)
	}
}

func TestEvery_Invalid(t *testing.T) {
	calls := 0
	post := func(Message) bool {
		calls++
		return true
	}
	Every(0, func(time.Time) Message { return InvalidateMsg{} }).Run(context.Background(), post)
	Every(10*time.Millisecond, nil).Run(context.Background(), post)
	if calls != 0 {
		t.Fatalf("expected no posts for invalid arguments, got %d", calls)
	}
}

func TestTask_PostsResult(t *testing.T) {
	var got []Message
	post := func(msg Message) bool {
		got = append(got, msg)
		return true
	}
	Task(func(ctx context.Context) Message {
		return StatusMsg{Text: "wordlist loaded"}
	}).Run(context.Background(), post)
	Task(func(ctx context.Context) Message { return nil }).Run(context.Background(), post)

	if len(got) != 1 || got[0] != (StatusMsg{Text: "wordlist loaded"}) {
		t.Fatalf("expected one status message, got %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	Task(func(context.Context) Message {
		cancel()
		return StatusMsg{Text: "late"}
	}).Run(ctx, post)
	if len(got) != 1 {
		t.Fatalf("expected cancelled task to post nothing, got %v", got)
	}
}
