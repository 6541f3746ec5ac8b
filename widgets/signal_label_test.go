package widgets

import (
	"strings"
	"testing"

	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/state"
)

func TestSignalLabel_FollowsStatusWhileMounted(t *testing.T) {
	status := state.NewSignal("loading words.json")
	queue := state.NewQueue()
	label := NewSignalLabel(status, queue)
	label.Mount()

	status.Set("substituted 3 words")
	if label.Text() != "loading words.json" {
		t.Fatalf("expected text to wait for the queue, got %q", label.Text())
	}
	queue.Flush()
	if label.Text() != "substituted 3 words" {
		t.Fatalf("expected flushed status, got %q", label.Text())
	}

	label.Unmount()
	status.Set("load wordlist: not found")
	if n := queue.Flush(); n != 0 {
		t.Fatalf("expected no callbacks after unmount, got %d", n)
	}
	if label.Text() != "substituted 3 words" {
		t.Fatalf("expected text to stay after unmount, got %q", label.Text())
	}
}

func TestSignalLabel_RenderAligned(t *testing.T) {
	label := NewSignalLabel(state.NewSignal("help"), nil)
	label.SetAlignment(AlignRight)
	buf := runtime.NewBuffer(10, 1)
	label.Layout(runtime.Rect{Width: 10, Height: 1})
	label.Render(runtime.RenderContext{Buffer: buf, Bounds: label.Bounds()})
	if got := buf.Text(0); got != "      help" {
		t.Fatalf("expected right aligned text, got %q", got)
	}

	label.SetAlignment(AlignCenter)
	label.Render(runtime.RenderContext{Buffer: buf, Bounds: label.Bounds()})
	if got := strings.TrimRight(buf.Text(0), " "); got != "   help" {
		t.Fatalf("expected centered text, got %q", got)
	}
}
