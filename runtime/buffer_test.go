package runtime

import (
	"testing"

	"github.com/odvcencio/unstable-ui/backend"
)

func TestBuffer_DirtySpans(t *testing.T) {
	buf := NewBuffer(10, 3)
	if buf.DirtyCount() != 30 {
		t.Fatalf("expected new buffer fully dirty, got %d", buf.DirtyCount())
	}
	buf.ClearDirty()

	buf.Set(2, 1, 'a', backend.DefaultStyle())
	buf.Set(5, 1, 'b', backend.DefaultStyle())
	buf.Set(2, 1, 'a', backend.DefaultStyle())

	var spans [][3]int
	buf.ForEachDirtySpan(func(y, startX, endX int) {
		spans = append(spans, [3]int{y, startX, endX})
	})
	if len(spans) != 1 || spans[0] != [3]int{1, 2, 6} {
		t.Fatalf("expected one span on row 1 from 2 to 6, got %v", spans)
	}
	if buf.DirtyCount() != 4 {
		t.Fatalf("expected 4 dirty cells, got %d", buf.DirtyCount())
	}
}

func TestBuffer_SetStringClipsAndWidens(t *testing.T) {
	buf := NewBuffer(5, 1)
	end := buf.SetString(0, 0, "漢ab", backend.DefaultStyle())
	if end != 4 {
		t.Fatalf("expected x after text 4, got %d", end)
	}
	if got := buf.Text(0); got != "漢ab " {
		t.Fatalf("expected %q, got %q", "漢ab ", got)
	}

	buf.SetString(3, 0, "xyz", backend.DefaultStyle())
	if got := buf.Text(0); got != "漢axy" {
		t.Fatalf("expected clipped text, got %q", got)
	}
}

func TestBuffer_ResizeKeepsContent(t *testing.T) {
	buf := NewBuffer(3, 1)
	buf.SetString(0, 0, "abc", backend.DefaultStyle())
	buf.Resize(2, 2)

	if got := buf.Text(0); got != "ab" {
		t.Fatalf("expected kept prefix, got %q", got)
	}
	if got := buf.Get(0, 1).Rune; got != ' ' {
		t.Fatalf("expected blank new row, got %q", got)
	}
	if got := buf.Get(9, 9).Rune; got != ' ' {
		t.Fatalf("expected blank outside buffer, got %q", got)
	}
}
