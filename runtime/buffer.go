package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/unstable-ui/backend"
)

// Cell is a single character cell in the buffer.
type Cell = backend.Cell

// span is the dirty column range [start, end) of one row.
type span struct {
	start, end int
}

// Buffer is the grid widgets render into. Changed cells are tracked per row
// so the app only flushes what moved since the last frame.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirtyAll  bool
	dirtyRows []span
	dirty     int
}

// NewBuffer creates a w×h buffer of blank cells.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the dimensions, keeping the overlapping content, and marks
// everything dirty.
func (b *Buffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == b.width && h == b.height && b.cells != nil {
		return
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = Cell{Rune: ' '}
	}
	for y := 0; y < min(h, b.height); y++ {
		n := min(w, b.width)
		copy(cells[y*w:y*w+n], b.cells[y*b.width:y*b.width+n])
	}
	b.cells = cells
	b.width = w
	b.height = h
	b.dirtyRows = make([]span, h)
	b.MarkAllDirty()
}

// Get returns the cell at (x, y), or a blank cell outside the buffer.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell. Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, r rune, style backend.Style) {
	if !b.inside(x, y) {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: style}
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	b.markDirty(x, y)
}

// SetString writes s from (x, y) and returns the x after the last cell.
// Wide runes take two cells; text past the right edge is clipped.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= b.width {
			break
		}
		b.Set(x, y, r, style)
		for i := 1; i < w; i++ {
			b.Set(x+i, y, 0, style)
		}
		x += w
	}
	return x
}

// Fill paints r with ch.
func (b *Buffer) Fill(r Rect, ch rune, style backend.Style) {
	r = r.Intersect(Rect{Width: b.width, Height: b.height})
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.Set(x, y, ch, style)
		}
	}
}

// Clear blanks the whole buffer.
func (b *Buffer) Clear() {
	b.Fill(Rect{Width: b.width, Height: b.height}, ' ', backend.DefaultStyle())
}

// Row returns the cells of row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width : (y+1)*b.width]
}

// Text returns row y as a string, skipping wide-rune placeholders.
func (b *Buffer) Text(y int) string {
	row := b.Row(y)
	out := make([]rune, 0, len(row))
	for _, c := range row {
		if c.Rune != 0 {
			out = append(out, c.Rune)
		}
	}
	return string(out)
}

// MarkAllDirty forces the next flush to cover every cell.
func (b *Buffer) MarkAllDirty() {
	b.dirtyAll = true
}

// IsDirty reports whether anything changed since ClearDirty.
func (b *Buffer) IsDirty() bool {
	return b.dirtyAll || b.dirty > 0
}

// DirtyCount returns the number of cells covered by dirty spans.
func (b *Buffer) DirtyCount() int {
	if b.dirtyAll {
		return b.width * b.height
	}
	return b.dirty
}

// ForEachDirtySpan calls fn for the dirty range of each changed row.
func (b *Buffer) ForEachDirtySpan(fn func(y, startX, endX int)) {
	for y := 0; y < b.height; y++ {
		if b.dirtyAll {
			fn(y, 0, b.width)
			continue
		}
		if s := b.dirtyRows[y]; s.end > s.start {
			fn(y, s.start, s.end)
		}
	}
}

// ClearDirty forgets all changes.
func (b *Buffer) ClearDirty() {
	b.dirtyAll = false
	b.dirty = 0
	clear(b.dirtyRows)
}

func (b *Buffer) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) markDirty(x, y int) {
	if b.dirtyAll {
		return
	}
	s := &b.dirtyRows[y]
	before := s.end - s.start
	if s.end <= s.start {
		s.start, s.end = x, x+1
	} else {
		s.start = min(s.start, x)
		s.end = max(s.end, x+1)
	}
	b.dirty += (s.end - s.start) - before
}
