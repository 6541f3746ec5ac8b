// Package scroll keeps a vertical viewport over line-based content, such as
// a wrapped passage or the rows of a wordlist table.
package scroll

import (
	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/terminal"
)

// Viewport tracks which lines of the content are visible.
type Viewport struct {
	offset   int
	lines    int
	height   int
	onChange func(offset int)
}

// NewViewport creates an empty viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// SetContentLines updates the content length and clamps the offset.
func (v *Viewport) SetContentLines(n int) {
	if v == nil {
		return
	}
	v.lines = max(n, 0)
	v.SetOffset(v.offset)
}

// ContentLines returns the content length.
func (v *Viewport) ContentLines() int {
	if v == nil {
		return 0
	}
	return v.lines
}

// SetHeight updates the visible height and clamps the offset.
func (v *Viewport) SetHeight(h int) {
	if v == nil {
		return
	}
	v.height = max(h, 0)
	v.SetOffset(v.offset)
}

// Height returns the visible height.
func (v *Viewport) Height() int {
	if v == nil {
		return 0
	}
	return v.height
}

// Offset returns the first visible line.
func (v *Viewport) Offset() int {
	if v == nil {
		return 0
	}
	return v.offset
}

// SetOnChange registers a callback for offset changes.
func (v *Viewport) SetOnChange(fn func(offset int)) {
	if v == nil {
		return
	}
	v.onChange = fn
}

// MaxOffset returns the largest valid offset.
func (v *Viewport) MaxOffset() int {
	if v == nil {
		return 0
	}
	return max(v.lines-v.height, 0)
}

// SetOffset moves the viewport, clamped to the content.
func (v *Viewport) SetOffset(offset int) {
	if v == nil {
		return
	}
	next := min(max(offset, 0), v.MaxOffset())
	if next == v.offset {
		return
	}
	v.offset = next
	if v.onChange != nil {
		v.onChange(next)
	}
}

// ScrollBy moves the viewport by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	if v == nil {
		return
	}
	v.SetOffset(v.offset + delta)
}

// PageBy moves the viewport by whole pages.
func (v *Viewport) PageBy(pages int) {
	if v == nil {
		return
	}
	v.ScrollBy(pages * max(v.height, 1))
}

// ScrollToStart shows the first line.
func (v *Viewport) ScrollToStart() {
	v.SetOffset(0)
}

// ScrollToEnd shows the last line.
func (v *Viewport) ScrollToEnd() {
	if v == nil {
		return
	}
	v.SetOffset(v.MaxOffset())
}

// EnsureVisible scrolls the least amount needed to show line.
func (v *Viewport) EnsureVisible(line int) {
	if v == nil {
		return
	}
	switch {
	case line < v.offset:
		v.SetOffset(line)
	case line >= v.offset+v.height:
		v.SetOffset(line - v.height + 1)
	}
}

// Visible returns the visible line range [start, end).
func (v *Viewport) Visible() (start, end int) {
	if v == nil {
		return 0, 0
	}
	return v.offset, min(v.offset+v.height, v.lines)
}

// HandleKey applies the navigation keys and reports whether key was one.
func (v *Viewport) HandleKey(key terminal.Key) bool {
	if v == nil {
		return false
	}
	switch key {
	case terminal.KeyUp:
		v.ScrollBy(-1)
	case terminal.KeyDown:
		v.ScrollBy(1)
	case terminal.KeyPageUp:
		v.PageBy(-1)
	case terminal.KeyPageDown:
		v.PageBy(1)
	case terminal.KeyHome:
		v.ScrollToStart()
	case terminal.KeyEnd:
		v.ScrollToEnd()
	default:
		return false
	}
	return true
}

// Scrollbar draws a one-column vertical scrollbar.
type Scrollbar struct {
	Track     backend.Style
	Thumb     backend.Style
	TrackRune rune
	ThumbRune rune
	MinThumb  int
}

// DefaultScrollbar returns an ASCII scrollbar.
func DefaultScrollbar() Scrollbar {
	return Scrollbar{
		Track:     backend.DefaultStyle().Dim(true),
		Thumb:     backend.DefaultStyle().Reverse(true),
		TrackRune: '|',
		ThumbRune: ' ',
		MinThumb:  1,
	}
}

// ThumbSpan returns the thumb position and length for a track of height rows.
// It returns zero length when everything fits.
func (s Scrollbar) ThumbSpan(v *Viewport, height int) (pos, length int) {
	if v == nil || height <= 0 || v.lines <= v.height || v.lines == 0 {
		return 0, 0
	}
	length = max(height*v.height/v.lines, max(s.MinThumb, 1))
	length = min(length, height)
	if maxOffset := v.MaxOffset(); maxOffset > 0 {
		pos = (height - length) * v.offset / maxOffset
	}
	return pos, length
}

// Render draws the scrollbar in the column of bounds. Nothing is drawn when
// the content fits.
func (s Scrollbar) Render(buf *runtime.Buffer, bounds runtime.Rect, v *Viewport) {
	pos, length := s.ThumbSpan(v, bounds.Height)
	if length == 0 || buf == nil {
		return
	}
	for y := 0; y < bounds.Height; y++ {
		if y >= pos && y < pos+length {
			buf.Set(bounds.X, bounds.Y+y, s.ThumbRune, s.Thumb)
		} else {
			buf.Set(bounds.X, bounds.Y+y, s.TrackRune, s.Track)
		}
	}
}
