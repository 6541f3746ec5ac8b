// Package widgets provides the terminal widgets of unstable-ui. Field and
// Passage implement plugin.Element, so plugin controllers attach to them the
// same way they attach to any other element.
package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/markup"
	"github.com/odvcencio/unstable-ui/runtime"
)

// Alignment positions text inside its bounds.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	bounds  runtime.Rect
	focused bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	if b == nil {
		return
	}
	b.bounds = bounds
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	if b == nil {
		return runtime.Rect{}
	}
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// CanFocus returns false by default.
func (b *Base) CanFocus() bool {
	return false
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	if b == nil {
		return
	}
	b.focused = true
}

// Blur marks the widget as unfocused.
func (b *Base) Blur() {
	if b == nil {
		return
	}
	b.focused = false
}

// IsFocused returns whether the widget is focused.
func (b *Base) IsFocused() bool {
	if b == nil {
		return false
	}
	return b.focused
}

// FocusableBase extends Base for focusable widgets.
type FocusableBase struct {
	Base
}

// CanFocus returns true for focusable widgets.
func (f *FocusableBase) CanFocus() bool {
	return true
}

// truncateString cuts s to maxWidth cells, ending with "..." when cut.
func truncateString(s string, maxWidth int) string {
	return markup.Truncate(s, maxWidth, "...")
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// writePadded writes text clipped to width and fills the rest with style.
func writePadded(buf *runtime.Buffer, x, y, width int, text string, style backend.Style) {
	if buf == nil || width <= 0 {
		return
	}
	text = markup.Truncate(text, width, "")
	buf.SetString(x, y, padRight(text, width), style)
}

// alignedX returns the column where text of width w starts inside bounds.
func alignedX(bounds runtime.Rect, w int, align Alignment) int {
	switch align {
	case AlignCenter:
		return bounds.X + max(bounds.Width-w, 0)/2
	case AlignRight:
		return bounds.X + max(bounds.Width-w, 0)
	default:
		return bounds.X
	}
}
