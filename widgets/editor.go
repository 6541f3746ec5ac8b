package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/terminal"
)

// lineEditor is a single-line text buffer with a rune cursor.
type lineEditor struct {
	text   []rune
	cursor int
}

func (l *lineEditor) String() string {
	return string(l.text)
}

func (l *lineEditor) SetText(text string) {
	l.text = []rune(text)
	l.cursor = len(l.text)
}

func (l *lineEditor) Clear() {
	l.text = nil
	l.cursor = 0
}

func (l *lineEditor) insert(s string) {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	if s == "" {
		return
	}
	runes := []rune(s)
	text := make([]rune, 0, len(l.text)+len(runes))
	text = append(text, l.text[:l.cursor]...)
	text = append(text, runes...)
	text = append(text, l.text[l.cursor:]...)
	l.text = text
	l.cursor += len(runes)
}

// handleKey applies an editing key. It reports whether the key was consumed
// and whether the text changed.
func (l *lineEditor) handleKey(key runtime.KeyMsg) (handled, changed bool) {
	switch key.Key {
	case terminal.KeyRune:
		l.insert(string(key.Rune))
		return true, true
	case terminal.KeyBackspace:
		if l.cursor == 0 {
			return true, false
		}
		l.text = append(l.text[:l.cursor-1], l.text[l.cursor:]...)
		l.cursor--
		return true, true
	case terminal.KeyDelete:
		if l.cursor >= len(l.text) {
			return true, false
		}
		l.text = append(l.text[:l.cursor], l.text[l.cursor+1:]...)
		return true, true
	case terminal.KeyLeft:
		if key.Ctrl {
			l.cursor = l.wordLeft()
		} else if l.cursor > 0 {
			l.cursor--
		}
		return true, false
	case terminal.KeyRight:
		if key.Ctrl {
			l.cursor = l.wordRight()
		} else if l.cursor < len(l.text) {
			l.cursor++
		}
		return true, false
	case terminal.KeyHome:
		l.cursor = 0
		return true, false
	case terminal.KeyEnd:
		l.cursor = len(l.text)
		return true, false
	}
	return false, false
}

func (l *lineEditor) wordLeft() int {
	pos := l.cursor
	for pos > 0 && l.text[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && l.text[pos-1] != ' ' {
		pos--
	}
	return pos
}

func (l *lineEditor) wordRight() int {
	pos := l.cursor
	for pos < len(l.text) && l.text[pos] != ' ' {
		pos++
	}
	for pos < len(l.text) && l.text[pos] == ' ' {
		pos++
	}
	return pos
}

// render draws the text from x, scrolled so the cursor stays visible, and
// returns the cursor column.
func (l *lineEditor) render(buf *runtime.Buffer, x, y, width int, style backend.Style, cursor bool) int {
	if width <= 0 {
		return -1
	}
	start := 0
	for runewidth.StringWidth(string(l.text[start:l.cursor])) >= width {
		start++
	}
	visible := string(l.text[start:])
	writePadded(buf, x, y, width, visible, style)
	cx := x + runewidth.StringWidth(string(l.text[start:l.cursor]))
	if cursor && cx < x+width {
		ch := ' '
		if l.cursor < len(l.text) {
			ch = l.text[l.cursor]
		}
		buf.Set(cx, y, ch, style.Reverse(true))
	}
	return cx
}
