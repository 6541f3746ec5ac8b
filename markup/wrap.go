package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Line is one wrapped row of runs.
type Line []Run

// Width returns the display width of l.
func (l Line) Width() int {
	w := 0
	for _, run := range l {
		w += runewidth.StringWidth(run.Text)
	}
	return w
}

// Text returns the text of l.
func (l Line) Text() string {
	return RunsText(l)
}

// piece is a word or a whitespace gap carrying its run's style.
type piece struct {
	run   Run
	space bool
}

// Wrap breaks runs into lines no wider than width, at spaces where possible.
// Words wider than a line are split. Leading spaces of wrapped lines are
// dropped; newlines in run text start a new line.
func Wrap(runs []Run, width int) []Line {
	if width <= 0 {
		return nil
	}
	var (
		lines []Line
		line  Line
		used  int
	)
	flush := func() {
		lines = append(lines, trimRight(line))
		line = nil
		used = 0
	}
	for _, p := range split(runs) {
		if p.run.Text == "\n" {
			flush()
			continue
		}
		w := runewidth.StringWidth(p.run.Text)
		if p.space {
			if used == 0 && len(lines) > 0 {
				continue
			}
			if used+w > width {
				flush()
				continue
			}
			line = appendRun(line, p.run)
			used += w
			continue
		}
		if used+w > width && used > 0 {
			flush()
		}
		for w > width {
			head := runewidth.Truncate(p.run.Text, width-used, "")
			if head == "" {
				if used > 0 {
					flush()
					continue
				}
				_, size := utf8.DecodeRuneInString(p.run.Text)
				head = p.run.Text[:size]
			}
			part := p.run
			part.Text = head
			line = appendRun(line, part)
			flush()
			p.run.Text = p.run.Text[len(head):]
			w = runewidth.StringWidth(p.run.Text)
		}
		line = appendRun(line, p.run)
		used += w
	}
	if len(line) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// WrapText wraps plain text.
func WrapText(s string, width int) []string {
	lines := Wrap([]Run{{Text: s}}, width)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text()
	}
	return out
}

// Truncate cuts s to width cells, ending with tail when cut.
func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, tail)
}

func split(runs []Run) []piece {
	var out []piece
	for _, run := range runs {
		text := run.Text
		for text != "" {
			if text[0] == '\n' {
				out = append(out, piece{run: Run{Text: "\n"}})
				text = text[1:]
				continue
			}
			first, _ := utf8.DecodeRuneInString(text)
			space := unicode.IsSpace(first)
			end := strings.IndexFunc(text, func(r rune) bool {
				return r == '\n' || unicode.IsSpace(r) != space
			})
			if end < 0 {
				end = len(text)
			}
			part := run
			part.Text = text[:end]
			if space {
				part.Text = strings.Repeat(" ", utf8.RuneCountInString(part.Text))
			}
			out = append(out, piece{run: part, space: space})
			text = text[end:]
		}
	}
	return out
}

func appendRun(line Line, run Run) Line {
	if n := len(line); n > 0 && sameStyle(line[n-1], run) {
		line[n-1].Text += run.Text
		return line
	}
	return append(line, run)
}

func trimRight(line Line) Line {
	for len(line) > 0 {
		last := &line[len(line)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		line = line[:len(line)-1]
	}
	return line
}
