package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/markup"
	"github.com/odvcencio/unstable-ui/plugin"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/scroll"
	"github.com/odvcencio/unstable-ui/terminal"
)

// Passage shows element content as wrapped, styled text under a title row.
// Pressing r while focused toggles the highlighted markup source.
type Passage struct {
	Component
	element

	theme       markup.Theme
	sourceStyle string
	titleStyle  backend.Style
	raw         bool
	viewport    *scroll.Viewport
	scrollbar   scroll.Scrollbar

	lines    []markup.Row
	version  uint64
	width    int
	builtRaw bool
	built    bool
}

var _ plugin.Element = (*Passage)(nil)

// NewPassage creates a passage named name showing content.
func NewPassage(name, content string) *Passage {
	p := &Passage{
		theme:       markup.DefaultTheme(),
		sourceStyle: markup.DefaultStyle,
		titleStyle:  backend.DefaultStyle().Bold(true).Reverse(true),
		viewport:    scroll.NewViewport(),
		scrollbar:   scroll.DefaultScrollbar(),
	}
	p.element.init(p, name, p.Invalidate)
	p.element.content = content
	return p
}

// SetTheme sets the styles used for blocks and span classes.
func (p *Passage) SetTheme(theme markup.Theme) {
	p.theme = theme
	p.built = false
}

// SetSourceStyle sets the chroma style of the source view.
func (p *Passage) SetSourceStyle(name string) {
	p.sourceStyle = name
	p.built = false
}

// ShowSource switches between rendered text and highlighted source.
func (p *Passage) ShowSource(raw bool) {
	p.raw = raw
	p.viewport.ScrollToStart()
}

// ShowingSource reports whether the source view is active.
func (p *Passage) ShowingSource() bool {
	return p.raw
}

// Viewport returns the scroll state of the body.
func (p *Passage) Viewport() *scroll.Viewport {
	return p.viewport
}

// Lines returns the plain text of the laid out body for width cells.
func (p *Passage) Lines(width int) []string {
	p.build(width)
	out := make([]string, len(p.lines))
	for i, line := range p.lines {
		out[i] = line.Text()
	}
	return out
}

// Measure asks for the title row plus the body.
func (p *Passage) Measure(constraints runtime.Constraints) runtime.Size {
	width := constraints.MaxWidth
	if width <= 0 {
		width = 80
	}
	p.build(max(width-1, 1))
	return constraints.Constrain(runtime.Size{Width: width, Height: len(p.lines) + 1})
}

// Render draws the title row, the visible body lines and a scrollbar.
func (p *Passage) Render(ctx runtime.RenderContext) {
	bounds := p.bounds
	if bounds.Empty() {
		return
	}
	p.renderTitle(ctx.Buffer, bounds)
	body := runtime.Rect{X: bounds.X, Y: bounds.Y + 1, Width: bounds.Width - 1, Height: bounds.Height - 1}
	if body.Empty() {
		return
	}
	p.build(body.Width)
	p.viewport.SetHeight(body.Height)
	p.viewport.SetContentLines(len(p.lines))
	start, end := p.viewport.Visible()
	for row := 0; row < body.Height; row++ {
		y := body.Y + row
		if i := start + row; i < end {
			p.renderLine(ctx.Buffer, body.X, y, body.Width, p.lines[i])
			continue
		}
		writePadded(ctx.Buffer, body.X, y, body.Width, "", p.theme.Base)
	}
	bar := runtime.Rect{X: body.X + body.Width, Y: body.Y, Width: 1, Height: body.Height}
	ctx.Buffer.Fill(bar, ' ', p.theme.Base)
	p.scrollbar.Render(ctx.Buffer, bar, p.viewport)
}

// HandleMessage scrolls the body and toggles the source view while focused.
func (p *Passage) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !p.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	if key.Key == terminal.KeyRune && key.Rune == 'r' {
		p.ShowSource(!p.raw)
		return runtime.Handled()
	}
	if p.viewport.HandleKey(key.Key) {
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

func (p *Passage) renderTitle(buf *runtime.Buffer, bounds runtime.Rect) {
	value, _, _ := p.snapshot()
	title := " " + p.Name()
	if p.raw {
		title += " (source)"
	}
	right := ""
	if value != "" {
		right = "value " + value + " "
	}
	gap := bounds.Width - runewidth.StringWidth(title) - runewidth.StringWidth(right)
	if gap < 1 {
		right = ""
		gap = bounds.Width - runewidth.StringWidth(title)
	}
	writePadded(buf, bounds.X, bounds.Y, bounds.Width, title+strings.Repeat(" ", max(gap, 0))+right, p.titleStyle)
}

func (p *Passage) renderLine(buf *runtime.Buffer, x, y, width int, line markup.Row) {
	end := x + width
	x = buf.SetString(x, y, markup.Truncate(line.Prefix, width, ""), p.theme.Base)
	for _, run := range line.Runs {
		if x >= end {
			break
		}
		text := markup.Truncate(run.Text, end-x, "")
		x = buf.SetString(x, y, text, p.theme.Style(line.Kind, run))
	}
	if x < end {
		buf.Fill(runtime.Rect{X: x, Y: y, Width: end - x, Height: 1}, ' ', p.theme.Base)
	}
}

// build lays the content out for width cells unless nothing changed.
func (p *Passage) build(width int) {
	_, content, version := p.snapshot()
	if p.built && p.version == version && p.width == width && p.builtRaw == p.raw {
		return
	}
	p.built, p.version, p.width, p.builtRaw = true, version, width, p.raw
	if p.raw {
		p.lines = p.sourceLines(content, width)
	} else {
		p.lines = markup.Layout(markup.Parse(content), width)
	}
}

func (p *Passage) sourceLines(content string, width int) []markup.Row {
	highlighted, err := markup.Highlight(content, p.sourceStyle)
	if err != nil {
		p.Status("highlight: " + err.Error())
		return markup.Layout(markup.Document{Blocks: []markup.Block{{Kind: markup.Code, Runs: []markup.Run{{Text: content}}}}}, width)
	}
	var lines []markup.Row
	for _, src := range highlighted {
		for _, wrapped := range markup.Wrap(src, width) {
			lines = append(lines, markup.Row{Runs: wrapped})
		}
	}
	return lines
}
