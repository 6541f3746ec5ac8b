package widgets

import (
	"strings"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/scroll"
	"github.com/odvcencio/unstable-ui/terminal"
	"github.com/odvcencio/unstable-ui/wordlist"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Title string
	// Width is fixed when positive; other columns share the rest.
	Width int
}

// WordTable lists the entries of a wordlist. It is shown as an overlay and
// closes on Escape or q.
type WordTable struct {
	FocusableBase
	Columns       []TableColumn
	Rows          [][]string
	selected      int
	viewport      *scroll.Viewport
	scrollbar     scroll.Scrollbar
	maxWidth      int
	style         backend.Style
	headerStyle   backend.Style
	selectedStyle backend.Style
}

// NewWordTable creates a table of the entries of table.
func NewWordTable(table wordlist.Table) *WordTable {
	t := &WordTable{
		Columns: []TableColumn{
			{Title: "code", Width: 12},
			{Title: "class", Width: 12},
			{Title: "words"},
		},
		viewport:      scroll.NewViewport(),
		scrollbar:     scroll.DefaultScrollbar(),
		maxWidth:      72,
		style:         backend.DefaultStyle(),
		headerStyle:   backend.DefaultStyle().Bold(true).Underline(true),
		selectedStyle: backend.DefaultStyle().Reverse(true),
	}
	t.SetTable(table)
	return t
}

// SetTable replaces the rows with the entries of table.
func (t *WordTable) SetTable(table wordlist.Table) {
	rows := make([][]string, 0, table.Len())
	for _, entry := range table.Entries() {
		rows = append(rows, []string{entry.Code, entry.Name, strings.Join(entry.Words, ", ")})
	}
	t.SetRows(rows)
}

// SetRows updates table rows.
func (t *WordTable) SetRows(rows [][]string) {
	if t == nil {
		return
	}
	t.Rows = rows
	t.viewport.SetContentLines(len(rows))
	t.setSelected(t.selected)
}

// Selected returns the selected row index.
func (t *WordTable) Selected() int {
	return t.selected
}

// Measure returns the header plus the rows, up to the constraints.
func (t *WordTable) Measure(constraints runtime.Constraints) runtime.Size {
	width := t.maxWidth
	if constraints.MaxWidth > 0 {
		width = min(width, constraints.MaxWidth)
	}
	return constraints.Constrain(runtime.Size{Width: width, Height: len(t.Rows) + 1})
}

// Render draws the header, the visible rows and a scrollbar.
func (t *WordTable) Render(ctx runtime.RenderContext) {
	if t == nil {
		return
	}
	bounds := t.bounds
	if bounds.Width <= 1 || bounds.Height <= 0 {
		return
	}
	inner := bounds.Width - 1
	widths := t.columnWidths(inner)
	t.renderRow(ctx.Buffer, bounds.X, bounds.Y, inner, widths, t.titles(), t.headerStyle)
	ctx.Buffer.Set(bounds.X+inner, bounds.Y, ' ', t.headerStyle)

	rowArea := bounds.Height - 1
	if rowArea <= 0 {
		return
	}
	t.viewport.SetHeight(rowArea)
	t.viewport.SetContentLines(len(t.Rows))
	t.viewport.EnsureVisible(t.selected)
	start, _ := t.viewport.Visible()
	for row := 0; row < rowArea; row++ {
		y := bounds.Y + 1 + row
		index := start + row
		if index >= len(t.Rows) {
			writePadded(ctx.Buffer, bounds.X, y, inner, "", t.style)
			continue
		}
		style := t.style
		if index == t.selected {
			style = t.selectedStyle
		}
		t.renderRow(ctx.Buffer, bounds.X, y, inner, widths, t.Rows[index], style)
	}
	bar := runtime.Rect{X: bounds.X + inner, Y: bounds.Y + 1, Width: 1, Height: rowArea}
	ctx.Buffer.Fill(bar, ' ', t.style)
	t.scrollbar.Render(ctx.Buffer, bar, t.viewport)
}

func (t *WordTable) renderRow(buf *runtime.Buffer, x, y, width int, widths []int, cells []string, style backend.Style) {
	end := x + width
	for i, w := range widths {
		if x >= end {
			break
		}
		w = min(w, end-x)
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		writePadded(buf, x, y, w, truncateString(cell, w), style)
		x += w
		if x < end {
			buf.Set(x, y, ' ', style)
			x++
		}
	}
	if x < end {
		writePadded(buf, x, y, end-x, "", style)
	}
}

func (t *WordTable) titles() []string {
	titles := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		titles[i] = col.Title
	}
	return titles
}

// HandleMessage handles row navigation and closing.
func (t *WordTable) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if t == nil || !t.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	switch key.Key {
	case terminal.KeyEscape:
		return runtime.WithCommand(runtime.PopOverlay{})
	case terminal.KeyRune:
		if key.Rune == 'q' {
			return runtime.WithCommand(runtime.PopOverlay{})
		}
	case terminal.KeyUp:
		t.setSelected(t.selected - 1)
		return runtime.Handled()
	case terminal.KeyDown:
		t.setSelected(t.selected + 1)
		return runtime.Handled()
	case terminal.KeyPageUp:
		t.setSelected(t.selected - t.pageSize())
		return runtime.Handled()
	case terminal.KeyPageDown:
		t.setSelected(t.selected + t.pageSize())
		return runtime.Handled()
	case terminal.KeyHome:
		t.setSelected(0)
		return runtime.Handled()
	case terminal.KeyEnd:
		t.setSelected(len(t.Rows) - 1)
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

func (t *WordTable) pageSize() int {
	return max(t.viewport.Height(), 1)
}

func (t *WordTable) setSelected(index int) {
	if t == nil {
		return
	}
	if len(t.Rows) == 0 {
		t.selected = 0
		return
	}
	t.selected = max(min(index, len(t.Rows)-1), 0)
	t.viewport.EnsureVisible(t.selected)
}

func (t *WordTable) columnWidths(total int) []int {
	if len(t.Columns) == 0 {
		return nil
	}
	available := max(total-(len(t.Columns)-1), 0)
	fixed := 0
	flexCount := 0
	for _, col := range t.Columns {
		if col.Width > 0 {
			fixed += col.Width
		} else {
			flexCount++
		}
	}
	flexWidth := 0
	if flexCount > 0 {
		flexWidth = max((available-fixed)/flexCount, 1)
	}
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		if col.Width > 0 {
			widths[i] = col.Width
		} else {
			widths[i] = flexWidth
		}
	}
	return widths
}
