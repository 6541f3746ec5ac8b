package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/plugin"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/terminal"
)

// Field is a labelled single-line value. Editable fields trigger
// plugin.EventChange on every edit; read-only fields only display.
// The label is the element content.
type Field struct {
	Component
	element

	editor     lineEditor
	edited     uint64
	readOnly   bool
	labelWidth int
	style      backend.Style
	focusStyle backend.Style
	labelStyle backend.Style
}

var _ plugin.Element = (*Field)(nil)

// NewField creates an editable field. The label defaults to name.
func NewField(name, value string) *Field {
	f := &Field{
		style:      backend.DefaultStyle(),
		focusStyle: backend.DefaultStyle().Bold(true),
		labelStyle: backend.DefaultStyle().Dim(true),
	}
	f.element.init(f, name, f.Invalidate)
	f.element.content = name
	f.element.value = value
	f.editor.SetText(value)
	return f
}

// SetReadOnly toggles editing.
func (f *Field) SetReadOnly(readOnly bool) {
	f.readOnly = readOnly
}

// ReadOnly reports whether the field is read-only.
func (f *Field) ReadOnly() bool {
	return f.readOnly
}

// SetLabelWidth pads labels to width cells so values line up.
func (f *Field) SetLabelWidth(width int) {
	f.labelWidth = width
}

// SetStyle sets the normal and focused styles.
func (f *Field) SetStyle(style, focus backend.Style) {
	f.style = style
	f.focusStyle = focus
}

// CanFocus reports whether the field is editable.
func (f *Field) CanFocus() bool {
	return !f.readOnly
}

// Measure returns one line as wide as the label and value.
func (f *Field) Measure(constraints runtime.Constraints) runtime.Size {
	value, label, _ := f.snapshot()
	width := f.labelCells(label) + 1 + max(runewidth.StringWidth(value), 8)
	return constraints.Constrain(runtime.Size{Width: width, Height: 1})
}

// Render draws "label value".
func (f *Field) Render(ctx runtime.RenderContext) {
	bounds := f.bounds
	if bounds.Empty() {
		return
	}
	f.syncEditor()
	_, label, _ := f.snapshot()
	lw := min(f.labelCells(label), bounds.Width)
	writePadded(ctx.Buffer, bounds.X, bounds.Y, lw, label, f.labelStyle)
	x := bounds.X + lw
	if x < bounds.X+bounds.Width {
		ctx.Buffer.Set(x, bounds.Y, ' ', f.style)
		x++
	}
	style := f.style
	if f.focused && !f.readOnly {
		style = f.focusStyle
	}
	f.editor.render(ctx.Buffer, x, bounds.Y, bounds.X+bounds.Width-x, style, f.focused && ctx.Focused && !f.readOnly)
}

// HandleMessage edits the value while focused.
func (f *Field) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if f.readOnly || !f.focused {
		return runtime.Unhandled()
	}
	f.syncEditor()
	switch m := msg.(type) {
	case runtime.PasteMsg:
		f.editor.insert(m.Text)
		f.commit()
		return runtime.Handled()
	case runtime.KeyMsg:
		switch m.Key {
		case terminal.KeyEnter:
			return runtime.WithCommand(runtime.Submit{Text: f.editor.String()})
		case terminal.KeyEscape:
			return runtime.WithCommand(runtime.Cancel{})
		}
		handled, changed := f.editor.handleKey(m)
		if changed {
			f.commit()
		}
		if handled {
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// commit stores the edited text and triggers the change event.
func (f *Field) commit() {
	f.element.SetValue(f.editor.String())
	_, _, f.edited = f.snapshot()
	f.Trigger(plugin.EventChange)
}

// syncEditor picks up values written through the element interface.
func (f *Field) syncEditor() {
	value, _, version := f.snapshot()
	if version == f.edited {
		return
	}
	f.edited = version
	if value != f.editor.String() {
		f.editor.SetText(value)
	}
}

func (f *Field) labelCells(label string) int {
	return max(runewidth.StringWidth(label), f.labelWidth)
}
