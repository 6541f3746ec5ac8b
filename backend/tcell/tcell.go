// Package tcell adapts a tcell screen to the backend contract.
package tcell

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/terminal"
)

// Backend draws to a tcell screen.
type Backend struct {
	screen  tcell.Screen
	pasting bool
	paste   strings.Builder
}

// New creates a backend for the current terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Screen returns the wrapped screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the screen and enables bracketed paste.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnablePaste()
	b.screen.Clear()
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the screen size.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// SetContent writes one cell.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, convertStyle(style))
}

// SetRow writes a span of cells on row y.
// Zero runes mark the second column of a wide rune and are skipped.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		if cell.Rune == 0 {
			continue
		}
		b.screen.SetContent(startX+i, y, cell.Rune, nil, convertStyle(cell.Style))
	}
}

// Show flushes pending cells.
func (b *Backend) Show() {
	b.screen.Show()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent waits for the next event and translates it.
// Keys inside a bracketed paste are collected into one PasteEvent.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			w, h := e.Size()
			return terminal.ResizeEvent{Width: w, Height: h}
		case *tcell.EventPaste:
			if e.Start() {
				b.pasting = true
				b.paste.Reset()
				continue
			}
			b.pasting = false
			return terminal.PasteEvent{Text: b.paste.String()}
		case *tcell.EventKey:
			if b.pasting {
				if e.Key() == tcell.KeyRune {
					b.paste.WriteRune(e.Rune())
				} else if e.Key() == tcell.KeyEnter {
					b.paste.WriteByte('\n')
				}
				continue
			}
			return convertKey(e)
		}
	}
}

func convertKey(e *tcell.EventKey) terminal.KeyEvent {
	mods := e.Modifiers()
	ev := terminal.KeyEvent{
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
	switch e.Key() {
	case tcell.KeyRune:
		ev.Key = terminal.KeyRune
		ev.Rune = e.Rune()
	case tcell.KeyEnter:
		ev.Key = terminal.KeyEnter
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ev.Key = terminal.KeyBackspace
	case tcell.KeyDelete:
		ev.Key = terminal.KeyDelete
	case tcell.KeyTab:
		ev.Key = terminal.KeyTab
	case tcell.KeyBacktab:
		ev.Key = terminal.KeyTab
		ev.Shift = true
	case tcell.KeyEscape:
		ev.Key = terminal.KeyEscape
	case tcell.KeyUp:
		ev.Key = terminal.KeyUp
	case tcell.KeyDown:
		ev.Key = terminal.KeyDown
	case tcell.KeyLeft:
		ev.Key = terminal.KeyLeft
	case tcell.KeyRight:
		ev.Key = terminal.KeyRight
	case tcell.KeyHome:
		ev.Key = terminal.KeyHome
	case tcell.KeyEnd:
		ev.Key = terminal.KeyEnd
	case tcell.KeyPgUp:
		ev.Key = terminal.KeyPageUp
	case tcell.KeyPgDn:
		ev.Key = terminal.KeyPageDown
	case tcell.KeyCtrlC:
		ev.Key = terminal.KeyCtrlC
		ev.Ctrl = true
	}
	return ev
}

func convertStyle(s backend.Style) tcell.Style {
	out := tcell.StyleDefault
	fg, bg := s.Colors()
	if !fg.IsDefault() {
		r, g, b := fg.RGB()
		out = out.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	if !bg.IsDefault() {
		r, g, b := bg.RGB()
		out = out.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	attrs := s.Attributes()
	return out.
		Bold(attrs&backend.AttrBold != 0).
		Dim(attrs&backend.AttrDim != 0).
		Italic(attrs&backend.AttrItalic != 0).
		Underline(attrs&backend.AttrUnderline != 0).
		Reverse(attrs&backend.AttrReverse != 0)
}

var _ backend.Backend = (*Backend)(nil)
var _ backend.RowWriter = (*Backend)(nil)
