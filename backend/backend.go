// Package backend defines the cell model and the terminal backend contract.
package backend

import (
	"strconv"
	"strings"

	"github.com/odvcencio/unstable-ui/terminal"
)

// Color is a 24-bit color. The zero value is the terminal default.
type Color uint32

const (
	colorSet Color = 1 << 24
	// ColorDefault leaves the terminal color unchanged.
	ColorDefault Color = 0
)

// RGB builds a color from components.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return ColorDefault, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColorDefault, false
	}
	return colorSet | Color(v), true
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// RGB returns the color components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// AttrMask holds text attributes.
type AttrMask uint8

const (
	AttrBold AttrMask = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Style is a comparable cell style.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{}
}

// Foreground returns s with foreground c.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background returns s with background c.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// Bold toggles bold.
func (s Style) Bold(on bool) Style { return s.attr(AttrBold, on) }

// Dim toggles dim.
func (s Style) Dim(on bool) Style { return s.attr(AttrDim, on) }

// Italic toggles italic.
func (s Style) Italic(on bool) Style { return s.attr(AttrItalic, on) }

// Underline toggles underline.
func (s Style) Underline(on bool) Style { return s.attr(AttrUnderline, on) }

// Reverse toggles reverse video.
func (s Style) Reverse(on bool) Style { return s.attr(AttrReverse, on) }

func (s Style) attr(mask AttrMask, on bool) Style {
	if on {
		s.attrs |= mask
	} else {
		s.attrs &^= mask
	}
	return s
}

// Colors returns the foreground and background.
func (s Style) Colors() (fg, bg Color) {
	return s.fg, s.bg
}

// Attributes returns the attribute mask.
func (s Style) Attributes() AttrMask {
	return s.attrs
}

// Cell is one screen cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend draws cells to a terminal and delivers input events.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	HideCursor()
	// PollEvent blocks for the next event. It returns nil after Fini.
	PollEvent() terminal.Event
}
