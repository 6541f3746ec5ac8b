package markup

import (
	"hash/fnv"

	"github.com/odvcencio/unstable-ui/backend"
)

// Theme maps runs to cell styles.
type Theme struct {
	Base    backend.Style
	Heading backend.Style
	Code    backend.Style
	// Classes styles span classes. Classes without an entry get a color
	// from Palette chosen by the class name.
	Classes map[string]backend.Style
	Palette []backend.Color
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Base:    backend.DefaultStyle(),
		Heading: backend.DefaultStyle().Bold(true).Underline(true),
		Code:    backend.DefaultStyle().Dim(true),
		Palette: []backend.Color{
			backend.RGB(0xe0, 0x6c, 0x75),
			backend.RGB(0x98, 0xc3, 0x79),
			backend.RGB(0xe5, 0xc0, 0x7b),
			backend.RGB(0x61, 0xaf, 0xef),
			backend.RGB(0xc6, 0x78, 0xdd),
			backend.RGB(0x56, 0xb6, 0xc2),
		},
	}
}

// WithClassColors returns t with the given hex colors for classes.
// Invalid colors are skipped and reported in the returned slice.
func (t Theme) WithClassColors(colors map[string]string) (Theme, []string) {
	var invalid []string
	classes := make(map[string]backend.Style, len(t.Classes)+len(colors))
	for class, style := range t.Classes {
		classes[class] = style
	}
	for class, hex := range colors {
		c, ok := backend.ParseHex(hex)
		if !ok {
			invalid = append(invalid, class)
			continue
		}
		classes[class] = t.Base.Foreground(c).Bold(true)
	}
	t.Classes = classes
	return t, invalid
}

// ClassColor returns the color used for class.
func (t Theme) ClassColor(class string) backend.Color {
	if style, ok := t.Classes[class]; ok {
		fg, _ := style.Colors()
		return fg
	}
	if len(t.Palette) == 0 {
		return backend.ColorDefault
	}
	h := fnv.New32a()
	h.Write([]byte(class))
	return t.Palette[h.Sum32()%uint32(len(t.Palette))]
}

// Style returns the cell style for run inside a block of kind.
func (t Theme) Style(kind Kind, run Run) backend.Style {
	style := t.Base
	switch kind {
	case Heading:
		style = t.Heading
	case Code:
		style = t.Code
	}
	if run.Class != "" {
		if s, ok := t.Classes[run.Class]; ok {
			style = s
		} else {
			style = style.Foreground(t.ClassColor(run.Class)).Bold(true)
		}
	}
	if !run.Color.IsDefault() {
		style = style.Foreground(run.Color)
	}
	if run.Bold {
		style = style.Bold(true)
	}
	if run.Italic {
		style = style.Italic(true)
	}
	if run.Code {
		style = style.Dim(true)
	}
	return style
}
