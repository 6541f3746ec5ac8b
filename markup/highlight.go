package markup

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/odvcencio/unstable-ui/backend"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlight tokenizes raw markup with chroma's HTML lexer and returns one
// Line per source line, colored with the named chroma style. Unknown style
// names fall back to chroma's default.
func Highlight(src, styleName string) ([]Line, error) {
	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	if styleName == "" {
		styleName = DefaultStyle
	}
	style := styles.Get(styleName)

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil, err
	}
	lines := []Line{nil}
	for _, tok := range it.Tokens() {
		run := tokenRun(style, tok)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			run.Text = part
			last := len(lines) - 1
			lines[last] = appendRun(lines[last], run)
		}
	}
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 && strings.HasSuffix(src, "\n") {
		lines = lines[:n-1]
	}
	return lines, nil
}

func tokenRun(style *chroma.Style, tok chroma.Token) Run {
	entry := style.Get(tok.Type)
	run := Run{
		Bold:   entry.Bold == chroma.Yes,
		Italic: entry.Italic == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		run.Color = backend.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	return run
}

// StyleNames lists the registered chroma styles.
func StyleNames() []string {
	return styles.Names()
}
