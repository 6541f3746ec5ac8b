package markup

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Row is one laid out line of a document.
type Row struct {
	Kind   Kind
	Prefix string
	Runs   Line
}

// Text returns the prefix and the run text.
func (r Row) Text() string {
	return r.Prefix + r.Runs.Text()
}

// Layout wraps every block of doc to width cells. List items are bulleted
// and indented by depth, code is indented and never wrapped, and blocks are
// separated by a blank row except between consecutive items.
func Layout(doc Document, width int) []Row {
	width = max(width, 1)
	var rows []Row
	for i, block := range doc.Blocks {
		if i > 0 && !(block.Kind == Item && doc.Blocks[i-1].Kind == Item) {
			rows = append(rows, Row{})
		}
		switch block.Kind {
		case Rule:
			rows = append(rows, Row{Kind: Rule, Runs: Line{{Text: strings.Repeat("-", width)}}})
			continue
		case Code:
			for _, src := range strings.Split(RunsText(block.Runs), "\n") {
				rows = append(rows, Row{Kind: Code, Prefix: "  ", Runs: Line{{Text: src, Code: true}}})
			}
			continue
		}
		first, rest := blockPrefix(block)
		for j, runs := range Wrap(block.Runs, max(width-runewidth.StringWidth(first), 1)) {
			prefix := first
			if j > 0 {
				prefix = rest
			}
			rows = append(rows, Row{Kind: block.Kind, Prefix: prefix, Runs: runs})
		}
	}
	return rows
}

func blockPrefix(block Block) (first, rest string) {
	if block.Kind != Item {
		return "", ""
	}
	indent := strings.Repeat("  ", max(block.Level-1, 0))
	return indent + "* ", indent + "  "
}
