// Package markup turns substituted element content into styled runs for the
// terminal. Markdown structure comes from goldmark; the word spans inserted
// by substitution become classed runs.
package markup

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/odvcencio/unstable-ui/backend"
)

// Kind is the block type of a Block.
type Kind int

const (
	Paragraph Kind = iota
	Heading
	Item
	Code
	Rule
)

// Run is a stretch of text with uniform styling.
type Run struct {
	Text   string
	Class  string
	Bold   bool
	Italic bool
	Code   bool
	// Color is set by Highlight; parsed runs leave it default.
	Color backend.Color
}

// Block is one rendered block of the document.
type Block struct {
	Kind  Kind
	Level int
	Runs  []Run
}

// Document is parsed content.
type Document struct {
	Blocks []Block
}

var (
	spanOpen  = regexp.MustCompile(`^<span\s+class\s*=\s*["']([^"']*)["']\s*>$`)
	spanClose = regexp.MustCompile(`^</span\s*>$`)
)

var parser = goldmark.New().Parser()

// Parse reads content as markdown with inline span tags.
func Parse(content string) Document {
	src := []byte(content)
	root := parser.Parse(text.NewReader(src))
	b := &builder{src: src, current: -1}
	_ = ast.Walk(root, b.walk)
	return Document{Blocks: b.blocks}
}

type builder struct {
	src     []byte
	blocks  []Block
	current int
	classes []string
	bold    int
	italic  int
	code    int
}

func (b *builder) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if _, inItem := n.Parent().(*ast.ListItem); inItem && n.PreviousSibling() == nil {
			return ast.WalkContinue, nil
		}
		b.block(entering, Paragraph, 0)
	case *ast.Heading:
		b.block(entering, Heading, node.Level)
	case *ast.ListItem:
		b.block(entering, Item, listDepth(node))
	case *ast.ThematicBreak:
		if entering {
			b.blocks = append(b.blocks, Block{Kind: Rule})
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			b.blocks = append(b.blocks, Block{Kind: Code, Runs: []Run{{Text: b.lines(n), Code: true}}})
		}
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock:
		if entering {
			b.htmlBlock(node)
		}
		return ast.WalkSkipChildren, nil
	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.Level >= 2 {
			b.bold += delta
		} else {
			b.italic += delta
		}
	case *ast.CodeSpan:
		if entering {
			b.code++
		} else {
			b.code--
		}
	case *ast.RawHTML:
		if entering {
			b.tag(segmentsText(node.Segments, b.src))
		}
		return ast.WalkSkipChildren, nil
	case *ast.Text:
		if entering {
			b.emit(string(node.Segment.Value(b.src)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.emit(" ")
			}
		}
	case *ast.String:
		if entering {
			b.emit(string(node.Value))
		}
	case *ast.AutoLink:
		if entering {
			b.emit(string(node.Label(b.src)))
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (b *builder) block(entering bool, kind Kind, level int) {
	if entering {
		b.blocks = append(b.blocks, Block{Kind: kind, Level: level})
		b.current = len(b.blocks) - 1
		return
	}
	b.current = -1
}

func (b *builder) emit(s string) {
	if s == "" {
		return
	}
	if b.current < 0 {
		b.block(true, Paragraph, 0)
	}
	run := Run{
		Text:   s,
		Bold:   b.bold > 0,
		Italic: b.italic > 0,
		Code:   b.code > 0,
	}
	if n := len(b.classes); n > 0 {
		run.Class = b.classes[n-1]
	}
	block := &b.blocks[b.current]
	if n := len(block.Runs); n > 0 && sameStyle(block.Runs[n-1], run) {
		block.Runs[n-1].Text += s
		return
	}
	block.Runs = append(block.Runs, run)
}

// tag tracks span nesting. Other tags are dropped.
func (b *builder) tag(tag string) {
	tag = strings.TrimSpace(tag)
	if m := spanOpen.FindStringSubmatch(tag); m != nil {
		b.classes = append(b.classes, m[1])
		return
	}
	if spanClose.MatchString(tag) && len(b.classes) > 0 {
		b.classes = b.classes[:len(b.classes)-1]
	}
}

// htmlBlock scans a raw HTML block for span tags and text.
func (b *builder) htmlBlock(node *ast.HTMLBlock) {
	raw := b.lines(node)
	if node.HasClosure() {
		raw += string(node.ClosureLine.Value(b.src))
	}
	b.block(true, Paragraph, 0)
	ScanTags(strings.TrimSpace(raw), func(tag string) { b.tag(tag) }, func(s string) {
		b.emit(strings.ReplaceAll(s, "\n", " "))
	})
	b.block(false, Paragraph, 0)
}

func (b *builder) lines(n ast.Node) string {
	return strings.TrimRight(segmentsText(n.Lines(), b.src), "\n")
}

func segmentsText(segs *text.Segments, src []byte) string {
	if segs == nil {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

func listDepth(n ast.Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	return depth
}

func sameStyle(a, b Run) bool {
	return a.Class == b.Class && a.Bold == b.Bold && a.Italic == b.Italic && a.Code == b.Code && a.Color == b.Color
}

// ScanTags splits s into tags and text, in order.
func ScanTags(s string, onTag func(tag string), onText func(text string)) {
	for s != "" {
		open := strings.IndexByte(s, '<')
		if open < 0 {
			onText(s)
			return
		}
		end := strings.IndexByte(s[open:], '>')
		if end < 0 {
			onText(s)
			return
		}
		if open > 0 {
			onText(s[:open])
		}
		onTag(s[open : open+end+1])
		s = s[open+end+1:]
	}
}

// Text returns the plain text of the document, one line per block.
func (d Document) Text() string {
	lines := make([]string, 0, len(d.Blocks))
	for _, block := range d.Blocks {
		lines = append(lines, RunsText(block.Runs))
	}
	return strings.Join(lines, "\n")
}

// Classes counts the runs carrying each span class.
func (d Document) Classes() map[string]int {
	counts := make(map[string]int)
	for _, block := range d.Blocks {
		for _, run := range block.Runs {
			if run.Class != "" {
				counts[run.Class]++
			}
		}
	}
	return counts
}

// RunsText concatenates the text of runs.
func RunsText(runs []Run) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// StripTags removes every tag from s, keeping the text between them.
func StripTags(s string) string {
	var sb strings.Builder
	ScanTags(s, func(string) {}, func(text string) { sb.WriteString(text) })
	return sb.String()
}
