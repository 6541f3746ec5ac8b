// Package substitute replaces coded tokens in text with randomly chosen words.
package substitute

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/odvcencio/unstable-ui/wordlist"
)

// Rand picks an index in [0, n).
// Implementations shared across goroutines must be safe for concurrent use.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// RandFunc adapts a function into a Rand.
type RandFunc func(n int) int

// IntN calls f.
func (f RandFunc) IntN(n int) int {
	return f(n)
}

type rule struct {
	entry   wordlist.Entry
	pattern *regexp.Regexp
}

// Engine applies a table to content.
// Rules run in table order over the whole content, so a later rule can match
// text inserted by an earlier one.
type Engine struct {
	rules []rule
	rand  Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// New compiles table into an engine.
// Entries with an empty code, or a code that is not valid UTF-8, are skipped.
func New(table wordlist.Table, opts ...Option) *Engine {
	e := &Engine{rand: globalRand{}}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	for _, entry := range table.Entries() {
		if entry.Code == "" {
			continue
		}
		pattern, err := regexp.Compile("(?i)(" + regexp.QuoteMeta(entry.Code) + ")")
		if err != nil {
			continue
		}
		e.rules = append(e.rules, rule{entry: entry, pattern: pattern})
	}
	return e
}

// Rules returns the number of compiled rules.
func (e *Engine) Rules() int {
	if e == nil {
		return 0
	}
	return len(e.rules)
}

// Apply returns content with every coded token replaced.
func (e *Engine) Apply(content string) string {
	out, _ := e.ApplyStats(content)
	return out
}

// Stats counts replacements per code, in table order.
type Stats struct {
	Codes  []string
	Counts []int
}

// Total returns the number of replacements.
func (s Stats) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// ApplyStats is Apply plus replacement counts.
func (e *Engine) ApplyStats(content string) (string, Stats) {
	var stats Stats
	if e == nil {
		return content, stats
	}
	stats.Codes = make([]string, len(e.rules))
	stats.Counts = make([]int, len(e.rules))
	for i, r := range e.rules {
		stats.Codes[i] = r.entry.Code
		content = r.pattern.ReplaceAllStringFunc(content, func(match string) string {
			stats.Counts[i]++
			return Span(r.entry.Name, e.pick(r.entry.Words, match))
		})
	}
	return content, stats
}

// pick draws a word uniformly. An empty list yields the matched text.
func (e *Engine) pick(words []string, match string) string {
	if len(words) == 0 {
		return match
	}
	return words[e.rand.IntN(len(words))]
}

// Span wraps word in a span tagged with class.
func Span(class, word string) string {
	var b strings.Builder
	b.Grow(len(class) + len(word) + 22)
	b.WriteString(`<span class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(word)
	b.WriteString(`</span>`)
	return b.String()
}

// Apply compiles table and applies it once.
func Apply(table wordlist.Table, content string, opts ...Option) string {
	return New(table, opts...).Apply(content)
}
