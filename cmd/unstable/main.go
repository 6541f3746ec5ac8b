// Command unstable shows element content whose coded words are replaced by
// random picks from a wordlist, next to a value field with its square.
//
// Usage:
//
//	unstable [-config unstable.yaml] [-wordlist words.json] [-content text] [-value n]
//	unstable -print [-color] [-json]
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/odvcencio/unstable-ui/config"
	"github.com/odvcencio/unstable-ui/markup"
	"github.com/odvcencio/unstable-ui/wordlist"
)

//go:embed words.json
var builtinWords []byte

//go:embed sample.md
var sampleContent string

// builtinWordlist names the embedded wordlist in the catalog.
const builtinWordlist = "builtin"

var (
	configPath = flag.String("config", config.FileName, "configuration file")
	wordlistAt = flag.String("wordlist", "", "wordlist location: URL or file path")
	content    = flag.String("content", "", "content to substitute")
	value      = flag.Int("value", -1, "initial value")
	printMode  = flag.Bool("print", false, "substitute once and print the result instead of running the terminal UI")
	colorOut   = flag.Bool("color", false, "with -print, color substituted words")
	styleName  = flag.String("style", "", "chroma style of the source view")
	jsonOut    = flag.Bool("json", false, "with -print, print instance snapshots as JSON")
)

// settings are the resolved configuration with flags applied.
type settings struct {
	config.Resolved
	theme markup.Theme
}

func main() {
	flag.Parse()

	s, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config failed: %v\n", err)
		os.Exit(1)
	}

	wordlist.Shared().Register(wordlist.StaticSource{Name: builtinWordlist, Data: builtinWords})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *printMode {
		err = runPrint(ctx, s, os.Stdout)
	} else {
		err = runUI(ctx, s)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "unstable: %v\n", err)
		os.Exit(1)
	}
}

// load resolves the configuration file and applies the flags over it.
func load() (*settings, error) {
	resolved, err := config.Resolve(*configPath)
	if err != nil {
		return nil, err
	}
	if *wordlistAt != "" {
		resolved.Wordlist = *wordlistAt
	}
	if resolved.Wordlist == "" {
		resolved.Wordlist = builtinWordlist
	}
	if *content != "" {
		resolved.Content = *content
	}
	if resolved.Content == "" {
		resolved.Content = sampleContent
	}
	if *value >= 0 {
		resolved.Value = *value
	}
	if *styleName != "" {
		resolved.Style = *styleName
	}
	theme, invalid := markup.DefaultTheme().WithClassColors(resolved.Theme)
	for _, class := range invalid {
		fmt.Fprintf(os.Stderr, "ignoring theme color for %q: %q is not #rrggbb\n", class, resolved.Theme[class])
	}
	return &settings{Resolved: *resolved, theme: theme}, nil
}
