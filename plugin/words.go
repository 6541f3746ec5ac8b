package plugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/odvcencio/unstable-ui/substitute"
	"github.com/odvcencio/unstable-ui/wordlist"
)

// UnstableWordsName is the name of the word substitution plugin.
const UnstableWordsName = "unstableWords"

// ErrNoWordlist is reported when an instance has no wordlist location.
var ErrNoWordlist = errors.New("no wordlist configured")

// UnstableWords loads the configured wordlist and replaces coded tokens in
// the element content with random words.
// Loads go through the catalog, so every element sharing a location shares
// one fetch.
type UnstableWords struct {
	// Catalog resolves wordlist locations. Defaults to wordlist.Shared().
	Catalog *wordlist.Catalog
	Rand    substitute.Rand
}

// NewUnstableWords creates a controller running words.
func NewUnstableWords(cfg Config, words UnstableWords) *Controller {
	if cfg.Name == "" {
		cfg.Name = UnstableWordsName
	}
	cfg.Initializer = words
	return NewController(cfg)
}

// Initialize fetches the table in the background and substitutes on completion.
func (w UnstableWords) Initialize(ctx context.Context, inst *Instance, done Done) {
	location := inst.Options().Wordlist
	if location == "" {
		done(func() error { return ErrNoWordlist })
		return
	}
	catalog := w.Catalog
	if catalog == nil {
		catalog = wordlist.Shared()
	}
	loader, err := catalog.Loader(location)
	if err != nil {
		done(func() error { return err })
		return
	}
	go func() {
		table, err := loader.Load(ctx)
		done(func() error {
			if err != nil {
				return fmt.Errorf("load wordlist: %w", err)
			}
			w.apply(inst, table)
			return nil
		})
	}()
}

func (w UnstableWords) apply(inst *Instance, table wordlist.Table) {
	el := inst.Element()
	engine := substitute.New(table, substitute.WithRand(w.Rand))
	el.SetContent(engine.Apply(el.Content()))
	inst.write(inst.Options().Value)
}
