package wordlist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

// State is the load state of a Loader.
type State int32

const (
	Unloaded State = iota
	Loading
	Loaded
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

// ErrNoSource is returned by a Loader without a source.
var ErrNoSource = errors.New("wordlist loader has no source")

// Loader fetches a table once and shares it with every caller.
// Concurrent callers share a single in-flight fetch. A failed fetch returns
// the loader to Unloaded so a later Load starts over.
type Loader struct {
	source  Source
	group   singleflight.Group
	state   atomic.Int32
	fetches atomic.Int64

	mu     sync.Mutex
	table  Table
	loaded bool
}

// NewLoader creates a loader for source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Source returns the loader source.
func (l *Loader) Source() Source {
	if l == nil {
		return nil
	}
	return l.source
}

// State returns the current load state.
func (l *Loader) State() State {
	if l == nil {
		return Unloaded
	}
	return State(l.state.Load())
}

// Fetches returns how many fetches the loader has started.
func (l *Loader) Fetches() int64 {
	if l == nil {
		return 0
	}
	return l.fetches.Load()
}

// Table returns the loaded table, if any.
func (l *Loader) Table() (Table, bool) {
	if l == nil {
		return Table{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.table, l.loaded
}

// Load returns the table, fetching it if needed.
// If ctx ends first Load returns ctx.Err(); the fetch keeps running for other callers.
func (l *Loader) Load(ctx context.Context) (Table, error) {
	if l == nil || l.source == nil {
		return Table{}, ErrNoSource
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if table, ok := l.Table(); ok {
		return table, nil
	}
	results := l.group.DoChan(l.source.Location(), func() (any, error) {
		return l.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return Table{}, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return Table{}, res.Err
		}
		return res.Val.(Table), nil
	}
}

func (l *Loader) fetch(ctx context.Context) (Table, error) {
	if table, ok := l.Table(); ok {
		return table, nil
	}
	l.state.Store(int32(Loading))
	l.fetches.Inc()

	data, format, err := l.source.Fetch(ctx)
	if err != nil {
		l.state.Store(int32(Unloaded))
		return Table{}, err
	}
	table, err := Decode(data, format)
	if err != nil {
		l.state.Store(int32(Unloaded))
		return Table{}, fmt.Errorf("load %s: %w", l.source.Location(), err)
	}

	l.mu.Lock()
	l.table = table
	l.loaded = true
	l.mu.Unlock()
	l.state.Store(int32(Loaded))
	return table, nil
}

// Catalog holds one Loader per location for the life of the process.
type Catalog struct {
	mu      sync.Mutex
	loaders map[string]*Loader
	open    func(string) (Source, error)
}

// NewCatalog creates an empty catalog that opens locations with Open.
func NewCatalog() *Catalog {
	return &Catalog{open: Open}
}

var shared = NewCatalog()

// Shared returns the process-wide catalog.
func Shared() *Catalog {
	return shared
}

// Loader returns the loader for location, creating it on first use.
func (c *Catalog) Loader(location string) (*Loader, error) {
	if c == nil {
		return nil, ErrNoSource
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if loader, ok := c.loaders[location]; ok {
		return loader, nil
	}
	open := c.open
	if open == nil {
		open = Open
	}
	source, err := open(location)
	if err != nil {
		return nil, err
	}
	loader := NewLoader(source)
	c.storeLocked(location, loader)
	return loader, nil
}

// Register installs source under its location, replacing nothing that is
// already registered. It returns the loader that serves the location.
func (c *Catalog) Register(source Source) *Loader {
	if c == nil || source == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if loader, ok := c.loaders[source.Location()]; ok {
		return loader
	}
	loader := NewLoader(source)
	c.storeLocked(source.Location(), loader)
	return loader
}

func (c *Catalog) storeLocked(location string, loader *Loader) {
	if c.loaders == nil {
		c.loaders = make(map[string]*Loader)
	}
	c.loaders[location] = loader
}
