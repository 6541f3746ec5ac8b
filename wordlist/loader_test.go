package wordlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

const catPayload = `[{"code": "CAT", "name": "animal", "words": ["lion", "tiger"]}]`

type gatedSource struct {
	release chan struct{}
	data    []byte
	err     error
	mu      sync.Mutex
	calls   int
}

func (s *gatedSource) Location() string { return "gated" }

func (s *gatedSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	return s.data, FormatJSON, s.err
}

func TestLoader_SharesInFlightFetch(t *testing.T) {
	source := &gatedSource{release: make(chan struct{}), data: []byte(catPayload)}
	loader := NewLoader(source)

	const callers = 8
	var wg sync.WaitGroup
	tables := make([]Table, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i], errs[i] = loader.Load(context.Background())
		}(i)
	}

	deadline := time.After(time.Second)
	for loader.State() != Loading {
		select {
		case <-deadline:
			t.Fatal("loader never entered loading state")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	close(source.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if tables[i].Len() != 1 {
			t.Fatalf("caller %d got %d entries", i, tables[i].Len())
		}
	}
	if got := loader.Fetches(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
	if loader.State() != Loaded {
		t.Fatalf("expected loaded state, got %s", loader.State())
	}

	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("load after loaded failed: %v", err)
	}
	if got := loader.Fetches(); got != 1 {
		t.Fatalf("expected no refetch once loaded, got %d fetches", got)
	}
}

func TestLoader_FailureReturnsToUnloaded(t *testing.T) {
	source := &gatedSource{err: errors.New("boom")}
	loader := NewLoader(source)

	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if loader.State() != Unloaded {
		t.Fatalf("expected unloaded after failure, got %s", loader.State())
	}

	source.err = nil
	source.data = []byte(catPayload)
	table, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("expected later load to succeed, got %v", err)
	}
	if table.Len() != 1 || loader.Fetches() != 2 {
		t.Fatalf("expected 1 entry after 2 fetches, got %d entries %d fetches", table.Len(), loader.Fetches())
	}
}

func TestLoader_SchemaErrorIsTyped(t *testing.T) {
	loader := NewLoader(StaticSource{Name: "bad", Data: []byte(`[{"code": "A", "name": "a", "words": []}]`)})

	_, err := loader.Load(context.Background())
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if _, ok := loader.Table(); ok {
		t.Fatal("expected no table after schema error")
	}
}

func TestLoader_CallerContextEndsWait(t *testing.T) {
	source := &gatedSource{release: make(chan struct{}), data: []byte(catPayload)}
	loader := NewLoader(source)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	close(source.release)

	table, err := loader.Load(context.Background())
	if err != nil || table.Len() != 1 {
		t.Fatalf("expected in-flight fetch to complete for later caller, got %d entries err=%v", table.Len(), err)
	}
}

func TestLoader_NoSource(t *testing.T) {
	var loader *Loader
	if _, err := loader.Load(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if loader.State() != Unloaded {
		t.Fatalf("expected nil loader to report unloaded")
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/words.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(catPayload))
		case "/words":
			w.Header().Set("Content-Type", "application/yaml")
			w.Write([]byte("- {code: CAT, name: animal, words: [lion]}\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	source, err := Open(server.URL + "/words.json")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	table, err := NewLoader(source).Load(context.Background())
	if err != nil || table.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d err=%v", table.Len(), err)
	}

	yamlSource := &HTTPSource{URL: server.URL + "/words"}
	_, format, err := yamlSource.Fetch(context.Background())
	if err != nil || format != FormatYAML {
		t.Fatalf("expected yaml format, got %s err=%v", format, err)
	}

	missing := &HTTPSource{URL: server.URL + "/missing"}
	_, _, err = missing.Fetch(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 FetchError, got %v", err)
	}
}

func TestFileSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yml")
	if err := os.WriteFile(path, []byte("- {code: CAT, name: animal, words: [lion]}\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	source, err := Open("file://" + path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if source.Location() != path {
		t.Fatalf("expected location %q, got %q", path, source.Location())
	}
	table, err := NewLoader(source).Load(context.Background())
	if err != nil || table.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d err=%v", table.Len(), err)
	}

	_, _, err = FileSource{Path: filepath.Join(dir, "missing.json")}.Fetch(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist through FetchError, got %v", err)
	}
}

func TestCatalog_OneLoaderPerLocation(t *testing.T) {
	catalog := NewCatalog()
	a, err := catalog.Loader("words.json")
	if err != nil {
		t.Fatalf("loader failed: %v", err)
	}
	b, _ := catalog.Loader("words.json")
	if a != b {
		t.Fatal("expected the same loader for the same location")
	}
	c, _ := catalog.Loader("other.json")
	if a == c {
		t.Fatal("expected distinct loaders for distinct locations")
	}

	static := StaticSource{Name: "mem", Data: []byte(catPayload)}
	registered := catalog.Register(static)
	again, _ := catalog.Loader("mem")
	if registered != again {
		t.Fatal("expected registered loader to serve its location")
	}
	if _, err := catalog.Loader(" "); err == nil {
		t.Fatal("expected error for blank location")
	}
}
