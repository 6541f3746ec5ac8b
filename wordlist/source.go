package wordlist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Source fetches a raw wordlist payload.
type Source interface {
	Fetch(ctx context.Context) ([]byte, Format, error)
	Location() string
}

// FetchError wraps a failure to read a payload from its source.
type FetchError struct {
	Location string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch wordlist %s: status %d", e.Location, e.Status)
	}
	return fmt.Sprintf("fetch wordlist %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Open returns the source for a location.
// http and https URLs are fetched over HTTP; file URLs and plain paths are read from disk.
func Open(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("open wordlist: empty location")
	}
	u, err := url.Parse(location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return &HTTPSource{URL: location}, nil
		case "file":
			return FileSource{Path: u.Path}, nil
		}
	}
	return FileSource{Path: location}, nil
}

// HTTPSource fetches a payload with an HTTP GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Location returns the URL.
func (s *HTTPSource) Location() string {
	if s == nil {
		return ""
	}
	return s.URL
}

// Fetch performs the request and reads the body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, FormatJSON, &FetchError{Location: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	resp, err := client.Do(req)
	if err != nil {
		return nil, FormatJSON, &FetchError{Location: s.URL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, FormatJSON, &FetchError{Location: s.URL, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, FormatJSON, &FetchError{Location: s.URL, Err: err}
	}
	format := formatForContentType(resp.Header.Get("Content-Type"))
	if format == FormatJSON {
		format = formatForPath(req.URL.Path)
	}
	return data, format, nil
}

// FileSource reads a payload from disk.
type FileSource struct {
	Path string
}

// Location returns the path.
func (s FileSource) Location() string {
	return s.Path
}

// Fetch reads the file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, FormatJSON, &FetchError{Location: s.Path, Err: err}
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, FormatJSON, &FetchError{Location: s.Path, Err: err}
	}
	return data, formatForPath(s.Path), nil
}

// StaticSource serves an in-memory payload.
type StaticSource struct {
	Name   string
	Data   []byte
	Format Format
}

// Location returns the source name.
func (s StaticSource) Location() string {
	return s.Name
}

// Fetch returns the payload.
func (s StaticSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	return s.Data, s.Format, nil
}

func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func formatForContentType(contentType string) Format {
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}
