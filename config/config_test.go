package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolve_MissingFileUsesDefaults(t *testing.T) {
	resolved, err := Resolve(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Style != "monokai" || resolved.Tick != time.Second || resolved.Wordlist != "" {
		t.Fatalf("unexpected defaults %+v", resolved)
	}
}

func TestResolve_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "story.md", "the CAT sat")
	path := writeFile(t, dir, FileName, `
version: 1.2.0
wordlist: words.json
content_file: story.md
value: 7
style: dracula
theme:
  animal: "#ff8800"
tick: 250ms
`)
	resolved, err := Resolve(path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Wordlist != filepath.Join(dir, "words.json") {
		t.Fatalf("expected wordlist next to the config, got %q", resolved.Wordlist)
	}
	if resolved.Content != "the CAT sat" || resolved.Value != 7 || resolved.Style != "dracula" {
		t.Fatalf("unexpected values %+v", resolved)
	}
	if resolved.Theme["animal"] != "#ff8800" || resolved.Tick != 250*time.Millisecond {
		t.Fatalf("unexpected theme or tick %+v", resolved)
	}
}

func TestResolve_URLWordlistKept(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, "wordlist: https://example.com/words.json\n")
	resolved, err := Resolve(path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Wordlist != "https://example.com/words.json" {
		t.Fatalf("expected URL unchanged, got %q", resolved.Wordlist)
	}
}

func TestResolve_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"parse", "value: [", "failed to parse"},
		{"version", "version: 2.0.0\n", "newer than supported"},
		{"bad version", "version: banana\n", "invalid config version"},
		{"tick", "tick: soon\n", "invalid tick"},
		{"negative", "value: -1\n", "must not be negative"},
	}
	for _, tc := range cases {
		path := writeFile(t, t.TempDir(), FileName, tc.data)
		_, err := Resolve(path)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}
