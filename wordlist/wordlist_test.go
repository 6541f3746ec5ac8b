package wordlist

import (
	"errors"
	"testing"
)

func TestDecode_JSON(t *testing.T) {
	payload := []byte(`[
		{"code": "CAT", "name": "animal", "words": ["lion", "tiger"]},
		{"code": "@verb", "name": " action ", "words": ["runs"]}
	]`)

	table, err := DecodeJSON(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", table.Len())
	}
	first, ok := table.Entry(0)
	if !ok || first.Code != "CAT" || first.Name != "animal" || len(first.Words) != 2 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if got := table.Entries()[1].Name; got != "action" {
		t.Fatalf("expected trimmed name action, got %q", got)
	}
}

func TestDecode_YAML(t *testing.T) {
	payload := []byte(`
- code: CAT
  name: animal
  words: [lion, tiger]
- code: DOG
  name: animal
  words:
    - wolf
`)

	table, err := Decode(payload, FormatYAML)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", table.Len())
	}
	if got := table.Entries()[1].Words; len(got) != 1 || got[0] != "wolf" {
		t.Fatalf("unexpected words: %v", got)
	}
}

func TestDecode_SchemaErrors(t *testing.T) {
	cases := map[string]struct {
		payload string
		index   int
		field   string
	}{
		"missing code":  {`[{"name": "a", "words": ["x"]}]`, 0, "code"},
		"empty code":    {`[{"code": "", "name": "a", "words": ["x"]}]`, 0, "code"},
		"missing name":  {`[{"code": "A", "words": ["x"]}]`, 0, "name"},
		"missing words": {`[{"code": "A", "name": "a"}, {"code": "B", "name": "b"}]`, 0, "words"},
		"empty words":   {`[{"code": "A", "name": "a", "words": ["x"]}, {"code": "B", "name": "b", "words": []}]`, 1, "words"},
	}
	for name, tc := range cases {
		_, err := DecodeJSON([]byte(tc.payload))
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("%s: expected SchemaError, got %v", name, err)
		}
		if schemaErr.Index != tc.index || schemaErr.Field != tc.field {
			t.Fatalf("%s: expected entry %d field %s, got %+v", name, tc.index, tc.field, schemaErr)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := DecodeJSON([]byte("   ")); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
	if _, err := DecodeJSON([]byte(`{"code": "A"}`)); err == nil {
		t.Fatal("expected error for non-array payload")
	}
	if _, err := DecodeJSON([]byte(`[{"code": "A", "name": "a", "words": [1]}]`)); err == nil {
		t.Fatal("expected error for non-string word")
	}
}

func TestNewTable_Copies(t *testing.T) {
	words := []string{"lion"}
	table := NewTable(Entry{Code: "CAT", Name: "animal", Words: words})
	words[0] = "changed"

	if got := table.Entries()[0].Words[0]; got != "lion" {
		t.Fatalf("expected table to keep its own copy, got %q", got)
	}
	entries := table.Entries()
	entries[0].Code = "DOG"
	if got, _ := table.Entry(0); got.Code != "CAT" {
		t.Fatalf("expected Entries to return a copy, got %q", got.Code)
	}
	if table.Empty() {
		t.Fatal("expected non-empty table")
	}
}

func TestTable_EntryOutOfRange(t *testing.T) {
	table := NewTable(Entry{Code: "CAT", Name: "animal", Words: []string{"lion"}})
	for _, i := range []int{-1, 1} {
		if entry, ok := table.Entry(i); ok || entry.Code != "" {
			t.Fatalf("expected no entry at %d, got %+v", i, entry)
		}
	}
	var empty Table
	if _, ok := empty.Entry(0); ok {
		t.Fatal("expected zero table to have no entries")
	}
}
