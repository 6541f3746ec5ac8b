// Package wordlist loads code to word-list tables used for word substitution.
package wordlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry maps a coded token to its candidate replacement words.
type Entry struct {
	// Code is matched case-insensitively as literal text.
	Code string `json:"code" yaml:"code"`
	// Name labels the category and becomes the span class.
	Name  string   `json:"name" yaml:"name"`
	Words []string `json:"words" yaml:"words"`
}

// Table is an ordered, read-only set of entries.
type Table struct {
	entries []Entry
}

// NewTable copies entries into a table. Entries are not validated;
// use Decode for payloads from outside the process.
func NewTable(entries ...Entry) Table {
	copied := make([]Entry, len(entries))
	for i, e := range entries {
		copied[i] = Entry{
			Code:  e.Code,
			Name:  e.Name,
			Words: append([]string(nil), e.Words...),
		}
	}
	return Table{entries: copied}
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}

// Entry returns the entry at index i. It reports false when i is out of
// range.
func (t Table) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of the entries in table order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Empty reports whether the table has no entries.
func (t Table) Empty() bool {
	return len(t.entries) == 0
}

// Format identifies a payload encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// ErrEmptyPayload is returned when a payload has no content.
var ErrEmptyPayload = errors.New("wordlist payload is empty")

// SchemaError reports an entry that does not match the expected shape.
type SchemaError struct {
	Index  int
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("wordlist: %s", e.Reason)
	}
	return fmt.Sprintf("wordlist: entry %d: %s %s", e.Index, e.Field, e.Reason)
}

type rawEntry struct {
	Code  *string   `json:"code" yaml:"code"`
	Name  *string   `json:"name" yaml:"name"`
	Words *[]string `json:"words" yaml:"words"`
}

// Decode parses and validates a payload.
// Every entry needs a non-empty code, a name and at least one word.
func Decode(data []byte, format Format) (Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Table{}, ErrEmptyPayload
	}
	var raw []rawEntry
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Table{}, fmt.Errorf("decode yaml wordlist: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return Table{}, fmt.Errorf("decode json wordlist: %w", err)
		}
	}
	entries := make([]Entry, 0, len(raw))
	for i, r := range raw {
		entry, err := validate(i, r)
		if err != nil {
			return Table{}, err
		}
		entries = append(entries, entry)
	}
	return Table{entries: entries}, nil
}

// DecodeJSON parses a JSON array payload.
func DecodeJSON(data []byte) (Table, error) {
	return Decode(data, FormatJSON)
}

func validate(i int, r rawEntry) (Entry, error) {
	if r.Code == nil {
		return Entry{}, &SchemaError{Index: i, Field: "code", Reason: "is missing"}
	}
	if *r.Code == "" {
		return Entry{}, &SchemaError{Index: i, Field: "code", Reason: "is empty"}
	}
	if r.Name == nil {
		return Entry{}, &SchemaError{Index: i, Field: "name", Reason: "is missing"}
	}
	if r.Words == nil {
		return Entry{}, &SchemaError{Index: i, Field: "words", Reason: "is missing"}
	}
	if len(*r.Words) == 0 {
		return Entry{}, &SchemaError{Index: i, Field: "words", Reason: "is empty"}
	}
	return Entry{
		Code:  *r.Code,
		Name:  strings.TrimSpace(*r.Name),
		Words: *r.Words,
	}, nil
}
