// Package dictionary holds translation dictionaries and the store that
// publishes the active one.
package dictionary

import (
	"maps"
	"slices"
)

// Entry is a single key and its translation.
type Entry struct {
	Key         string `json:"key"`
	Translation string `json:"translation"`
}

// Dictionary is an immutable key to translation mapping. A Dictionary is
// never modified after New returns.
type Dictionary struct {
	entries map[string]string
}

// New creates a dictionary from a copy of entries.
func New(entries map[string]string) *Dictionary {
	return &Dictionary{entries: maps.Clone(entries)}
}

// Get returns the translation for key.
func (d *Dictionary) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Keys returns all keys in lexical order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.entries))
}

// Entries returns all entries sorted by key.
func (d *Dictionary) Entries() []Entry {
	keys := d.Keys()
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k, Translation: d.entries[k]})
	}
	return out
}
