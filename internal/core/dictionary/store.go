package dictionary

import (
	"errors"
	"sync/atomic"
	"time"
)

// ErrNoDictionaryLoaded is returned by lookups made while no dictionary is
// active.
var ErrNoDictionaryLoaded = errors.New("no dictionary loaded")

// DefaultLocale is the locale reported before any dictionary is loaded.
const DefaultLocale = "es"

// Placeholders used when a key has no translation.
const (
	MissingText            = "MISSING"
	MissingTranslationText = "MISSING TRANSLATION"
)

// Snapshot is the unit of replacement inside a Store. A published snapshot
// is never modified.
type Snapshot struct {
	Dictionary *Dictionary
	Locale     string
	Source     string
	LoadedAt   time.Time
}

// Translation is the outcome of a lookup. Found is false when the key is not
// in the active dictionary.
type Translation struct {
	Key   string `json:"key"`
	Text  string `json:"text"`
	Found bool   `json:"found"`
}

// Lookuper resolves keys against an active dictionary.
type Lookuper interface {
	Lookup(key string) (Translation, error)
	Locale() string
}

// Store owns the active dictionary and locale. Replacement is a single
// pointer swap, so readers observe either the previous or the next
// snapshot in full.
type Store struct {
	active        atomic.Pointer[Snapshot]
	defaultLocale string
}

// NewStore returns an empty store. An empty defaultLocale falls back to
// DefaultLocale.
func NewStore(defaultLocale string) *Store {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	return &Store{defaultLocale: defaultLocale}
}

// SetActive publishes dict as the active dictionary. A nil dict clears the
// store.
func (s *Store) SetActive(dict *Dictionary, locale, source string) {
	if dict == nil {
		s.Clear()
		return
	}
	if locale == "" {
		locale = s.defaultLocale
	}
	s.active.Store(&Snapshot{
		Dictionary: dict,
		Locale:     locale,
		Source:     source,
		LoadedAt:   time.Now(),
	})
}

// Clear drops the active dictionary.
func (s *Store) Clear() {
	s.active.Store(nil)
}

// Snapshot returns the active snapshot, if any.
func (s *Store) Snapshot() (*Snapshot, bool) {
	snap := s.active.Load()
	return snap, snap != nil
}

// Loaded reports whether a dictionary is active.
func (s *Store) Loaded() bool {
	return s.active.Load() != nil
}

// Locale returns the active locale, or the default locale when nothing is
// loaded.
func (s *Store) Locale() string {
	if snap := s.active.Load(); snap != nil {
		return snap.Locale
	}
	return s.defaultLocale
}

// Lookup resolves key against the active dictionary. A key that is absent,
// or maps to an empty string, yields a Translation with Found set to false.
func (s *Store) Lookup(key string) (Translation, error) {
	snap := s.active.Load()
	if snap == nil {
		return Translation{Key: key}, ErrNoDictionaryLoaded
	}

	text, ok := snap.Dictionary.Get(key)
	if !ok || text == "" {
		return Translation{Key: key}, nil
	}

	return Translation{Key: key, Text: text, Found: true}, nil
}
