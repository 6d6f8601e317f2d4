// Package preview ties scanning, lookup and annotation together for one
// previewing session. Hosts (CLI commands, the TUI) hold a *Session and
// pass buffers to it; the session owns the dictionary store and the display
// mode.
package preview

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/config"
	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/core/loader"
	"github.com/colonyops/i18npeek/internal/core/logging"
	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/internal/core/selection"
)

var (
	// ErrSelectionRequired is returned by AutoLoad when several dictionaries
	// exist and none was chosen before.
	ErrSelectionRequired = errors.New("several dictionaries found, select one")
	// ErrNoDictionaries is returned by AutoLoad when discovery finds nothing.
	ErrNoDictionaries = errors.New("no dictionary files found")
)

// KeyEntry describes a key used in a buffer.
type KeyEntry struct {
	Key         string `json:"key"`
	Translation string `json:"translation"`
	Found       bool   `json:"found"`
	Count       int    `json:"count"`
}

// Status summarizes the session for status lines.
type Status struct {
	Loaded  bool          `json:"loaded"`
	Locale  string        `json:"locale"`
	Source  string        `json:"source,omitempty"`
	Entries int           `json:"entries"`
	Mode    annotate.Mode `json:"-"`
}

// String renders the status indicator text.
func (st Status) String() string {
	if !st.Loaded {
		return "i18n: No Dictionary"
	}
	return "i18n: " + st.Locale
}

// Session is the explicit state of one previewing session.
type Session struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *dictionary.Store
	mode  annotate.Mode
	opts  annotate.Options
}

// NewSession creates a session with an empty store in keys mode.
func NewSession(cfg *config.Config, logger zerolog.Logger) *Session {
	return &Session{
		cfg:   cfg,
		log:   logger,
		store: dictionary.NewStore(cfg.DefaultLocale),
		mode:  annotate.KeysVisible,
		opts:  missingOptions(cfg),
	}
}

// missingOptions applies configured placeholders over the defaults.
func missingOptions(cfg *config.Config) annotate.Options {
	opts := annotate.DefaultOptions()
	if cfg.Missing.Suffix != "" {
		opts.MissingSuffix = cfg.Missing.Suffix
	}
	if cfg.Missing.Hover != "" {
		opts.MissingReplace = cfg.Missing.Hover
	}
	return opts
}

// SetLogger replaces the session logger.
func (s *Session) SetLogger(logger zerolog.Logger) {
	s.log = logger
}

// Store exposes the session store for read-only consumers.
func (s *Session) Store() *dictionary.Store {
	return s.store
}

// LoadDictionary parses the file at path and makes it active. An empty
// locale is derived from the file name. On failure the active dictionary
// is left unchanged.
func (s *Session) LoadDictionary(path, locale string) error {
	start := time.Now()

	dict, err := loader.Load(path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("dictionary load failed")
		return err
	}

	s.SetDictionary(dict, path, locale)
	s.log.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("dictionary parsed")
	return nil
}

// SetDictionary makes an already parsed dictionary active. An empty locale
// is derived from path.
func (s *Session) SetDictionary(dict *dictionary.Dictionary, path, locale string) {
	if locale == "" {
		locale = s.localeOf(path)
	}

	s.store.SetActive(dict, locale, path)
	s.log.Info().
		Str("path", path).
		Str("locale", s.store.Locale()).
		Int("entries", dict.Len()).
		Msg("dictionary loaded")
}

// Mode returns the display mode.
func (s *Session) Mode() annotate.Mode {
	return s.mode
}

// SetMode sets the display mode.
func (s *Session) SetMode(m annotate.Mode) {
	s.mode = m
}

// ToggleMode flips the display mode and returns the new one.
func (s *Session) ToggleMode() annotate.Mode {
	s.mode = s.mode.Toggle()
	return s.mode
}

// Annotate plans decorations for buffer in the current mode.
func (s *Session) Annotate(buffer string) []annotate.Instruction {
	return annotate.Plan(scan.Collect(buffer), s.store, s.mode, s.opts)
}

// Hover returns hover content for the occurrence covering offset.
func (s *Session) Hover(buffer string, offset int) (annotate.HoverInfo, bool) {
	occ, ok := scan.At(buffer, offset)
	if !ok {
		return annotate.HoverInfo{}, false
	}
	return s.HoverOccurrence(occ), true
}

// HoverOccurrence returns hover content for an occurrence already located.
func (s *Session) HoverOccurrence(occ scan.Occurrence) annotate.HoverInfo {
	return annotate.Hover(occ, s.store, s.opts.MissingReplace)
}

// Lookup resolves key against the active dictionary.
func (s *Session) Lookup(key string) (dictionary.Translation, error) {
	return s.store.Lookup(key)
}

// KeysInBuffer lists the distinct keys used in buffer, sorted, with their
// translations. Without a dictionary every entry is reported as not found.
func (s *Session) KeysInBuffer(buffer string) []KeyEntry {
	counts := scan.Keys(buffer)

	out := make([]KeyEntry, 0, len(counts))
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		entry := KeyEntry{Key: key, Count: counts[key]}
		if tr, err := s.store.Lookup(key); err == nil {
			entry.Translation = tr.Text
			entry.Found = tr.Found
		}
		out = append(out, entry)
	}
	return out
}

// NextOccurrence returns the first occurrence of key starting after the
// byte offset after, wrapping around to the first occurrence in the buffer.
// Pass -1 to get the first occurrence.
func (s *Session) NextOccurrence(buffer, key string, after int) (scan.Occurrence, bool) {
	var first scan.Occurrence
	found := false

	for occ := range scan.All(buffer) {
		if occ.Key != key {
			continue
		}
		if occ.Start > after {
			return occ, true
		}
		if !found {
			first, found = occ, true
		}
	}

	return first, found
}

// Status reports the active dictionary.
func (s *Session) Status() Status {
	st := Status{Locale: s.store.Locale(), Mode: s.mode}
	if snap, ok := s.store.Snapshot(); ok {
		st.Loaded = true
		st.Source = snap.Source
		st.Entries = snap.Dictionary.Len()
	}
	return st
}

// Candidates discovers dictionary files under root.
func (s *Session) Candidates(root string) ([]discover.Candidate, error) {
	return discover.Find(selection.NormalizeRoot(root), s.cfg.DiscoverOptions())
}

// AutoLoad picks and loads a dictionary for root without user input. An
// explicitly configured dictionary wins, then the remembered selection with
// its recorded locale while its file still exists. Otherwise discovery runs
// and the only candidate is loaded. The discovered candidates are returned
// so callers can offer a pick on ErrSelectionRequired.
func (s *Session) AutoLoad(ctx context.Context, root string, state selection.Store) (discover.Candidate, []discover.Candidate, error) {
	if s.cfg.Dictionary != "" {
		cand := discover.Candidate{Path: s.cfg.Dictionary, Locale: s.localeOf(s.cfg.Dictionary)}
		return cand, nil, s.LoadDictionary(cand.Path, cand.Locale)
	}

	sel, ok := s.remembered(ctx, root, state)
	if ok {
		if err := s.LoadDictionary(sel.Path, sel.Locale); err != nil {
			return discover.Candidate{}, nil, err
		}

		s.log.Debug().
			Ctx(logging.WithDictionary(ctx, sel.Path)).
			Str("locale", sel.Locale).
			Msg("remembered dictionary loaded")
		return discover.Candidate{Path: sel.Path, Locale: s.store.Locale()}, nil, nil
	}

	cands, err := s.Candidates(root)
	if err != nil {
		return discover.Candidate{}, nil, fmt.Errorf("discover dictionaries: %w", err)
	}
	if len(cands) == 0 {
		return discover.Candidate{}, nil, ErrNoDictionaries
	}

	cand, ok := discover.AutoSelect(cands, sel.Path)
	if !ok {
		return discover.Candidate{}, cands, ErrSelectionRequired
	}

	if err := s.LoadDictionary(cand.Path, cand.Locale); err != nil {
		return discover.Candidate{}, cands, err
	}

	s.log.Debug().
		Ctx(logging.WithDictionary(ctx, cand.Path)).
		Int("candidates", len(cands)).
		Msg("dictionary auto-selected")
	return cand, cands, nil
}

// remembered returns the selection saved for root when its file still
// exists. A stale selection is returned with ok false so discovery can
// still prefer it by path.
func (s *Session) remembered(ctx context.Context, root string, state selection.Store) (selection.Selection, bool) {
	if state == nil {
		return selection.Selection{}, false
	}

	sel, err := state.Get(ctx, root)
	switch {
	case errors.Is(err, selection.ErrNotFound):
		return selection.Selection{}, false
	case err != nil:
		s.log.Warn().Ctx(ctx).Err(err).Msg("read remembered selection")
		return selection.Selection{}, false
	}

	if _, err := os.Stat(sel.Path); err != nil {
		s.log.Debug().Ctx(ctx).Str("path", sel.Path).Msg("remembered dictionary missing")
		return sel, false
	}
	return sel, true
}

// Select loads cand and remembers it for root.
func (s *Session) Select(ctx context.Context, root string, cand discover.Candidate, state selection.Store) error {
	if err := s.LoadDictionary(cand.Path, cand.Locale); err != nil {
		return err
	}
	return s.Remember(ctx, root, state)
}

// Remember records the active dictionary and its locale as the selection
// for root.
func (s *Session) Remember(ctx context.Context, root string, state selection.Store) error {
	snap, ok := s.store.Snapshot()
	if !ok {
		return dictionary.ErrNoDictionaryLoaded
	}
	if state == nil {
		return nil
	}

	err := state.Save(ctx, selection.Selection{
		Root:       root,
		Path:       snap.Source,
		Locale:     snap.Locale,
		SelectedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("remember selection: %w", err)
	}

	s.log.Debug().Ctx(logging.WithDictionary(ctx, snap.Source)).Str("root", root).Msg("selection remembered")
	return nil
}

func (s *Session) localeOf(path string) string {
	if locale, ok := discover.LocaleOf(path, s.cfg.Dictionaries.LocaleHeuristic); ok {
		return locale
	}
	return s.cfg.DefaultLocale
}
