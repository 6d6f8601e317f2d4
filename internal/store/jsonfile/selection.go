package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/colonyops/i18npeek/internal/core/selection"
)

// SelectionFile is the root JSON structure stored on disk.
type SelectionFile struct {
	Selections []selection.Selection `json:"selections"`
}

// SelectionStore implements selection.Store using a JSON file for persistence.
type SelectionStore struct {
	path string
	mu   sync.RWMutex
}

var _ selection.Store = (*SelectionStore)(nil)

// NewSelectionStore creates a new JSON file selection store at the given path.
func NewSelectionStore(path string) *SelectionStore {
	return &SelectionStore{path: path}
}

// Get returns the selection for root. Returns ErrNotFound if not found.
func (s *SelectionStore) Get(ctx context.Context, root string) (selection.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return selection.Selection{}, err
	}

	root = selection.NormalizeRoot(root)
	for _, sel := range file.Selections {
		if sel.Root == root {
			return sel, nil
		}
	}

	return selection.Selection{}, selection.ErrNotFound
}

// Save stores sel as the most recent selection, replacing any previous
// entry for the same root.
func (s *SelectionStore) Save(ctx context.Context, sel selection.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	sel.Root = selection.NormalizeRoot(sel.Root)
	file.Selections = slices.DeleteFunc(file.Selections, func(existing selection.Selection) bool {
		return existing.Root == sel.Root
	})
	file.Selections = append([]selection.Selection{sel}, file.Selections...)

	return s.save(file)
}

// Forget removes the selection for root.
func (s *SelectionStore) Forget(ctx context.Context, root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	root = selection.NormalizeRoot(root)
	before := len(file.Selections)
	file.Selections = slices.DeleteFunc(file.Selections, func(existing selection.Selection) bool {
		return existing.Root == root
	})
	if len(file.Selections) == before {
		return nil
	}

	return s.save(file)
}

// List returns all selections, most recent first.
func (s *SelectionStore) List(ctx context.Context) ([]selection.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Selections, nil
}

// load reads the selection file from disk.
// Returns empty SelectionFile if file doesn't exist.
func (s *SelectionStore) load() (SelectionFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return SelectionFile{}, nil
		}
		return SelectionFile{}, err
	}

	if len(data) == 0 {
		return SelectionFile{}, nil
	}

	var file SelectionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return SelectionFile{}, err
	}

	return file, nil
}

// save writes the selection file to disk atomically.
func (s *SelectionStore) save(file SelectionFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
