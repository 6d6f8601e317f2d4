// Package selection defines the remembered dictionary choice per workspace.
package selection

import (
	"context"
	"errors"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when no selection is remembered for a workspace.
var ErrNotFound = errors.New("selection not found")

// Selection records the dictionary last chosen for a workspace root.
type Selection struct {
	Root       string    `json:"root"`
	Path       string    `json:"path"`
	Locale     string    `json:"locale"`
	SelectedAt time.Time `json:"selected_at"`
}

// Store persists selections.
type Store interface {
	// Get returns the selection for root. Returns ErrNotFound if none.
	Get(ctx context.Context, root string) (Selection, error)
	// Save replaces the selection for sel.Root.
	Save(ctx context.Context, sel Selection) error
	// Forget removes the selection for root. Missing entries are not an error.
	Forget(ctx context.Context, root string) error
	// List returns every selection, most recent first.
	List(ctx context.Context) ([]Selection, error)
}

// NormalizeRoot returns the cleaned absolute form of a workspace root so
// the same directory always maps to the same entry.
func NormalizeRoot(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return filepath.Clean(root)
}
