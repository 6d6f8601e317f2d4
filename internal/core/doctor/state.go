package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/colonyops/i18npeek/internal/core/selection"
)

// StateCheck verifies the remembered selection for a workspace root still
// points to an existing file. With autofix, stale selections are forgotten.
type StateCheck struct {
	store   selection.Store
	root    string
	autofix bool
}

// NewStateCheck creates a new remembered-state check.
func NewStateCheck(store selection.Store, root string, autofix bool) *StateCheck {
	return &StateCheck{store: store, root: root, autofix: autofix}
}

func (c *StateCheck) Name() string {
	return "Remembered Selection"
}

func (c *StateCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	sel, err := c.store.Get(ctx, c.root)
	switch {
	case errors.Is(err, selection.ErrNotFound):
		result.Items = append(result.Items, CheckItem{
			Label:  c.root,
			Status: StatusPass,
			Detail: "nothing remembered",
		})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "state file",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if _, err := os.Stat(sel.Path); err == nil {
		result.Items = append(result.Items, CheckItem{
			Label:  sel.Path,
			Status: StatusPass,
			Detail: sel.Locale,
		})
		return result
	}

	if c.autofix {
		if err := c.store.Forget(ctx, c.root); err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  sel.Path,
				Status: StatusFail,
				Detail: "failed to forget stale selection: " + err.Error(),
			})
			return result
		}
		result.Items = append(result.Items, CheckItem{
			Label:  sel.Path,
			Status: StatusPass,
			Detail: "stale selection forgotten",
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:   sel.Path,
		Status:  StatusWarn,
		Detail:  "remembered dictionary no longer exists",
		Fixable: true,
	})
	return result
}
