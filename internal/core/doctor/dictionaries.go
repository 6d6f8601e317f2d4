package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/core/loader"
)

// loadFunc parses a dictionary and returns its entry count.
// Package-level variable to allow test overrides.
var loadFunc = func(path string) (int, error) {
	dict, err := loader.Load(path)
	if err != nil {
		return 0, err
	}
	return dict.Len(), nil
}

// DictionariesCheck discovers dictionaries under a workspace root and
// verifies that each one parses.
type DictionariesCheck struct {
	root     string
	explicit string
	opts     discover.Options
}

// NewDictionariesCheck creates a new dictionaries check. A non-empty
// explicit path is checked in addition to discovered files.
func NewDictionariesCheck(root, explicit string, opts discover.Options) *DictionariesCheck {
	return &DictionariesCheck{root: root, explicit: explicit, opts: opts}
}

func (c *DictionariesCheck) Name() string {
	return "Dictionaries"
}

func (c *DictionariesCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.explicit != "" {
		result.Items = append(result.Items, c.checkFile(c.explicit, ""))
	}

	cands, err := discover.Find(c.root, c.opts)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.root,
			Status: StatusFail,
			Detail: fmt.Sprintf("discovery failed: %v", err),
		})
		return result
	}

	if len(cands) == 0 && c.explicit == "" {
		result.Items = append(result.Items, CheckItem{
			Label:  c.root,
			Status: StatusWarn,
			Detail: "no dictionary files found",
		})
		return result
	}

	for _, cand := range cands {
		result.Items = append(result.Items, c.checkFile(cand.Path, cand.Locale))
	}

	return result
}

func (c *DictionariesCheck) checkFile(path, locale string) CheckItem {
	n, err := loadFunc(path)
	if err != nil {
		return CheckItem{
			Label:  path,
			Status: StatusFail,
			Detail: err.Error(),
		}
	}

	detail := fmt.Sprintf("%d entries", n)
	if locale != "" {
		detail = fmt.Sprintf("%s, %s", locale, detail)
	}

	item := CheckItem{Label: path, Status: StatusPass, Detail: detail}
	if n == 0 {
		item.Status = StatusWarn
		item.Detail = detail + " (empty)"
	}
	return item
}
