package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
)

// keyItem is a buffer key in the keys pane.
type keyItem struct {
	entry   preview.KeyEntry
	loaded  bool
	missing string
}

func (i keyItem) FilterValue() string { return i.entry.Key }
func (i keyItem) Title() string       { return i.entry.Key }

func (i keyItem) Description() string {
	switch {
	case !i.loaded:
		return fmt.Sprintf("%d× · no dictionary", i.entry.Count)
	case !i.entry.Found:
		return fmt.Sprintf("%d× · %s %s", i.entry.Count, styles.IconMissing, i.missing)
	default:
		return fmt.Sprintf("%d× · %q", i.entry.Count, i.entry.Translation)
	}
}

func newKeyList() list.Model {
	l := list.New(nil, newItemDelegate(), 0, 0)
	l.Title = styles.IconSearch + " Keys"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = styles.PaneTitleStyle
	return l
}

func newItemDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = styles.ListSelectedStyle
	d.Styles.SelectedDesc = styles.ListSelectedStyle.Foreground(styles.CurrentPalette.Muted)
	d.Styles.NormalTitle = styles.ListNormalStyle
	d.Styles.NormalDesc = styles.ListNormalStyle.Foreground(styles.CurrentPalette.Muted)
	d.Styles.FilterMatch = styles.ListMatchStyle
	return d
}

func keyItems(entries []preview.KeyEntry, loaded bool, missing string) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = keyItem{entry: e, loaded: loaded, missing: missing}
	}
	return items
}

// selectedKey returns the key highlighted in l.
func selectedKey(l list.Model) (string, bool) {
	item, ok := l.SelectedItem().(keyItem)
	if !ok {
		return "", false
	}
	return item.entry.Key, true
}
