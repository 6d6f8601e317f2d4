package annotate

import (
	"errors"
	"strings"

	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/scan"
)

// NoDictionaryHover is shown when hovering while nothing is loaded.
const NoDictionaryHover = `No dictionary selected. Use the "select" command.`

// HoverInfo describes the key under a cursor.
type HoverInfo struct {
	Key    string `json:"key"`
	Text   string `json:"text"`
	Found  bool   `json:"found"`
	Locale string `json:"locale"`
	Loaded bool   `json:"loaded"`
}

// Hover resolves the occurrence for display in a hover panel.
func Hover(occ scan.Occurrence, lk dictionary.Lookuper, missing string) HoverInfo {
	tr, err := lk.Lookup(occ.Key)
	if errors.Is(err, dictionary.ErrNoDictionaryLoaded) {
		return HoverInfo{Key: occ.Key, Locale: lk.Locale()}
	}

	info := HoverInfo{
		Key:    occ.Key,
		Text:   tr.Text,
		Found:  tr.Found,
		Locale: lk.Locale(),
		Loaded: true,
	}
	if !tr.Found {
		info.Text = missing
	}
	return info
}

// Summary is the one-line form: key → "translation".
func (h HoverInfo) Summary() string {
	return h.Key + ` → "` + h.Text + `"`
}

// Markdown renders the hover as a fenced javascript block followed by the
// dictionary locale.
func (h HoverInfo) Markdown() string {
	if !h.Loaded {
		return NoDictionaryHover
	}

	var sb strings.Builder
	sb.WriteString("```javascript\n")
	sb.WriteString(h.Summary())
	sb.WriteString("\n```\n\n")
	sb.WriteString("Dictionary: " + h.Locale)
	return sb.String()
}
