package tui

import (
	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/discover"
)

// fileChangedMsg is sent when a watched file changes on disk.
type fileChangedMsg struct {
	buffer     bool
	dictionary bool
}

// bufferLoadedMsg carries freshly read buffer contents.
type bufferLoadedMsg struct {
	text string
	err  error
}

// dictionaryLoadedMsg carries a parsed dictionary to activate. remember
// records it as the workspace selection once active.
type dictionaryLoadedMsg struct {
	dict     *dictionary.Dictionary
	source   string
	locale   string
	remember bool
	err      error
}

// candidatesLoadedMsg carries discovered dictionaries for the picker.
type candidatesLoadedMsg struct {
	candidates []discover.Candidate
	err        error
}
