package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/i18npeek/internal/core/discover"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "es", cfg.DefaultLocale)
	assert.Equal(t, "MISSING", cfg.Missing.Suffix)
	assert.Equal(t, "MISSING TRANSLATION", cfg.Missing.Hover)
	assert.Equal(t, discover.DefaultPatterns, cfg.Dictionaries.Patterns)
	assert.Equal(t, discover.HeuristicLegacy, cfg.Dictionaries.LocaleHeuristic)
	assert.Equal(t, 100*time.Millisecond, cfg.TUI.Debounce)
	assert.True(t, cfg.AutoLoadEnabled())
	assert.True(t, cfg.WatchEnabled())
	assert.Equal(t, filepath.Join(dataDir, "state.json"), cfg.StateFile())

	assert.Equal(t, ActionToggle, cfg.Keybindings["t"].Action)
	assert.Equal(t, ActionQuit, cfg.Keybindings["q"].Action)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.DefaultLocale)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
default_locale: fr
dictionary: lang/fr.js
dictionaries:
  patterns:
    - "web/dict/*.js"
  ignore: []
  locale_heuristic: bcp47
  auto_load: false
missing:
  suffix: "??"
tui:
  theme: gruvbox
  watch: false
  debounce: 250ms
keybindings:
  x:
    action: toggle
    help: flip
  q:
    action: reload
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.DefaultLocale)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "lang", "fr.js"), cfg.Dictionary)
	assert.Equal(t, []string{"web/dict/*.js"}, cfg.Dictionaries.Patterns)
	assert.Empty(t, cfg.Dictionaries.Ignore)
	assert.NotNil(t, cfg.Dictionaries.Ignore)
	assert.Equal(t, discover.HeuristicBCP47, cfg.Dictionaries.LocaleHeuristic)
	assert.False(t, cfg.AutoLoadEnabled())
	assert.False(t, cfg.WatchEnabled())
	assert.Equal(t, "??", cfg.Missing.Suffix)
	assert.Equal(t, "MISSING TRANSLATION", cfg.Missing.Hover)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.TUI.Debounce)

	assert.Equal(t, Keybinding{Action: ActionToggle, Help: "flip"}, cfg.Keybindings["x"])
	assert.Equal(t, ActionReload, cfg.Keybindings["q"].Action, "user bindings override defaults")
	assert.Equal(t, ActionToggle, cfg.Keybindings["t"].Action, "defaults are kept")

	opts := cfg.DiscoverOptions()
	assert.Equal(t, cfg.Dictionaries.Patterns, opts.Patterns)
	assert.Equal(t, discover.HeuristicBCP47, opts.Heuristic)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "default_locale: [unterminated")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown heuristic",
			body:    "dictionaries:\n  locale_heuristic: regex\n",
			wantErr: "locale_heuristic",
		},
		{
			name:    "negative debounce",
			body:    "tui:\n  debounce: -1s\n",
			wantErr: "debounce",
		},
		{
			name:    "unknown action",
			body:    "keybindings:\n  x:\n    action: explode\n",
			wantErr: `invalid action "explode"`,
		},
		{
			name:    "missing action",
			body:    "keybindings:\n  x:\n    help: nothing\n",
			wantErr: "must have an action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_EmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate())
}

func TestMergeKeybindings(t *testing.T) {
	defaults := map[string]Keybinding{"a": {Action: ActionQuit}, "b": {Action: ActionNext}}
	user := map[string]Keybinding{"b": {Action: ActionPick}}

	got := mergeKeybindings(defaults, user)
	assert.Equal(t, ActionQuit, got["a"].Action)
	assert.Equal(t, ActionPick, got["b"].Action)
	assert.Equal(t, ActionNext, defaults["b"].Action, "defaults not mutated")
}
