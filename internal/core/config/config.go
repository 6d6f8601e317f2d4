// Package config handles configuration loading and validation for i18npeek.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/discover"
)

// Built-in action names for TUI keybindings.
const (
	ActionToggle = "toggle"
	ActionSearch = "search"
	ActionNext   = "next"
	ActionPick   = "pick"
	ActionReload = "reload"
	ActionQuit   = "quit"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"t":      {Action: ActionToggle, Help: "toggle keys/translations"},
	"/":      {Action: ActionSearch, Help: "search keys"},
	"n":      {Action: ActionNext, Help: "next occurrence"},
	"enter":  {Action: ActionNext, Help: "next occurrence"},
	"d":      {Action: ActionPick, Help: "pick dictionary"},
	"r":      {Action: ActionReload, Help: "reload"},
	"q":      {Action: ActionQuit, Help: "quit"},
	"ctrl+c": {Action: ActionQuit, Help: "quit"},
}

// Config holds the application configuration.
type Config struct {
	DefaultLocale string                `yaml:"default_locale"`
	Dictionary    string                `yaml:"dictionary"` // explicit dictionary path, skips discovery
	Dictionaries  DictionariesConfig    `yaml:"dictionaries"`
	Missing       MissingConfig         `yaml:"missing"`
	TUI           TUIConfig             `yaml:"tui"`
	Keybindings   map[string]Keybinding `yaml:"keybindings"`
	DataDir       string                `yaml:"-"` // set by caller, not from config file
}

// DictionariesConfig controls dictionary discovery.
type DictionariesConfig struct {
	Patterns        []string           `yaml:"patterns"`
	Ignore          []string           `yaml:"ignore"`
	LocaleHeuristic discover.Heuristic `yaml:"locale_heuristic"`
	// AutoLoad loads the only candidate, or the remembered one, on startup.
	AutoLoad *bool `yaml:"auto_load"`
}

// MissingConfig holds placeholder text for keys with no translation.
type MissingConfig struct {
	Suffix string `yaml:"suffix"` // shown after a key
	Hover  string `yaml:"hover"`  // shown in hovers and in translation mode
}

// TUIConfig holds terminal previewer settings.
type TUIConfig struct {
	Theme    string        `yaml:"theme"`
	Watch    *bool         `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// Keybinding maps a key to a built-in action.
type Keybinding struct {
	Action string `yaml:"action"`
	Help   string `yaml:"help"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: dictionary.DefaultLocale,
		Dictionaries: DictionariesConfig{
			Patterns:        append([]string(nil), discover.DefaultPatterns...),
			Ignore:          append([]string(nil), discover.DefaultIgnore...),
			LocaleHeuristic: discover.HeuristicLegacy,
		},
		Missing: MissingConfig{
			Suffix: dictionary.MissingText,
			Hover:  dictionary.MissingTranslationText,
		},
		TUI: TUIConfig{
			Theme:    "tokyo-night",
			Debounce: 100 * time.Millisecond,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir

			if cfg.Dictionary != "" && !filepath.IsAbs(cfg.Dictionary) {
				cfg.Dictionary = filepath.Join(filepath.Dir(configPath), cfg.Dictionary)
			}
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DefaultLocale == "" {
		c.DefaultLocale = defaults.DefaultLocale
	}
	if len(c.Dictionaries.Patterns) == 0 {
		c.Dictionaries.Patterns = defaults.Dictionaries.Patterns
	}
	if c.Dictionaries.Ignore == nil {
		c.Dictionaries.Ignore = defaults.Dictionaries.Ignore
	}
	if c.Dictionaries.LocaleHeuristic == "" {
		c.Dictionaries.LocaleHeuristic = defaults.Dictionaries.LocaleHeuristic
	}
	if c.Missing.Suffix == "" {
		c.Missing.Suffix = defaults.Missing.Suffix
	}
	if c.Missing.Hover == "" {
		c.Missing.Hover = defaults.Missing.Hover
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Debounce == 0 {
		c.TUI.Debounce = defaults.TUI.Debounce
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))

	for k, v := range defaults {
		result[k] = v
	}

	for k, v := range user {
		result[k] = v
	}

	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !c.Dictionaries.LocaleHeuristic.IsValid() {
		return fmt.Errorf("dictionaries.locale_heuristic %q must be one of legacy, bcp47, any", c.Dictionaries.LocaleHeuristic)
	}

	if c.TUI.Debounce < 0 {
		return fmt.Errorf("tui.debounce cannot be negative")
	}

	for key, kb := range c.Keybindings {
		if kb.Action == "" {
			return fmt.Errorf("keybinding %q must have an action", key)
		}
		if !isValidAction(kb.Action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, kb.Action)
		}
	}

	return nil
}

// AutoLoadEnabled reports whether dictionaries load on startup. Defaults to true.
func (c *Config) AutoLoadEnabled() bool {
	return c.Dictionaries.AutoLoad == nil || *c.Dictionaries.AutoLoad
}

// WatchEnabled reports whether the TUI watches the buffer file. Defaults to true.
func (c *Config) WatchEnabled() bool {
	return c.TUI.Watch == nil || *c.TUI.Watch
}

// DiscoverOptions returns the discovery settings.
func (c *Config) DiscoverOptions() discover.Options {
	return discover.Options{
		Patterns:  c.Dictionaries.Patterns,
		Ignore:    c.Dictionaries.Ignore,
		Heuristic: c.Dictionaries.LocaleHeuristic,
	}
}

// StateFile returns the path to the JSON file holding remembered selections.
func (c *Config) StateFile() string {
	return filepath.Join(c.DataDir, "state.json")
}

func isValidAction(action string) bool {
	switch action {
	case ActionToggle, ActionSearch, ActionNext, ActionPick, ActionReload, ActionQuit:
		return true
	default:
		return false
	}
}
