package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/text/language"

	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// glob patterns, theme names, and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateDictionaries(),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if _, err := language.Parse(c.DefaultLocale); err != nil {
		warnings = append(warnings, ValidationWarning{
			Category: "Locale",
			Item:     c.DefaultLocale,
			Message:  "default_locale is not a BCP 47 language tag",
		})
	}

	if c.Dictionary != "" && c.AutoLoadEnabled() && len(c.Dictionaries.Patterns) > 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Dictionaries",
			Item:     "dictionary",
			Message:  "explicit dictionary is set, discovery patterns are ignored at startup",
		})
	}

	if c.Missing.Suffix == c.Missing.Hover && c.Missing.Suffix != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Missing",
			Message:  "suffix and hover placeholders are identical",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory, and explicit dictionary.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("dictionary", c.Dictionary, isFileOrEmpty),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateDictionaries checks discovery and ignore globs individually so each
// bad pattern gets its own field error.
func (c *Config) validateDictionaries() error {
	var errs criterio.FieldErrorsBuilder

	for i, p := range c.Dictionaries.Patterns {
		if err := discover.ValidatePatterns([]string{p}); err != nil {
			errs = errs.Append(fmt.Sprintf("dictionaries.patterns[%d]", i), err)
		}
	}

	for i, p := range c.Dictionaries.Ignore {
		if err := discover.ValidatePatterns([]string{p}); err != nil {
			errs = errs.Append(fmt.Sprintf("dictionaries.ignore[%d]", i), err)
		}
	}

	return errs.ToError()
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isFileOrEmpty(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); ok {
		return nil
	}
	return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
}
