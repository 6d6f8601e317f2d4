// Package discover finds candidate dictionary files in a workspace.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/language"
)

// Heuristic decides whether a file basename names a locale.
type Heuristic string

const (
	// HeuristicLegacy accepts names of at most three characters, or en/es.
	HeuristicLegacy Heuristic = "legacy"
	// HeuristicBCP47 accepts names that parse as BCP 47 language tags.
	HeuristicBCP47 Heuristic = "bcp47"
	// HeuristicAny accepts every file matched by the patterns.
	HeuristicAny Heuristic = "any"
)

// IsValid reports whether h is a known heuristic.
func (h Heuristic) IsValid() bool {
	switch h {
	case HeuristicLegacy, HeuristicBCP47, HeuristicAny:
		return true
	default:
		return false
	}
}

// DefaultPatterns mirror the lang, i18n, translations and locales
// directory conventions.
var DefaultPatterns = []string{
	"**/{lang,i18n,translations,locales}/*.{js,mjs,cjs,ts}",
}

// DefaultIgnore skips dependency and VCS directories.
var DefaultIgnore = []string{
	"**/node_modules/**",
	"**/.git/**",
}

// Options controls discovery.
type Options struct {
	Patterns  []string
	Ignore    []string
	Heuristic Heuristic
}

// Candidate is a dictionary file and the locale its name implies.
type Candidate struct {
	Path   string `json:"path"`
	Locale string `json:"locale"`
	Label  string `json:"label"`
}

// Find returns candidates under root sorted by path. Paths are absolute
// when root is.
func Find(root string, opts Options) ([]Candidate, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	heuristic := opts.Heuristic
	if heuristic == "" {
		heuristic = HeuristicLegacy
	}

	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var out []Candidate

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		for _, rel := range matches {
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}

			if ignored(rel, opts.Ignore) {
				continue
			}

			locale, ok := LocaleOf(rel, heuristic)
			if !ok {
				continue
			}

			path := filepath.Join(root, filepath.FromSlash(rel))
			out = append(out, Candidate{
				Path:   path,
				Locale: locale,
				Label:  fmt.Sprintf("%s (%s)", strings.ToUpper(locale), path),
			})
		}
	}

	slices.SortFunc(out, func(a, b Candidate) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

// LocaleOf returns the locale implied by a file name under heuristic.
func LocaleOf(path string, heuristic Heuristic) (string, bool) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return "", false
	}

	switch heuristic {
	case HeuristicAny:
		return name, true
	case HeuristicBCP47:
		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			return "", false
		}
		return tag.String(), true
	default:
		if len(name) <= 3 || name == "en" || name == "es" {
			return name, true
		}
		return "", false
	}
}

// ByPath returns the candidate whose path equals path.
func ByPath(cands []Candidate, path string) (Candidate, bool) {
	for _, c := range cands {
		if c.Path == path {
			return c, true
		}
	}
	return Candidate{}, false
}

// ValidatePatterns reports the first invalid glob pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

func ignored(rel string, ignore []string) bool {
	if ignore == nil {
		ignore = DefaultIgnore
	}
	for _, pattern := range ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// AutoSelect returns the candidate to load without asking: the remembered
// one when it was discovered, otherwise the only candidate.
func AutoSelect(cands []Candidate, remembered string) (Candidate, bool) {
	if remembered != "" {
		if c, ok := ByPath(cands, remembered); ok {
			return c, true
		}
	}
	if len(cands) == 1 {
		return cands[0], true
	}
	return Candidate{}, false
}
