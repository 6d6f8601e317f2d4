// Package annotate turns key occurrences and dictionary lookups into
// renderer-agnostic decoration instructions.
package annotate

import (
	"errors"
	"sort"
	"strings"

	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/scan"
)

// Status classifies an occurrence.
type Status string

const (
	StatusResolved Status = "resolved"
	StatusMissing  Status = "missing"
)

// Render says how Text is applied to the span.
type Render string

const (
	// RenderSuffix shows Text after the span.
	RenderSuffix Render = "suffix"
	// RenderReplace shows Text instead of the span.
	RenderReplace Render = "replace"
)

// Instruction decorates one occurrence.
type Instruction struct {
	Key    string `json:"key"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Status Status `json:"status"`
	Render Render `json:"render"`
	Text   string `json:"text"`
}

// Options holds the placeholders used for missing translations.
type Options struct {
	MissingSuffix  string
	MissingReplace string
}

// DefaultOptions uses the dictionary package placeholders.
func DefaultOptions() Options {
	return Options{
		MissingSuffix:  dictionary.MissingText,
		MissingReplace: dictionary.MissingTranslationText,
	}
}

// Plan produces one instruction per occurrence, in order. When no
// dictionary is active the result is empty, so stale decorations from a
// previous dictionary are cleared.
func Plan(occs []scan.Occurrence, lk dictionary.Lookuper, mode Mode, opts Options) []Instruction {
	out := make([]Instruction, 0, len(occs))

	for _, occ := range occs {
		tr, err := lk.Lookup(occ.Key)
		if errors.Is(err, dictionary.ErrNoDictionaryLoaded) {
			return []Instruction{}
		}

		status := StatusMissing
		if tr.Found {
			status = StatusResolved
		}

		in := Instruction{
			Key:    occ.Key,
			Start:  occ.Start,
			End:    occ.End,
			Status: status,
		}

		switch mode {
		case TranslationsVisible:
			in.Render = RenderReplace
			in.Text = quote(textOr(tr, opts.MissingReplace))
		default:
			in.Render = RenderSuffix
			in.Text = " → " + quote(textOr(tr, opts.MissingSuffix))
		}

		out = append(out, in)
	}

	return out
}

// Apply renders instructions into text: suffixes are inserted after their
// span and replacements substitute it. Overlapping instructions are
// skipped.
func Apply(text string, instrs []Instruction) string {
	return ApplyFunc(text, instrs, Plain)
}

// Plain renders an instruction without styling.
func Plain(in Instruction, span string) string {
	if in.Render == RenderReplace {
		return in.Text
	}
	return span + in.Text
}

// ApplyFunc is Apply with a custom renderer. render receives each
// instruction and the original text of its span, and returns what replaces
// the span.
func ApplyFunc(text string, instrs []Instruction, render func(in Instruction, span string) string) string {
	sorted := make([]Instruction, len(instrs))
	copy(sorted, instrs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var sb strings.Builder
	last := 0
	for _, in := range sorted {
		if in.Start < last || in.End > len(text) {
			continue
		}

		sb.WriteString(text[last:in.Start])
		sb.WriteString(render(in, text[in.Start:in.End]))
		last = in.End
	}
	sb.WriteString(text[last:])

	return sb.String()
}

// Counts returns the number of resolved and missing instructions.
func Counts(instrs []Instruction) (resolved, missing int) {
	for _, in := range instrs {
		if in.Status == StatusResolved {
			resolved++
		} else {
			missing++
		}
	}
	return resolved, missing
}

func textOr(tr dictionary.Translation, placeholder string) string {
	if tr.Found {
		return tr.Text
	}
	return placeholder
}

func quote(s string) string {
	return `"` + s + `"`
}
