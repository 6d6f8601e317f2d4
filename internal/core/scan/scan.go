// Package scan finds i18n key usages of the form __('key') or __("key") in
// source text. Matching is purely lexical: comments, string concatenation and
// template interpolation are not recognised.
package scan

import (
	"iter"
	"regexp"
	"strings"
)

// Pattern matches a lookup call with a single- or double-quoted key. Both
// quotes must be the same character and the key may not contain quotes or
// backslashes.
var Pattern = regexp.MustCompile(`__\((?:'([^'"\\]+)'|"([^'"\\]+)")\)`)

// Occurrence is one located key usage. Start and End are byte offsets into
// the scanned text; End is exclusive.
type Occurrence struct {
	Key   string `json:"key"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Contains reports whether offset falls on the occurrence. The end is
// inclusive so a cursor placed right after the closing paren still counts.
func (o Occurrence) Contains(offset int) bool {
	return offset >= o.Start && offset <= o.End
}

// All yields every non-overlapping occurrence in text, in order.
func All(text string) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		rest := text
		base := 0
		for {
			loc := Pattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			if !yield(fromMatch(rest, loc, base)) {
				return
			}
			base += loc[1]
			rest = rest[loc[1]:]
		}
	}
}

// Collect returns all occurrences in text as a slice. The result is never nil.
func Collect(text string) []Occurrence {
	out := []Occurrence{}
	for occ := range All(text) {
		out = append(out, occ)
	}
	return out
}

// Keys returns the distinct keys used in text with their use counts.
func Keys(text string) map[string]int {
	keys := make(map[string]int)
	for occ := range All(text) {
		keys[occ.Key]++
	}
	return keys
}

// At returns the first occurrence on the line containing offset whose span
// contains offset. Only that line is scanned.
func At(text string, offset int) (Occurrence, bool) {
	if offset < 0 || offset > len(text) {
		return Occurrence{}, false
	}

	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}

	for occ := range All(text[lineStart:lineEnd]) {
		occ.Start += lineStart
		occ.End += lineStart
		if occ.Contains(offset) {
			return occ, true
		}
	}

	return Occurrence{}, false
}

func fromMatch(text string, loc []int, base int) Occurrence {
	// Group 1 is the single-quoted key, group 2 the double-quoted one.
	var key string
	if loc[2] >= 0 {
		key = text[loc[2]:loc[3]]
	} else {
		key = text[loc[4]:loc[5]]
	}

	return Occurrence{
		Key:   key,
		Start: base + loc[0],
		End:   base + loc[1],
	}
}
