package loader

import (
	"regexp"
	"strings"
)

var (
	exportDefaultRe = regexp.MustCompile(`export\s+default\s*\{`)
	moduleExportsRe = regexp.MustCompile(`module\.exports\s*=\s*\{`)
	// const NAME = {  /  const NAME: Record<string, string> = {
	namedConstRe = regexp.MustCompile(`(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=;{]+)?=\s*\{`)
)

// Literal is an object literal located in a dictionary source file.
type Literal struct {
	Text   string // the literal, braces included
	Offset int    // byte offset of the opening brace in the source
	Name   string // constant name, empty for direct exports
}

// Locate finds the exported object literal in src. It accepts, in order of
// preference, `export default {...}`, `module.exports = {...}` and
// `const NAME = {...}` where NAME is exported later in the file.
func Locate(src string) (Literal, error) {
	for _, re := range []*regexp.Regexp{exportDefaultRe, moduleExportsRe} {
		if loc := re.FindStringIndex(src); loc != nil {
			return extract(src, loc[1]-1, "")
		}
	}

	for _, m := range namedConstRe.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		if !isExported(src[m[1]:], name) {
			continue
		}
		return extract(src, m[1]-1, name)
	}

	return Literal{}, ErrLiteralNotLocated
}

func isExported(rest, name string) bool {
	q := regexp.QuoteMeta(name)
	marker := regexp.MustCompile(
		`export\s+default\s+` + q + `\b` +
			`|module\.exports\s*=\s*` + q + `\b` +
			`|export\s*\{[^}]*\b` + q + `\s+as\s+default\b`,
	)
	return marker.MatchString(rest)
}

func extract(src string, open int, name string) (Literal, error) {
	end, err := matchBrace(src, open)
	if err != nil {
		return Literal{}, err
	}
	return Literal{Text: src[open : end+1], Offset: open, Name: name}, nil
}

// matchBrace returns the index of the brace closing the one at open. Braces
// inside strings and comments are ignored.
func matchBrace(src string, open int) (int, error) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		case '\'', '"', '`':
			j := skipString(src, i)
			if j < 0 {
				return 0, parseErrorf(i, "unterminated string")
			}
			i = j
		case '/':
			if i+1 < len(src) {
				switch src[i+1] {
				case '/':
					j := indexFrom(src, i+2, "\n")
					if j < 0 {
						return 0, parseErrorf(open, "unterminated object literal")
					}
					i = j
				case '*':
					j := indexFrom(src, i+2, "*/")
					if j < 0 {
						return 0, parseErrorf(i, "unterminated comment")
					}
					i = j + 1
				}
			}
		}
	}
	return 0, parseErrorf(open, "unterminated object literal")
}

// skipString returns the index of the quote closing the string starting at
// i, or -1.
func skipString(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j
		case '\n':
			if quote != '`' {
				return -1
			}
		}
	}
	return -1
}

func indexFrom(s string, from int, sub string) int {
	if i := strings.Index(s[from:], sub); i >= 0 {
		return from + i
	}
	return -1
}
