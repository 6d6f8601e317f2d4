package loader

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokColon
	tokComma
	tokString
	tokIdent
	tokNumber
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of literal"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokString:
		return "string"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	default:
		return "token"
	}
}

// token is one lexeme of an object literal. Value holds the decoded string
// for tokString and the raw text otherwise. Offset is relative to the
// literal start.
type token struct {
	Kind   tokenKind
	Value  string
	Offset int
}

// lexer tokenizes the subset of JavaScript object-literal syntax used by
// dictionary files: braces, colons, commas, identifiers, numbers and quoted
// strings, with line and block comments skipped.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

// all returns every token up to and including EOF.
func (l *lexer) all() ([]token, error) {
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return token{}, err
	}

	start := l.pos
	if start >= len(l.src) {
		return token{Kind: tokEOF, Offset: start}, nil
	}

	c := l.src[start]
	switch {
	case c == '{':
		l.pos++
		return token{Kind: tokLBrace, Value: "{", Offset: start}, nil
	case c == '}':
		l.pos++
		return token{Kind: tokRBrace, Value: "}", Offset: start}, nil
	case c == ':':
		l.pos++
		return token{Kind: tokColon, Value: ":", Offset: start}, nil
	case c == ',':
		l.pos++
		return token{Kind: tokComma, Value: ",", Offset: start}, nil
	case c == '\'' || c == '"' || c == '`':
		return l.lexString(c)
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return l.lexNumber()
	case c == '[' || c == ']':
		return token{}, parseErrorf(start, "arrays are not supported")
	}

	r, size := utf8.DecodeRuneInString(l.src[start:])
	if isIdentStart(r) {
		l.pos += size
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		return token{Kind: tokIdent, Value: l.src[start:l.pos], Offset: start}, nil
	}

	return token{}, parseErrorf(start, "unexpected character %q", r)
}

func (l *lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case unicode.IsSpace(r) || r == '\uFEFF':
			l.pos += size
		case strings.HasPrefix(l.src[l.pos:], "//"):
			i := strings.IndexByte(l.src[l.pos:], '\n')
			if i < 0 {
				l.pos = len(l.src)
			} else {
				l.pos += i + 1
			}
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			i := strings.Index(l.src[l.pos+2:], "*/")
			if i < 0 {
				return parseErrorf(l.pos, "unterminated comment")
			}
			l.pos += i + 4
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) lexString(quote byte) (token, error) {
	start := l.pos
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return token{Kind: tokString, Value: sb.String(), Offset: start}, nil
		case c == '\n' && quote != '`':
			return token{}, parseErrorf(start, "unterminated string")
		case c == '$' && quote == '`' && strings.HasPrefix(l.src[l.pos:], "${"):
			return token{}, parseErrorf(l.pos, "template interpolation is not supported")
		case c == '\\':
			if err := l.lexEscape(&sb); err != nil {
				return token{}, err
			}
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if r == utf8.RuneError && size == 1 {
				return token{}, parseErrorf(l.pos, "invalid UTF-8")
			}
			sb.WriteRune(r)
			l.pos += size
		}
	}

	return token{}, parseErrorf(start, "unterminated string")
}

// lexEscape decodes the escape sequence at l.pos into sb.
func (l *lexer) lexEscape(sb *strings.Builder) error {
	start := l.pos
	if l.pos+1 >= len(l.src) {
		return parseErrorf(start, "unterminated escape sequence")
	}

	c := l.src[l.pos+1]
	l.pos += 2

	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation
	case '\r':
		if l.pos < len(l.src) && l.src[l.pos] == '\n' {
			l.pos++
		}
	case 'x':
		return l.lexHex(sb, 2, start)
	case 'u':
		if l.pos < len(l.src) && l.src[l.pos] == '{' {
			end := strings.IndexByte(l.src[l.pos:], '}')
			if end < 0 {
				return parseErrorf(start, "invalid unicode escape")
			}
			v, err := strconv.ParseUint(l.src[l.pos+1:l.pos+end], 16, 32)
			if err != nil || v > unicode.MaxRune {
				return parseErrorf(start, "invalid unicode escape")
			}
			sb.WriteRune(rune(v))
			l.pos += end + 1
			return nil
		}
		return l.lexHex(sb, 4, start)
	default:
		// \' \" \\ \` and any other character stand for themselves.
		r, size := utf8.DecodeRuneInString(l.src[l.pos-1:])
		sb.WriteRune(r)
		l.pos += size - 1
	}

	return nil
}

func (l *lexer) lexHex(sb *strings.Builder, digits, start int) error {
	if l.pos+digits > len(l.src) {
		return parseErrorf(start, "invalid hex escape")
	}
	v, err := strconv.ParseUint(l.src[l.pos:l.pos+digits], 16, 32)
	if err != nil {
		return parseErrorf(start, "invalid hex escape")
	}
	l.pos += digits

	r := rune(v)
	// Join UTF-16 surrogate pairs written as two \u escapes.
	if digits == 4 && r >= 0xD800 && r < 0xDC00 && strings.HasPrefix(l.src[l.pos:], `\u`) && l.pos+6 <= len(l.src) {
		if lo, err := strconv.ParseUint(l.src[l.pos+2:l.pos+6], 16, 32); err == nil && lo >= 0xDC00 && lo < 0xE000 {
			r = (r-0xD800)<<10 + (rune(lo) - 0xDC00) + 0x10000
			l.pos += 6
		}
	}

	sb.WriteRune(r)
	return nil
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if strings.HasPrefix(l.src[start:], "...") {
		return token{}, parseErrorf(start, "spread properties are not supported")
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) || isHexLetter(c) || c == '.' || c == '_' || c == 'x' || c == 'X' || c == 'o' || c == 'O' ||
			((c == '-' || c == '+') && (l.pos == start || l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E')) {
			l.pos++
			continue
		}
		break
	}

	raw := l.src[start:l.pos]
	clean := strings.ReplaceAll(raw, "_", "")
	if _, err := strconv.ParseFloat(clean, 64); err != nil {
		if _, err := strconv.ParseInt(clean, 0, 64); err != nil {
			return token{}, parseErrorf(start, "invalid number %q", raw)
		}
	}

	return token{Kind: tokNumber, Value: raw, Offset: start}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexLetter(c byte) bool {
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200C' || r == '\u200D'
}
