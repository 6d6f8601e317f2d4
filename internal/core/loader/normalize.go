package loader

import (
	"encoding/json"
	"strings"
)

// Normalize rewrites a tolerant object literal as strict JSON. It accepts
// unquoted identifier keys, numeric keys, single-quoted and backtick
// strings, comments and trailing commas. Numbers and booleans become JSON
// strings holding their source text; null is kept as null.
func Normalize(literal string) (string, error) {
	n := &normalizer{lex: newLexer(literal)}
	if err := n.advance(); err != nil {
		return "", err
	}
	if err := n.object(); err != nil {
		return "", err
	}
	if n.tok.Kind != tokEOF {
		return "", parseErrorf(n.tok.Offset, "unexpected %s after object literal", describe(n.tok))
	}

	return n.out.String(), nil
}

// normalizer is a recursive-descent parser with one token of lookahead.
// Tokens are checked before the lexer moves past them, so errors are
// reported in source order.
type normalizer struct {
	lex *lexer
	tok token
	out strings.Builder
}

func (n *normalizer) advance() error {
	tok, err := n.lex.next()
	if err != nil {
		return err
	}
	n.tok = tok
	return nil
}

func (n *normalizer) expect(kind tokenKind) error {
	if n.tok.Kind != kind {
		return parseErrorf(n.tok.Offset, "expected %s, found %s", kind, describe(n.tok))
	}
	return n.advance()
}

func (n *normalizer) object() error {
	if err := n.expect(tokLBrace); err != nil {
		return err
	}
	n.out.WriteByte('{')

	first := true
	for {
		if n.tok.Kind == tokRBrace {
			n.out.WriteByte('}')
			return n.advance()
		}

		if !first {
			n.out.WriteByte(',')
		}
		first = false

		if err := n.member(); err != nil {
			return err
		}

		switch n.tok.Kind {
		case tokComma:
			if err := n.advance(); err != nil {
				return err
			}
		case tokRBrace:
			n.out.WriteByte('}')
			return n.advance()
		default:
			return parseErrorf(n.tok.Offset, "expected ',' or '}', found %s", describe(n.tok))
		}
	}
}

func (n *normalizer) member() error {
	switch n.tok.Kind {
	case tokIdent, tokString, tokNumber:
	default:
		return parseErrorf(n.tok.Offset, "expected property name, found %s", describe(n.tok))
	}
	writeString(&n.out, n.tok.Value)
	if err := n.advance(); err != nil {
		return err
	}

	if err := n.expect(tokColon); err != nil {
		return err
	}
	n.out.WriteByte(':')

	return n.value()
}

func (n *normalizer) value() error {
	tok := n.tok
	switch tok.Kind {
	case tokLBrace:
		return n.object()
	case tokString, tokNumber:
		writeString(&n.out, tok.Value)
	case tokIdent:
		switch tok.Value {
		case "true", "false":
			writeString(&n.out, tok.Value)
		case "null", "undefined":
			n.out.WriteString("null")
		default:
			return parseErrorf(tok.Offset, "identifier %q is not a literal value", tok.Value)
		}
	default:
		return parseErrorf(tok.Offset, "expected value, found %s", describe(tok))
	}
	return n.advance()
}

func describe(tok token) string {
	switch tok.Kind {
	case tokIdent, tokNumber:
		return tok.Kind.String() + " " + tok.Value
	default:
		return tok.Kind.String()
	}
}

func writeString(sb *strings.Builder, s string) {
	// json.Marshal on a string cannot fail.
	b, _ := json.Marshal(s)
	sb.Write(b)
}
