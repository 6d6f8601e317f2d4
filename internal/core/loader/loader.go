// Package loader reads translation dictionaries from JavaScript/TypeScript
// source files. The exported object literal is located textually, rewritten
// as strict JSON by a tolerant tokenizer and parsed as data. File content is
// never evaluated as code.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"

	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/scan"
)

// KeySeparator joins the keys of nested objects into a flat key.
const KeySeparator = "."

// Load reads and parses the dictionary file at path.
func Load(path string) (*dictionary.Dictionary, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	dict, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return dict, nil
}

// Parse extracts a dictionary from dictionary source text.
func Parse(src []byte) (*dictionary.Dictionary, error) {
	text := string(src)

	lit, err := Locate(text)
	if err != nil {
		return nil, withPosition(text, 0, err)
	}

	strict, err := Normalize(lit.Text)
	if err != nil {
		return nil, withPosition(text, lit.Offset, err)
	}

	entries, err := parseJSON(strict)
	if err != nil {
		return nil, err
	}

	return dictionary.New(entries), nil
}

// parseJSON flattens a strict JSON object into string entries. Nested
// objects produce dot-joined keys and null values are dropped.
func parseJSON(strict string) (map[string]string, error) {
	if !gjson.Valid(strict) {
		return nil, &ParseError{Msg: "normalized literal is not valid JSON"}
	}

	root := gjson.Parse(strict)
	if !root.IsObject() {
		return nil, &ParseError{Msg: "dictionary is not an object"}
	}

	entries := make(map[string]string)
	flatten(entries, "", root)
	return entries, nil
}

func flatten(dst map[string]string, prefix string, obj gjson.Result) {
	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if prefix != "" {
			key = prefix + KeySeparator + key
		}

		switch {
		case v.IsObject():
			flatten(dst, key, v)
		case v.Type == gjson.Null:
		default:
			dst[key] = v.String()
		}
		return true
	})
}

// withPosition fills in the 1-based line and column of a ParseError whose
// offset is relative to base.
func withPosition(src string, base int, err error) error {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return err
	}

	perr.Offset += base
	pos := scan.PositionOf(src, perr.Offset)
	perr.Line = pos.Line + 1
	perr.Col = pos.Col + 1
	return perr
}
